package middleware

import (
	"groupies/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureHeaders 安全响应头，可选 HTTP -> HTTPS 跳转
// isDevelopment 为 true 时 secure 会跳过 SSL 相关检查
func SecureHeaders(conf config.SecurityConfig, isDevelopment bool) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求都重复创建对象
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:        conf.SSLRedirect,
		SSLHost:            conf.SSLHost,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
		IsDevelopment:      isDevelopment,
	})

	return func(c *gin.Context) {
		// 发生跳转时 secure 已写好响应并返回 error
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			zap.L().Debug("secure middleware stopped request", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
