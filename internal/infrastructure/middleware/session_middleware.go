package middleware

import (
	"net/http"

	"groupies/pkg/constants"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Identity 当前登录用户，由 Session 中间件写入上下文
type Identity struct {
	UserID uint
	Token  string
}

// SessionValidator 校验会话 token，返回用户 ID
type SessionValidator interface {
	ValidateSession(token string) (uint, error)
}

// Session 读取会话 Cookie，校验通过后把 Identity 存入上下文
// 没有或无效的 Cookie 不拦截请求，是否必须登录由 RequireLogin 决定
func Session(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := validator.ValidateSession(token)
		if err != nil {
			zap.L().Debug("会话无效", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(constants.IDENTITY_KEY, Identity{UserID: userID, Token: token})
		c.Next()
	}
}

// CurrentIdentity 读取当前登录用户
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(constants.IDENTITY_KEY)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireLogin 未登录跳转 /login
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
