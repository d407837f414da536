package middleware

import (
	"time"

	"groupies/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 按路由模板记录请求耗时
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
