// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"groupies/internal/handler"
	"groupies/internal/infrastructure/metrics"
	"groupies/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，会话中间件已在引擎上注册
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开路由
	rt.RegisterUserRoutes(r)
	rt.RegisterEventRoutes(r)
	r.GET("/healthz", handler.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 需要登录
	authed := r.Group("/")
	authed.Use(middleware.RequireLogin())
	{
		authed.GET("", rt.handlers.Event.Home)
		rt.RegisterGroupRoutes(authed)
	}

	r.NoRoute(handler.NotFound)
}
