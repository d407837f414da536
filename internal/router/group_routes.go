// Package router 提供 HTTP 路由注册
// 本文件定义报名相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册报名路由（需要认证）
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	rg.GET("/join/:id", rt.handlers.Group.Join) // 报名，结束后跳回详情页
}
