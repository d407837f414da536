package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes 活动详情，未登录也可查看
func (rt *Router) RegisterEventRoutes(r *gin.Engine) {
	r.GET("/event/:id", rt.handlers.Event.Detail)
}
