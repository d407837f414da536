package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册、登录、登出（无需认证）
func (rt *Router) RegisterUserRoutes(r *gin.Engine) {
	r.GET("/signup", rt.handlers.User.SignupPage)
	r.POST("/signup", rt.handlers.User.Signup)
	r.GET("/login", rt.handlers.User.LoginPage)
	r.POST("/login", rt.handlers.User.Login)
	r.GET("/logout", rt.handlers.User.Logout)
}
