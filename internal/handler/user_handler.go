// Package handler 提供 HTTP 请求处理器
// 本文件处理注册、登录和登出
package handler

import (
	"net/http"

	"groupies/internal/config"
	"groupies/internal/dto/request"
	"groupies/internal/infrastructure/middleware"
	"groupies/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService 和 AuthService
type UserHandler struct {
	userSvc service.UserService
	authSvc service.AuthService
	session config.SessionConfig
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService, authSvc service.AuthService, session config.SessionConfig) *UserHandler {
	return &UserHandler{userSvc: userSvc, authSvc: authSvc, session: session}
}

// SignupPage 注册页
// GET /signup
func (h *UserHandler) SignupPage(c *gin.Context) {
	Render(c, http.StatusOK, "signup.html", gin.H{"title": "Sign up"})
}

// Signup 用户注册
// POST /signup
// 表单: request.SignupRequest
// 成功后跳转登录页
func (h *UserHandler) Signup(c *gin.Context) {
	var req request.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err, "/signup")
		return
	}

	if _, err := h.userSvc.Register(req); err != nil {
		HandleError(c, err, "/signup")
		return
	}

	AddFlash(c, FlashSuccess, "Account created. Please log in.")
	Redirect(c, "/login")
}

// LoginPage 登录页
// GET /login
func (h *UserHandler) LoginPage(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", gin.H{"title": "Log in"})
}

// Login 用户登录
// POST /login
// 表单: request.LoginRequest
// 成功后写入会话 Cookie 并跳转首页
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		HandleParamError(c, err, "/login")
		return
	}

	user, err := h.userSvc.Authenticate(req)
	if err != nil {
		HandleError(c, err, "/login")
		return
	}

	token, err := h.authSvc.IssueSession(user.ID)
	if err != nil {
		HandleError(c, err, "/login")
		return
	}
	setCookie(c, h.session.CookieName, token, int(h.authSvc.Expiry().Seconds()), h.session.Secure)
	Redirect(c, "/")
}

// Logout 登出
// GET /logout
// 删除会话白名单并清除 Cookie，未登录也正常跳转
func (h *UserHandler) Logout(c *gin.Context) {
	if id, ok := middleware.CurrentIdentity(c); ok {
		if err := h.authSvc.RevokeSession(id.Token); err != nil {
			zap.L().Warn("登出时删除会话失败", zap.Uint("user_id", id.UserID), zap.Error(err))
		}
	}
	setCookie(c, h.session.CookieName, "", -1, h.session.Secure)

	AddFlash(c, FlashSuccess, "Logged out.")
	Redirect(c, "/login")
}
