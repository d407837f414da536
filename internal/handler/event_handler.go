// Package handler 提供 HTTP 请求处理器
// 本文件处理活动列表和活动详情页
package handler

import (
	"net/http"

	"groupies/internal/dto/request"
	"groupies/internal/infrastructure/menu"
	"groupies/internal/infrastructure/middleware"
	"groupies/internal/service"
	"groupies/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// EventHandler 活动请求处理器
type EventHandler struct {
	eventSvc service.EventService
	userSvc  service.UserService
	menu     menu.Loader
}

// NewEventHandler 创建活动处理器实例
func NewEventHandler(eventSvc service.EventService, userSvc service.UserService, menuLoader menu.Loader) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, userSvc: userSvc, menu: menuLoader}
}

// Home 首页：活动列表 + 自助餐菜单
// GET /  (需登录)
// 会话有效但用户已不存在时走登出流程
func (h *EventHandler) Home(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	user, err := h.userSvc.GetUser(identity.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			Redirect(c, "/logout")
			return
		}
		HandleError(c, err, "/login")
		return
	}

	events, err := h.eventSvc.ListEvents()
	if err != nil {
		HandleError(c, err, "/")
		return
	}
	Render(c, http.StatusOK, "events.html", gin.H{
		"title":    "Events",
		"username": user.Username,
		"events":   events,
		"buffet":   h.menu.Load(),
	})
}

// Detail 活动详情
// GET /event/:id
// id 非正整数或活动不存在都返回 404
func (h *EventHandler) Detail(c *gin.Context) {
	var req request.EventURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		NotFound(c)
		return
	}

	var viewerID uint
	if id, ok := middleware.CurrentIdentity(c); ok {
		viewerID = id.UserID
	}

	detail, err := h.eventSvc.EventDetail(req.ID, viewerID)
	if err != nil {
		HandleError(c, err, "/")
		return
	}
	Render(c, http.StatusOK, "event_detail.html", gin.H{
		"title": detail.EventName,
		"event": detail,
	})
}
