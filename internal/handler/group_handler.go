// Package handler 提供 HTTP 请求处理器
// 本文件处理报名
package handler

import (
	"fmt"

	"groupies/internal/dto/request"
	"groupies/internal/infrastructure/middleware"
	"groupies/internal/service"
	"groupies/pkg/enum/join_outcome_enum"
	"groupies/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GroupHandler 报名请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建报名处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// Join 报名
// GET /join/:id  (需登录)
// 结果都跳回活动详情页：成团和已满会带提示，重复报名静默
func (h *GroupHandler) Join(c *gin.Context) {
	var req request.EventURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		NotFound(c)
		return
	}
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		Redirect(c, "/login")
		return
	}

	back := fmt.Sprintf("/event/%d", req.ID)
	rsp, err := h.groupSvc.Join(req.ID, id.UserID)
	if err != nil {
		HandleError(c, err, back)
		return
	}

	switch rsp.Outcome {
	case join_outcome_enum.GROUP_COMPLETED:
		AddFlash(c, FlashSuccess, "Group is full! See your Telegram (if connected) for updates.")
	case join_outcome_enum.EVENT_FULL:
		AddFlash(c, FlashError, errorx.ErrEventFull.Msg)
	}
	Redirect(c, back)
}
