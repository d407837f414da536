// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"groupies/internal/config"
	"groupies/internal/infrastructure/menu"
	"groupies/internal/service"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	User  *UserHandler
	Event *EventHandler
	Group *GroupHandler
}

// NewHandlers 创建并注入所有 Handler 实例
func NewHandlers(svc *service.Services, menuLoader menu.Loader, session config.SessionConfig) *Handlers {
	return &Handlers{
		User:  NewUserHandler(svc.User, svc.Auth, session),
		Event: NewEventHandler(svc.Event, svc.User, menuLoader),
		Group: NewGroupHandler(svc.Group),
	}
}
