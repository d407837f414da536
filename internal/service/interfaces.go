// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
package service

import (
	"time"

	"groupies/internal/dto/request"
	"groupies/internal/dto/respond"
)

// UserService 注册与登录
type UserService interface {
	// Register 注册，用户名为空返回 ErrInvalidParam，重名返回 ErrUserExist
	Register(req request.SignupRequest) (*respond.UserRespond, error)
	// Authenticate 校验用户名密码，失败统一返回 ErrAuthFailed
	Authenticate(req request.LoginRequest) (*respond.UserRespond, error)
	// GetUser 根据 ID 获取用户
	GetUser(id uint) (*respond.UserRespond, error)
}

// AuthService 登录会话
type AuthService interface {
	// IssueSession 登录成功后签发会话 token
	IssueSession(userID uint) (string, error)
	// ValidateSession 校验会话 token，返回用户 ID
	ValidateSession(token string) (uint, error)
	// RevokeSession 登出
	RevokeSession(token string) error
	// Expiry 会话有效期
	Expiry() time.Duration
}

// EventService 活动目录
type EventService interface {
	// ListEvents 全部活动
	ListEvents() ([]respond.EventRespond, error)
	// GetEvent 单个活动，不存在返回 CodeNotFound
	GetEvent(id uint) (*respond.EventRespond, error)
	// EventDetail 活动详情，viewerID 为 0 表示未登录
	EventDetail(id, viewerID uint) (*respond.EventDetailRespond, error)
	// SeedDefault 活动表为空时写入默认活动
	SeedDefault() (bool, error)
}

// GroupService 报名
type GroupService interface {
	// CountOpenMembers 待成团人数
	CountOpenMembers(eventID uint) (int64, error)
	// CountClosedMembers 已成团人数
	CountClosedMembers(eventID uint) (int64, error)
	// HasJoined 用户是否已报名
	HasJoined(eventID, userID uint) (bool, error)
	// Join 报名，结果见 respond.JoinRespond.Outcome
	Join(eventID, userID uint) (*respond.JoinRespond, error)
}
