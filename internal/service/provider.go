// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"groupies/internal/config"
	"groupies/internal/dao/db/repository"
	myredis "groupies/internal/dao/redis"
	"groupies/internal/infrastructure/notify"
	"groupies/internal/service/auth"
	"groupies/internal/service/event"
	"groupies/internal/service/group"
	"groupies/internal/service/user"
	"groupies/pkg/util/jwt"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User  UserService
	Auth  AuthService
	Event EventService
	Group GroupService
}

// NewServices 创建并注入所有 Service 实例
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, sender notify.Sender, signer *jwt.Signer, eventConf config.EventConfig) *Services {
	groupSvc := group.NewGroupService(repos, cache, sender)

	return &Services{
		User:  user.NewUserService(repos, sender),
		Auth:  auth.NewAuthService(cache, signer),
		Event: event.NewEventService(repos, cache, groupSvc, eventConf),
		Group: groupSvc,
	}
}
