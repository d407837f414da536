package user

import (
	"strings"

	"go.uber.org/zap"

	"groupies/internal/dao/db/repository"
	"groupies/internal/dto/request"
	"groupies/internal/dto/respond"
	"groupies/internal/infrastructure/metrics"
	"groupies/internal/infrastructure/notify"
	"groupies/internal/model"
	"groupies/pkg/constants"
	"groupies/pkg/errorx"
)

// userInfoService 用户业务逻辑实现
// 通过构造函数注入 Repository 和通知依赖
type userInfoService struct {
	repos  *repository.Repositories
	sender notify.Sender
}

// NewUserService 构造函数
func NewUserService(repos *repository.Repositories, sender notify.Sender) *userInfoService {
	return &userInfoService{repos: repos, sender: sender}
}

// Register 注册
// 用户名去掉首尾空白，密码原样保存（只做哈希）
func (u *userInfoService) Register(req request.SignupRequest) (*respond.UserRespond, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, errorx.ErrInvalidParam
	}
	// 校验器按字符计长度，多字节密码要按字节再查一次
	if len(req.Password) > constants.MAX_PASSWORD_BYTES {
		return nil, errorx.ErrPasswordLong
	}

	_, err := u.repos.User.FindByUsername(username)
	if err == nil {
		return nil, errorx.ErrUserExist
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	user := &model.UserInfo{Username: username, RawPassword: req.Password}
	if err := u.repos.User.Create(user); err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if errorx.IsDuplicate(err) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	metrics.Signups.Inc()
	u.sender.Send(notify.SignupMessage(username))
	zap.L().Info("新用户注册", zap.Uint("user_id", user.ID), zap.String("username", username))
	return &respond.UserRespond{ID: user.ID, Username: user.Username}, nil
}

// Authenticate 校验用户名密码
// 用户不存在和密码错误返回同一个错误
func (u *userInfoService) Authenticate(req request.LoginRequest) (*respond.UserRespond, error) {
	username := strings.TrimSpace(req.Username)

	user, err := u.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			metrics.Logins.WithLabelValues("failed").Inc()
			return nil, errorx.ErrAuthFailed
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		metrics.Logins.WithLabelValues("failed").Inc()
		return nil, errorx.ErrAuthFailed
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return &respond.UserRespond{ID: user.ID, Username: user.Username}, nil
}

// GetUser 按 ID 获取用户
func (u *userInfoService) GetUser(id uint) (*respond.UserRespond, error) {
	user, err := u.repos.User.FindByID(id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, err
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.UserRespond{ID: user.ID, Username: user.Username}, nil
}
