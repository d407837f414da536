// Package auth 提供登录会话相关的业务逻辑
// 会话 token 签名有效且缓存白名单中存在对应记录才算登录，登出即删除白名单
package auth

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	myredis "groupies/internal/dao/redis"
	"groupies/pkg/constants"
	"groupies/pkg/errorx"
	"groupies/pkg/util/jwt"
)

// Service 认证服务实现
type Service struct {
	cache  myredis.CacheService // 只需同步读写
	signer *jwt.Signer
}

// NewAuthService 创建认证服务实例
func NewAuthService(cache myredis.CacheService, signer *jwt.Signer) *Service {
	return &Service{
		cache:  cache,
		signer: signer,
	}
}

func cacheCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.CACHE_TIMEOUT_SECONDS*time.Second)
}

// Expiry 会话有效期，用作 Cookie Max-Age
func (s *Service) Expiry() time.Duration {
	return s.signer.Expiry()
}

// IssueSession 签发会话 token 并登记白名单
func (s *Service) IssueSession(userID uint) (string, error) {
	token, tokenID, err := s.signer.GenerateSessionToken(userID)
	if err != nil {
		zap.L().Error("签发会话失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	ctx, cancel := cacheCtx()
	defer cancel()
	if err := s.cache.Set(ctx, myredis.SessionKey(tokenID), strconv.FormatUint(uint64(userID), 10), s.signer.Expiry()); err != nil {
		zap.L().Error("登记会话失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return token, nil
}

// ValidateSession 返回会话对应的用户 ID
// 签名无效、过期、已登出都返回 ErrUnauthorized
func (s *Service) ValidateSession(token string) (uint, error) {
	claims, err := s.signer.ParseToken(token)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.CodeUnauthorized, "invalid session token")
	}

	ctx, cancel := cacheCtx()
	defer cancel()
	v, err := s.cache.Get(ctx, myredis.SessionKey(claims.TokenID))
	if err != nil {
		zap.L().Error("读取会话白名单失败", zap.Error(err))
		return 0, errorx.ErrUnauthorized
	}
	if v == "" || v != strconv.FormatUint(uint64(claims.UserID), 10) {
		return 0, errorx.ErrUnauthorized
	}
	return claims.UserID, nil
}

// RevokeSession 登出；token 无效时无需处理
func (s *Service) RevokeSession(token string) error {
	claims, err := s.signer.ParseToken(token)
	if err != nil {
		return nil
	}
	ctx, cancel := cacheCtx()
	defer cancel()
	if err := s.cache.Delete(ctx, myredis.SessionKey(claims.TokenID)); err != nil {
		zap.L().Error("删除会话失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
