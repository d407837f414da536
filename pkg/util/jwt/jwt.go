package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer         = "groupies"
	sessionSubject = "session"
)

// ErrWrongSubject token 签名有效但不是会话 token
var ErrWrongSubject = errors.New("token subject is not session")

// Claims 自定义 JWT 声明
type Claims struct {
	UserID  uint   `json:"user_id"`
	TokenID string `json:"token_id"` // 对应缓存中的会话白名单，登出即失效
	jwt.RegisteredClaims
}

// Signer 会话 token 签发与校验
type Signer struct {
	secret []byte
	expiry time.Duration
}

// NewSigner 创建 Signer
func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{secret: []byte(secret), expiry: expiry}
}

// Expiry 会话有效期
func (s *Signer) Expiry() time.Duration {
	return s.expiry
}

// GenerateSessionToken 生成会话 token
// 返回 token 字符串和 tokenID (写入缓存白名单)
func (s *Signer) GenerateSessionToken(userID uint) (tokenString string, tokenID string, err error) {
	tokenID = uuid.NewString()
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   sessionSubject,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString(s.secret)
	return
}

// ParseToken 解析并验证会话 token
func (s *Signer) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Subject != sessionSubject {
		return nil, ErrWrongSubject
	}
	return claims, nil
}
