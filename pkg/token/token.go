package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 令牌类型，写进 claims 防止拿刷新令牌当访问令牌用
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("令牌无效或已过期")
	ErrWrongTokenUse = errors.New("令牌类型不匹配")
)

// Claims 标准声明加令牌类型
// Subject 存用户的 public_id，绝不放内部自增 ID
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// Manager 负责签发和校验两类 HS256 令牌
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccess 签发访问令牌
func (m *Manager) GenerateAccess(publicID string) (string, error) {
	return m.generate(publicID, TypeAccess, m.accessTTL)
}

// GenerateRefresh 签发刷新令牌
func (m *Manager) GenerateRefresh(publicID string) (string, error) {
	return m.generate(publicID, TypeRefresh, m.refreshTTL)
}

// GeneratePair 登录和注册时一次签发两个令牌
func (m *Manager) GeneratePair(publicID string) (access string, refresh string, err error) {
	access, err = m.GenerateAccess(publicID)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.GenerateRefresh(publicID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *Manager) generate(publicID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   publicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify 校验签名、有效期和令牌类型，返回 public_id
func (m *Manager) Verify(tokenString, wantType string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return "", ErrWrongTokenUse
	}

	return claims.Subject, nil
}
