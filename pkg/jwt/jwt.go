package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/gymsocial/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 会话令牌载荷；Subject 即调用者 pub_id
type Claims struct {
	gojwt.RegisteredClaims
}

// PubID 调用者的 pub_id
func (c *Claims) PubID() string { return c.Subject }

// Manager 签发与校验 HS256 令牌
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(cfg *config.JWTConfig) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl}
}

// Generate 为 pubID 签发令牌（账号引导流程与测试使用）
func (m *Manager) Generate(pubID string) (string, error) {
	now := time.Now()
	claims := Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   pubID,
		Issuer:    m.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(m.ttl)),
	}}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 校验签名、过期时间与签发方
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenStr, claims, func(t *gojwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, gojwt.WithIssuer(m.issuer), gojwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
