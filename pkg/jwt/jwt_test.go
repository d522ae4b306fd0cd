package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.JWTConfig{Secret: "0123456789abcdef-test", Issuer: "gymsocial", TTL: ttl})
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := newTestManager(time.Hour)
	tok, err := m.Generate("pub-alice")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "pub-alice", claims.PubID())
}

func TestManager_ParseRejectsForeignSecret(t *testing.T) {
	other := NewManager(&config.JWTConfig{Secret: "another-secret-value", Issuer: "gymsocial", TTL: time.Hour})
	tok, err := other.Generate("pub-alice")
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Parse(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestManager_ParseRejectsExpired(t *testing.T) {
	m := newTestManager(-time.Minute)
	// NewManager 把非正 TTL 归一为 24h，这里直接改字段构造过期令牌
	m.ttl = -time.Minute
	tok, err := m.Generate("pub-alice")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestManager_ParseRejectsGarbage(t *testing.T) {
	_, err := newTestManager(time.Hour).Parse("not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
