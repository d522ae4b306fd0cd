package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/config"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewClient(&config.RedisConfig{Enabled: true, Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	_ = rdb.Close()

	rdb, err = NewClient(&config.RedisConfig{Enabled: false, Addr: mr.Addr()})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr.Close()
	_, err = NewClient(&config.RedisConfig{Enabled: true, Addr: mr.Addr()})
	assert.Error(t, err)
}
