package redis

import (
	"context"
	"testing"
	"time"

	"github.com/brandonbohn/adebackend/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Connect(context.Background(), &config.RedisConfig{Addr: mr.Addr(), DB: 2}, time.Second)
	require.NoError(t, err)
	defer Close(c)

	require.NoError(t, c.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.DB(2).Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c, err := Connect(context.Background(), &config.RedisConfig{Addr: addr}, 500*time.Millisecond)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), addr)
}
