package events

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStreamPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewStreamPublisher(client, "ade:events", 1000, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, DonationRecorded, map[string]any{"id": "d1", "amount": 100}))

	msgs, err := client.XRange(ctx, "ade:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, DonationRecorded, msgs[0].Values["type"])
	assert.JSONEq(t, `{"id":"d1","amount":100}`, msgs[0].Values["data"].(string))
}

func TestStreamPublisher_PublishFailsWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	p := NewStreamPublisher(client, "ade:events", 1000, zap.NewNop())
	err := p.Publish(context.Background(), ContactCreated, map[string]string{"id": "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish contact.created")
}

func TestStreamPublisher_CapsStreamLength(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewStreamPublisher(client, "ade:events", 5, zap.NewNop())
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		require.NoError(t, p.Publish(ctx, DonationRecorded, map[string]int{"n": i}))
	}

	n, err := client.XLen(ctx, "ade:events").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, n, int64(5))
	assert.Positive(t, n)

	msgs, err := client.XRevRangeN(ctx, "ade:events", "+", "-", 1).Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.JSONEq(t, `{"n":19}`, msgs[0].Values["data"].(string))
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), LeadCreated, nil))
}
