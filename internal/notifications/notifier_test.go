package notifications

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanke/disney-sns/internal/middleware"
	"github.com/xanke/disney-sns/internal/models"
)

func TestActivityChannel(t *testing.T) {
	assert.Equal(t, "dynams:user:12", ActivityChannel(12))
}

func TestPublishActivity_NilClient(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.PublishActivity(context.Background(), &models.Dynam{}))
	assert.NoError(t, NewNotifier(nil).PublishActivity(context.Background(), &models.Dynam{}))
}

func TestPublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type got struct {
		author uint
		msg    ActivityMessage
	}
	received := make(chan got, 2)
	require.NoError(t, n.SubscribeActivity(ctx, 0, func(author uint, msg ActivityMessage) {
		received <- got{author, msg}
	}))

	actor := uint(2)
	require.NoError(t, n.PublishActivity(ctx, &models.Dynam{
		ActorID:        &actor,
		ActorName:      "Goofy",
		TargetAuthorID: 1,
		TargetType:     models.TargetTypePost,
		TargetID:       9,
		Kind:           models.DynamKindLike,
		At:             time.Now(),
	}))

	select {
	case g := <-received:
		assert.Equal(t, uint(1), g.author)
		assert.Equal(t, models.DynamKindLike, g.msg.Kind)
		assert.Equal(t, uint(9), g.msg.TargetID)
		require.NotNil(t, g.msg.ActorID)
		assert.Equal(t, actor, *g.msg.ActorID)
	case <-time.After(2 * time.Second):
		t.Fatal("activity message not delivered")
	}
}

func TestSubscribeActivity_NoClient(t *testing.T) {
	err := NewNotifier(nil).SubscribeActivity(context.Background(), 1, func(uint, ActivityMessage) {})
	assert.Error(t, err)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := middleware.Logger
	middleware.Logger = middleware.NewLoggerTo(&buf, "production")
	t.Cleanup(func() { middleware.Logger = prev })
	return &buf
}

func TestDeliver_LogsWithContextFields(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "watch-1")

	t.Run("malformed payload", func(t *testing.T) {
		buf := captureLogs(t)
		called := false
		deliver(ctx, &redis.Message{Channel: ActivityChannel(3), Payload: "not json"}, func(uint, ActivityMessage) {
			called = true
		})

		assert.False(t, called)
		assert.Contains(t, buf.String(), "dropping malformed activity message")
		assert.Contains(t, buf.String(), `"request_id":"watch-1"`)
	})

	t.Run("handler panic", func(t *testing.T) {
		buf := captureLogs(t)
		assert.NotPanics(t, func() {
			deliver(ctx, &redis.Message{Channel: ActivityChannel(3), Payload: `{"kind":"pv"}`}, func(uint, ActivityMessage) {
				panic("boom")
			})
		})

		assert.Contains(t, buf.String(), "panic in activity subscriber")
		assert.Contains(t, buf.String(), `"request_id":"watch-1"`)
		assert.Contains(t, buf.String(), `"channel":"dynams:user:3"`)
	})
}
