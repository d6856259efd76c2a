// Package notifications fans activity events out over Redis pub/sub so that
// delivery services can push "someone viewed/liked your post" to authors.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xanke/disney-sns/internal/middleware"
	"github.com/xanke/disney-sns/internal/models"
)

const activityChannelPrefix = "dynams:user:"

// ActivityMessage is the payload published for one activity event.
type ActivityMessage struct {
	Kind       string    `json:"kind"`
	TargetType string    `json:"targetType"`
	TargetID   uint      `json:"targetId"`
	ActorID    *uint     `json:"userid,omitempty"`
	ActorName  string    `json:"nickName,omitempty"`
	At         time.Time `json:"at"`
}

// Notifier publishes activity into Redis channels. A Notifier without a
// client drops everything silently.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// ActivityChannel is the channel carrying activity on content owned by userID.
func ActivityChannel(userID uint) string {
	return fmt.Sprintf("%s%d", activityChannelPrefix, userID)
}

// PublishActivity sends d to the target author's channel.
func (n *Notifier) PublishActivity(ctx context.Context, d *models.Dynam) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ActivityMessage{
		Kind:       d.Kind,
		TargetType: d.TargetType,
		TargetID:   d.TargetID,
		ActorID:    d.ActorID,
		ActorName:  d.ActorName,
		At:         d.At,
	})
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}
	return n.rdb.Publish(ctx, ActivityChannel(d.TargetAuthorID), payload).Err()
}

// SubscribeActivity delivers activity for every author to onMessage until ctx
// is cancelled. A userID of 0 subscribes to all authors.
func (n *Notifier) SubscribeActivity(
	ctx context.Context, userID uint, onMessage func(authorID uint, msg ActivityMessage),
) error {
	if n == nil || n.rdb == nil {
		return fmt.Errorf("notifier has no redis client")
	}

	var sub *redis.PubSub
	if userID == 0 {
		sub = n.rdb.PSubscribe(ctx, activityChannelPrefix+"*")
	} else {
		sub = n.rdb.Subscribe(ctx, ActivityChannel(userID))
	}
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe activity: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				deliver(ctx, raw, onMessage)
			}
		}
	}()
	return nil
}

func deliver(ctx context.Context, raw *redis.Message, onMessage func(uint, ActivityMessage)) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.ErrorContext(ctx, "panic in activity subscriber",
				"channel", raw.Channel, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	authorID, err := strconv.ParseUint(strings.TrimPrefix(raw.Channel, activityChannelPrefix), 10, 64)
	if err != nil {
		return
	}
	var msg ActivityMessage
	if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
		middleware.Logger.WarnContext(ctx, "dropping malformed activity message", "channel", raw.Channel, "error", err)
		return
	}
	onMessage(uint(authorID), msg)
}
