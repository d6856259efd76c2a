package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xanke/disney-sns/internal/models"
)

func TestPostCooldown_Allow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewPostCooldown(10 * time.Second).WithClock(func() time.Time { return now })

	at := func(ago time.Duration) *models.User {
		ts := now.Add(-ago)
		return &models.User{PostAt: &ts}
	}

	assert.True(t, c.Allow(&models.User{}), "never posted")
	assert.False(t, c.Allow(at(0)))
	assert.False(t, c.Allow(at(9*time.Second)))
	assert.False(t, c.Allow(at(10*time.Second)), "the window is exclusive")
	assert.True(t, c.Allow(at(10*time.Second+time.Millisecond)))
	assert.True(t, c.Allow(at(time.Hour)))
	assert.Equal(t, now, c.Now())
}

func TestNewPostCooldown_DefaultsWindow(t *testing.T) {
	c := NewPostCooldown(0)
	assert.Equal(t, DefaultPostCooldown, c.window)
}
