// Package service holds the business rules: post publishing, the activity
// ledger and post detail assembly.
package service

import (
	"time"

	"github.com/xanke/disney-sns/internal/models"
)

// DefaultPostCooldown is the minimum gap between two posts by the same user.
const DefaultPostCooldown = 10 * time.Second

// PostCooldown gates publishing on the user's last post time.
//
// The check and the later PostAt update are not atomic: two posts sent at
// nearly the same moment can both pass. That window is accepted.
type PostCooldown struct {
	window time.Duration
	now    func() time.Time
}

// NewPostCooldown returns a cooldown of window using the wall clock.
func NewPostCooldown(window time.Duration) *PostCooldown {
	if window <= 0 {
		window = DefaultPostCooldown
	}
	return &PostCooldown{window: window, now: time.Now}
}

// WithClock replaces the clock, for tests.
func (c *PostCooldown) WithClock(now func() time.Time) *PostCooldown {
	c.now = now
	return c
}

// Now is the cooldown's current time; publish times are taken from it.
func (c *PostCooldown) Now() time.Time {
	return c.now()
}

// Allow reports whether user may publish now. Users who never posted may.
func (c *PostCooldown) Allow(user *models.User) bool {
	if user.PostAt == nil {
		return true
	}
	return c.now().Sub(*user.PostAt) > c.window
}
