package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyFormat       = "user:%d"
	postsListVersionKey = "posts:list:version"
	postsListKeyFormat  = "posts:list:v%d:%s"
)

const (
	// ListTTL bounds how stale a cached post list page can be.
	ListTTL = 30 * time.Second
	UserTTL = 5 * time.Minute
)

// UserKey is the cache key of one user record.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyFormat, userID)
}

// PostsListKey builds the cache key for one post list query. variant
// identifies the query (filter and sort); the version part changes on every
// InvalidatePostsList so old pages are never served after a write.
func PostsListKey(ctx context.Context, variant string) string {
	var version int64
	if client != nil {
		if v, err := client.Get(ctx, postsListVersionKey).Int64(); err == nil {
			version = v
		}
	}
	return fmt.Sprintf(postsListKeyFormat, version, variant)
}

// InvalidatePostsList drops every cached post list page.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	client.Incr(ctx, postsListVersionKey)
}
