package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xanke/disney-sns/internal/database"
	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/repository"
)

type scenario struct {
	db       *gorm.DB
	clock    time.Time
	posts    *PostService
	comments *CommentService
	activity *ActivityService
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	s := &scenario{db: db, clock: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	s.activity = NewActivityService(repository.NewDynamRepository(db), nil)
	cooldown := NewPostCooldown(DefaultPostCooldown).WithClock(func() time.Time { return s.clock })
	s.posts = NewPostService(postRepo, userRepo, commentRepo, s.activity, PostServiceConfig{Cooldown: cooldown})
	s.comments = NewCommentService(commentRepo, postRepo, userRepo)
	return s
}

func (s *scenario) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{OpenID: "open-" + name, NickName: name}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func TestScenario_PostViewLike(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	u1 := s.user(t, "mickey")
	u2 := s.user(t, "donald")

	post, err := s.posts.CreatePost(ctx, CreatePostInput{UserID: u1.ID, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), post.Views)

	// another user's view counts once and is recorded
	detail, err := s.posts.GetPostDetail(ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)
	require.Len(t, detail.PvList, 1)
	assert.Equal(t, "donald", detail.PvList[0].ActorName)
	assert.False(t, detail.Like)

	// a repeat view bumps the counter but keeps one event per viewer
	detail, err = s.posts.GetPostDetail(ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Views)
	assert.Len(t, detail.PvList, 1)

	// the author's own view leaves everything untouched
	detail, err = s.posts.GetPostDetail(ctx, post.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Views)
	assert.Len(t, detail.PvList, 1)

	created, err := s.posts.LikePost(ctx, u2.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = s.posts.LikePost(ctx, u2.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, created)

	liked, err := s.activity.HasLiked(ctx, u2.ID, PostTarget(post))
	require.NoError(t, err)
	assert.True(t, liked)

	detail, err = s.posts.GetPostDetail(ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.True(t, detail.Like)
	assert.Len(t, detail.LikeList, 1)

	feed, err := s.activity.ListForAuthor(ctx, u1.ID, "", Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, feed, 2)
	assert.Equal(t, models.DynamKindLike, feed[0].Kind, "newest first")
}

func TestScenario_Cooldown(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	u1 := s.user(t, "mickey")

	_, err := s.posts.CreatePost(ctx, CreatePostInput{UserID: u1.ID, Content: "first"})
	require.NoError(t, err)

	s.clock = s.clock.Add(5 * time.Second)
	_, err = s.posts.CreatePost(ctx, CreatePostInput{UserID: u1.ID, Content: "second"})
	assertAppError(t, err, models.CodeRateLimited)

	s.clock = s.clock.Add(6 * time.Second)
	_, err = s.posts.CreatePost(ctx, CreatePostInput{UserID: u1.ID, Content: "second"})
	require.NoError(t, err)

	posts, err := s.posts.ListPosts(ctx, ListPostsInput{Page: Page{Limit: 10}, UserID: u1.ID})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content)
}

func TestScenario_OwnershipAndComments(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	u1 := s.user(t, "mickey")
	u2 := s.user(t, "donald")

	post, err := s.posts.CreatePost(ctx, CreatePostInput{UserID: u1.ID, Content: "hello"})
	require.NoError(t, err)

	content := "hacked"
	_, err = s.posts.UpdatePost(ctx, UpdatePostInput{UserID: u2.ID, PostID: post.ID, Update: repository.PostUpdate{Content: &content}})
	assertAppError(t, err, models.CodeForbidden)
	err = s.posts.DeletePost(ctx, DeletePostInput{UserID: u2.ID, PostID: post.ID})
	assertAppError(t, err, models.CodeForbidden)

	detail, err := s.posts.GetPostDetail(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", detail.Content)

	for _, text := range []string{"one", "two", "three"} {
		_, err := s.comments.CreateComment(ctx, CreateCommentInput{UserID: u2.ID, PostID: post.ID, Content: text})
		require.NoError(t, err)
	}
	page, err := s.comments.ListComments(ctx, post.ID, Page{Limit: 2, Index: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "three", page[0].Content)

	require.NoError(t, s.posts.DeletePost(ctx, DeletePostInput{UserID: u1.ID, PostID: post.ID}))
	_, err = s.posts.GetPostDetail(ctx, post.ID, u2.ID)
	assertAppError(t, err, models.CodeNotFound)
}
