package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xanke/disney-sns/internal/cache"
	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
	"github.com/xanke/disney-sns/internal/repository"
)

const (
	maxContentLen = 5000
	maxImages     = 9
)

// PostService publishes, lists, edits and assembles posts.
type PostService struct {
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
	commentRepo    repository.CommentRepository
	activity       *ActivityService
	cooldown       *PostCooldown
	detailPageSize int
	anonymousViews func() bool
}

// PostServiceConfig carries the tunables of PostService.
type PostServiceConfig struct {
	Cooldown       *PostCooldown
	DetailPageSize int
	// AnonymousViews, when it returns true, makes signed-out detail views
	// count and record an actor-less view event.
	AnonymousViews func() bool
}

type CreatePostInput struct {
	UserID      uint
	Type        string
	Content     string
	Images      []string
	Task        map[string]interface{}
	Eit         string
	Coordinates []float64
	PosName     string
}

type ListPostsInput struct {
	Page   Page
	UserID uint
	Type   string
	Sort   string
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Update repository.PostUpdate
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	activity *ActivityService,
	cfg PostServiceConfig,
) *PostService {
	if cfg.Cooldown == nil {
		cfg.Cooldown = NewPostCooldown(DefaultPostCooldown)
	}
	if cfg.DetailPageSize <= 0 {
		cfg.DetailPageSize = 10
	}
	if cfg.AnonymousViews == nil {
		cfg.AnonymousViews = func() bool { return false }
	}
	return &PostService{
		postRepo:       postRepo,
		userRepo:       userRepo,
		commentRepo:    commentRepo,
		activity:       activity,
		cooldown:       cfg.Cooldown,
		detailPageSize: cfg.DetailPageSize,
		anonymousViews: cfg.AnonymousViews,
	}
}

// ListPosts returns one page of posts. The unfiltered newest-first listing
// is served through the post list cache.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	switch in.Sort {
	case "", repository.PostSortNew, repository.PostSortOld, repository.PostSortViews:
	default:
		return nil, models.NewValidationError("sort must be one of new, old, views")
	}
	if in.Page.Limit <= 0 {
		in.Page.Limit = DefaultPageSize
	}

	filter := repository.PostFilter{UserID: in.UserID, Type: in.Type, Sort: in.Sort}
	if in.UserID != 0 || in.Type != "" {
		return s.postRepo.List(ctx, filter, in.Page.Limit, in.Page.Offset())
	}

	var posts []*models.Post
	key := cache.PostsListKey(ctx, fmt.Sprintf("%s:%d:%d", in.Sort, in.Page.Limit, in.Page.Index))
	err := cache.Aside(ctx, key, &posts, cache.ListTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.List(ctx, filter, in.Page.Limit, in.Page.Offset())
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a post for in.UserID, copying the author's display
// fields onto it. The author's PostAt is updated afterwards on a best-effort
// basis: the post stands even if that update fails.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	postType := strings.TrimSpace(in.Type)
	if postType == "" {
		postType = models.PostTypeSay
	}
	post := &models.Post{
		UserID:      in.UserID,
		Type:        postType,
		Content:     strings.TrimSpace(in.Content),
		Images:      models.StringSlice(in.Images),
		Task:        models.JSONMap(in.Task),
		Eit:         in.Eit,
		Coordinates: models.FloatSlice(in.Coordinates),
		PosName:     in.PosName,
	}
	if err := validatePostBody(post); err != nil {
		return nil, err
	}

	// PostAt must not come from the user cache: a racing reader can put a
	// stale copy back after TouchPostAt invalidates it.
	author, err := s.userRepo.GetFresh(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !s.cooldown.Allow(author) {
		observability.PostRateLimited.Inc()
		return nil, models.NewRateLimitError("posting too fast, take a break")
	}

	post.OpenID = author.OpenID
	post.NickName = author.NickName
	post.AvatarFile = author.AvatarFile
	post.City = author.City
	post.Gender = author.Gender
	post.Country = author.Country

	publishedAt := s.cooldown.Now()
	post.CreatedAt = publishedAt
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	bestEffort(ctx, "touch_post_at", func() error {
		return s.userRepo.TouchPostAt(ctx, author.ID, publishedAt)
	})
	return post, nil
}

func validatePostBody(p *models.Post) error {
	if !p.HasBody() {
		return models.NewValidationError("content or at least one image is required")
	}
	if len([]rune(p.Content)) > maxContentLen {
		return models.NewValidationError(fmt.Sprintf("content too long (max %d characters)", maxContentLen))
	}
	if len(p.Images) > maxImages {
		return models.NewValidationError(fmt.Sprintf("at most %d images per post", maxImages))
	}
	for _, img := range p.Images {
		if strings.TrimSpace(img) == "" {
			return models.NewValidationError("image references must not be empty")
		}
	}
	if len(p.Coordinates) != 0 && len(p.Coordinates) != 2 {
		return models.NewValidationError("coordinates must be [longitude, latitude]")
	}
	return nil
}

// UpdatePost edits the content fields of a post owned by in.UserID.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.ownedPost(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Update.Content != nil {
		trimmed := strings.TrimSpace(*in.Update.Content)
		in.Update.Content = &trimmed
	}
	updated := *post
	in.Update.Apply(&updated)
	if err := validatePostBody(&updated); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post.ID, in.Update); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePost removes a post owned by in.UserID.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.ownedPost(ctx, in.UserID, in.PostID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post.ID)
}

func (s *PostService) ownedPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authorization required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("you can only modify your own posts")
	}
	return post, nil
}

// LikePost records viewerID's like of a post. Liking twice is not an error.
func (s *PostService) LikePost(ctx context.Context, viewerID, postID uint) (bool, error) {
	if viewerID == 0 {
		return false, models.NewUnauthorizedError("Authorization required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return false, err
	}
	return s.activity.RecordLike(ctx, *viewer.Actor(), PostTarget(post))
}

// ListPostActivity pages the viewers or likers of a post.
func (s *PostService) ListPostActivity(ctx context.Context, postID uint, kind string, page Page) ([]*models.Dynam, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.activity.ListByTarget(ctx, PostTarget(post), kind, page)
}
