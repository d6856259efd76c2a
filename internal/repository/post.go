package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/xanke/disney-sns/internal/cache"
	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
)

// Post list orderings.
const (
	PostSortNew   = "new"
	PostSortOld   = "old"
	PostSortViews = "views"
)

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	UserID uint
	Type   string
	Sort   string
}

// PostUpdate holds the only columns an owner may change. nil fields are left alone.
type PostUpdate struct {
	Content     *string
	Images      *models.StringSlice
	Coordinates *models.FloatSlice
	PosName     *string
	Eit         *string
	Task        *models.JSONMap
}

// Columns returns the column/value pairs to write.
func (u PostUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.Images != nil {
		cols["images"] = *u.Images
	}
	if u.Coordinates != nil {
		cols["coordinates"] = *u.Coordinates
	}
	if u.PosName != nil {
		cols["pos_name"] = *u.PosName
	}
	if u.Eit != nil {
		cols["eit"] = *u.Eit
	}
	if u.Task != nil {
		cols["task"] = *u.Task
	}
	return cols
}

// Apply copies the set fields onto p.
func (u PostUpdate) Apply(p *models.Post) {
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Images != nil {
		p.Images = *u.Images
	}
	if u.Coordinates != nil {
		p.Coordinates = *u.Coordinates
	}
	if u.PosName != nil {
		p.PosName = *u.PosName
	}
	if u.Eit != nil {
		p.Eit = *u.Eit
	}
	if u.Task != nil {
		p.Task = *u.Task
	}
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, update PostUpdate) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

// GetByID reads from the primary so a post is visible right after it is written.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, lookupError(err, "post", id)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	q := readDB(ctx, r.db).WithContext(ctx).Model(&models.Post{})
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	switch filter.Sort {
	case PostSortOld:
		q = q.Order("created_at ASC").Order("id ASC")
	case PostSortViews:
		q = q.Order("views DESC").Order("id DESC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}

	posts := make([]*models.Post, 0, limit)
	if err := q.Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// IncrementViews bumps the counter in a single statement so concurrent views
// are never lost.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	defer observability.TrackQuery("update", "posts")()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, id uint, update PostUpdate) error {
	cols := update.Columns()
	if len(cols) == 0 {
		return nil
	}

	defer observability.TrackQuery("update", "posts")()
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}
