package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xanke/disney-sns/internal/cache"
	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
)

// UserRepository reads the display profile of a user and maintains PostAt.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetFresh reads the user from the primary, bypassing the cache.
	GetFresh(ctx context.Context, id uint) (*models.User, error)
	TouchPostAt(ctx context.Context, id uint, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the cache encoding of a user. models.User hides OpenID from
// JSON, but the post author snapshot needs it.
type cachedUser struct {
	models.User
	OpenID string `json:"openId"`
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("insert", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("user already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cached cachedUser
	err := cache.Aside(ctx, cache.UserKey(id), &cached, cache.UserTTL, func() error {
		defer observability.TrackQuery("select", "users")()
		if err := r.db.WithContext(ctx).First(&cached.User, id).Error; err != nil {
			return lookupError(err, "user", id)
		}
		cached.OpenID = cached.User.OpenID
		return nil
	})
	if err != nil {
		return nil, err
	}
	user := cached.User
	user.OpenID = cached.OpenID
	return &user, nil
}

func (r *userRepository) GetFresh(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupError(err, "user", id)
	}
	return &user, nil
}

// TouchPostAt records the time of the user's latest post.
func (r *userRepository) TouchPostAt(ctx context.Context, id uint, at time.Time) error {
	defer observability.TrackQuery("update", "users")()
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumn("post_at", at)
	cache.Invalidate(ctx, cache.UserKey(id))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	return nil
}
