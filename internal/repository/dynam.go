package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
)

var dynamKey = []clause.Column{
	{Name: "actor_id"},
	{Name: "target_type"},
	{Name: "target_id"},
	{Name: "kind"},
}

// DynamRepository stores the activity ledger.
type DynamRepository interface {
	// UpsertView inserts a view or, if the actor already viewed the target,
	// refreshes its time and actor snapshot, and reports whether it inserted.
	// Anonymous views always insert.
	UpsertView(ctx context.Context, d *models.Dynam) (bool, error)
	// InsertLike inserts a like unless one exists and reports whether it did.
	InsertLike(ctx context.Context, d *models.Dynam) (bool, error)
	Exists(ctx context.Context, actorID uint, targetType string, targetID uint, kind string) (bool, error)
	ListByTarget(ctx context.Context, targetType string, targetID uint, kind string, limit, offset int) ([]*models.Dynam, error)
	// ListByAuthor returns activity on content owned by authorID. kind may be empty.
	ListByAuthor(ctx context.Context, authorID uint, kind string, limit, offset int) ([]*models.Dynam, error)
}

type dynamRepository struct {
	db *gorm.DB
}

// NewDynamRepository creates a new DynamRepository
func NewDynamRepository(db *gorm.DB) DynamRepository {
	return &dynamRepository{db: db}
}

func (r *dynamRepository) UpsertView(ctx context.Context, d *models.Dynam) (bool, error) {
	if d.ActorID == nil {
		defer observability.TrackQuery("insert", "dynams")()
		if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
			return false, models.NewInternalError(err)
		}
		return true, nil
	}

	// The unique key keeps this to one row per actor even when two first
	// views race: the loser's insert is a no-op and it refreshes instead.
	created, err := r.insertIgnoringDuplicate(ctx, d)
	if err != nil || created {
		return created, err
	}

	defer observability.TrackQuery("update", "dynams")()
	err = r.db.WithContext(ctx).Model(&models.Dynam{}).
		Where("actor_id = ? AND target_type = ? AND target_id = ? AND kind = ?", *d.ActorID, d.TargetType, d.TargetID, d.Kind).
		Updates(map[string]interface{}{
			"at":               d.At,
			"actor_name":       d.ActorName,
			"actor_avatar":     d.ActorAvatar,
			"target_author_id": d.TargetAuthorID,
		}).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return false, nil
}

func (r *dynamRepository) insertIgnoringDuplicate(ctx context.Context, d *models.Dynam) (bool, error) {
	defer observability.TrackQuery("insert", "dynams")()
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: dynamKey, DoNothing: true}).
		Create(d)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *dynamRepository) InsertLike(ctx context.Context, d *models.Dynam) (bool, error) {
	return r.insertIgnoringDuplicate(ctx, d)
}

func (r *dynamRepository) Exists(ctx context.Context, actorID uint, targetType string, targetID uint, kind string) (bool, error) {
	defer observability.TrackQuery("select", "dynams")()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Dynam{}).
		Where("actor_id = ? AND target_type = ? AND target_id = ? AND kind = ?", actorID, targetType, targetID, kind).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *dynamRepository) ListByTarget(ctx context.Context, targetType string, targetID uint, kind string, limit, offset int) ([]*models.Dynam, error) {
	defer observability.TrackQuery("select", "dynams")()
	out := make([]*models.Dynam, 0, limit)
	err := readDB(ctx, r.db).WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND kind = ?", targetType, targetID, kind).
		Order("at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func (r *dynamRepository) ListByAuthor(ctx context.Context, authorID uint, kind string, limit, offset int) ([]*models.Dynam, error) {
	defer observability.TrackQuery("select", "dynams")()
	q := readDB(ctx, r.db).WithContext(ctx).Where("target_author_id = ?", authorID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	out := make([]*models.Dynam, 0, limit)
	if err := q.Order("at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}
