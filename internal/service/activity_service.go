package service

import (
	"context"
	"time"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
	"github.com/xanke/disney-sns/internal/repository"
)

// ActivityPublisher receives newly recorded activity.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, d *models.Dynam) error
}

// Target is the object an interaction is recorded against.
type Target struct {
	AuthorID uint
	Type     string
	ID       uint
}

// PostTarget returns the Target for p.
func PostTarget(p *models.Post) Target {
	return Target{AuthorID: p.UserID, Type: models.TargetTypePost, ID: p.ID}
}

// ActivityService is the activity ledger: deduplicated view and like events
// keyed by (actor, target type, target id, kind).
type ActivityService struct {
	dynams     repository.DynamRepository
	publisher  ActivityPublisher
	shouldPush func(authorID uint) bool
	now        func() time.Time
}

// NewActivityService creates an ActivityService. publisher may be nil.
func NewActivityService(dynams repository.DynamRepository, publisher ActivityPublisher) *ActivityService {
	return &ActivityService{dynams: dynams, publisher: publisher, now: time.Now}
}

// WithPushFilter limits publishing to authors for which allow returns true.
func (s *ActivityService) WithPushFilter(allow func(authorID uint) bool) *ActivityService {
	s.shouldPush = allow
	return s
}

func (s *ActivityService) event(actor *models.Actor, target Target, kind string) *models.Dynam {
	d := &models.Dynam{
		TargetAuthorID: target.AuthorID,
		TargetType:     target.Type,
		TargetID:       target.ID,
		Kind:           kind,
		At:             s.now(),
	}
	if actor != nil {
		id := actor.ID
		d.ActorID = &id
		d.ActorName = actor.Name
		d.ActorAvatar = actor.Avatar
	}
	return d
}

// RecordView stores a view, or refreshes the time of the actor's earlier
// view of the same target. actor nil records an anonymous view, which is
// never merged with another. Callers must not record an author's view of
// their own content.
func (s *ActivityService) RecordView(ctx context.Context, actor *models.Actor, target Target) error {
	d := s.event(actor, target, models.DynamKindView)
	created, err := s.dynams.UpsertView(ctx, d)
	if err != nil {
		return err
	}
	observability.ActivityEvents.WithLabelValues(models.DynamKindView, viewOutcome(actor, created)).Inc()
	s.publish(ctx, d)
	return nil
}

func viewOutcome(actor *models.Actor, created bool) string {
	switch {
	case actor == nil:
		return "anonymous"
	case created:
		return "created"
	default:
		return "refreshed"
	}
}

// RecordLike stores a like once; repeating it is a no-op. It reports whether
// a new like was created.
func (s *ActivityService) RecordLike(ctx context.Context, actor models.Actor, target Target) (bool, error) {
	if actor.ID == 0 {
		return false, models.NewUnauthorizedError("Authorization required")
	}
	if actor.ID == target.AuthorID {
		return false, models.NewValidationError("you cannot like your own post")
	}

	d := s.event(&actor, target, models.DynamKindLike)
	created, err := s.dynams.InsertLike(ctx, d)
	if err != nil {
		return false, err
	}
	if !created {
		observability.ActivityEvents.WithLabelValues(models.DynamKindLike, "duplicate").Inc()
		return false, nil
	}
	observability.ActivityEvents.WithLabelValues(models.DynamKindLike, "created").Inc()
	s.publish(ctx, d)
	return true, nil
}

// HasLiked reports whether actorID has liked target.
func (s *ActivityService) HasLiked(ctx context.Context, actorID uint, target Target) (bool, error) {
	if actorID == 0 {
		return false, nil
	}
	return s.dynams.Exists(ctx, actorID, target.Type, target.ID, models.DynamKindLike)
}

// ListByTarget pages the events of one kind on target, most recent first.
func (s *ActivityService) ListByTarget(ctx context.Context, target Target, kind string, page Page) ([]*models.Dynam, error) {
	if !models.ValidDynamKind(kind) {
		return nil, models.NewValidationError("kind must be pv or like")
	}
	return s.dynams.ListByTarget(ctx, target.Type, target.ID, kind, page.Limit, page.Offset())
}

// ListForAuthor pages the activity on everything authorID owns, most recent
// first. An empty kind returns both views and likes.
func (s *ActivityService) ListForAuthor(ctx context.Context, authorID uint, kind string, page Page) ([]*models.Dynam, error) {
	if kind != "" && !models.ValidDynamKind(kind) {
		return nil, models.NewValidationError("kind must be pv or like")
	}
	return s.dynams.ListByAuthor(ctx, authorID, kind, page.Limit, page.Offset())
}

func (s *ActivityService) publish(ctx context.Context, d *models.Dynam) {
	if s.publisher == nil || (s.shouldPush != nil && !s.shouldPush(d.TargetAuthorID)) {
		return
	}
	bestEffort(ctx, "publish_activity", func() error {
		return s.publisher.PublishActivity(ctx, d)
	})
}
