package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/repository"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	listFn           func(context.Context, repository.PostFilter, int, int) ([]*models.Post, error)
	incrementViewsFn func(context.Context, uint) error
	updateFn         func(context.Context, uint, repository.PostUpdate) error
	deleteFn         func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, f, limit, offset)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, u repository.PostUpdate) error {
	return s.updateFn(ctx, id, u)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:           func(_ context.Context, _ repository.PostFilter, _, _ int) ([]*models.Post, error) { return nil, nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
		updateFn:         func(_ context.Context, _ uint, _ repository.PostUpdate) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn      func(context.Context, *models.User) error
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getFreshFn    func(context.Context, uint) (*models.User, error)
	touchPostAtFn func(context.Context, uint, time.Time) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetFresh(ctx context.Context, id uint) (*models.User, error) {
	if s.getFreshFn == nil {
		return s.getByIDFn(ctx, id)
	}
	return s.getFreshFn(ctx, id)
}
func (s *userRepoStub) TouchPostAt(ctx context.Context, id uint, at time.Time) error {
	return s.touchPostAtFn(ctx, id, at)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:      func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		touchPostAtFn: func(_ context.Context, _ uint, _ time.Time) error { return nil },
	}
}

// dynamRepoStub is a stub for repository.DynamRepository.
type dynamRepoStub struct {
	upsertViewFn   func(context.Context, *models.Dynam) (bool, error)
	insertLikeFn   func(context.Context, *models.Dynam) (bool, error)
	existsFn       func(context.Context, uint, string, uint, string) (bool, error)
	listByTargetFn func(context.Context, string, uint, string, int, int) ([]*models.Dynam, error)
	listByAuthorFn func(context.Context, uint, string, int, int) ([]*models.Dynam, error)
}

func (s *dynamRepoStub) UpsertView(ctx context.Context, d *models.Dynam) (bool, error) {
	return s.upsertViewFn(ctx, d)
}
func (s *dynamRepoStub) InsertLike(ctx context.Context, d *models.Dynam) (bool, error) {
	return s.insertLikeFn(ctx, d)
}
func (s *dynamRepoStub) Exists(ctx context.Context, actorID uint, tt string, tid uint, kind string) (bool, error) {
	return s.existsFn(ctx, actorID, tt, tid, kind)
}
func (s *dynamRepoStub) ListByTarget(ctx context.Context, tt string, tid uint, kind string, limit, offset int) ([]*models.Dynam, error) {
	return s.listByTargetFn(ctx, tt, tid, kind, limit, offset)
}
func (s *dynamRepoStub) ListByAuthor(ctx context.Context, authorID uint, kind string, limit, offset int) ([]*models.Dynam, error) {
	return s.listByAuthorFn(ctx, authorID, kind, limit, offset)
}

func noopDynamRepo() *dynamRepoStub {
	return &dynamRepoStub{
		upsertViewFn: func(_ context.Context, _ *models.Dynam) (bool, error) { return true, nil },
		insertLikeFn: func(_ context.Context, _ *models.Dynam) (bool, error) { return true, nil },
		existsFn:     func(_ context.Context, _ uint, _ string, _ uint, _ string) (bool, error) { return false, nil },
		listByTargetFn: func(_ context.Context, _ string, _ uint, _ string, _, _ int) ([]*models.Dynam, error) {
			return []*models.Dynam{}, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _ string, _, _ int) ([]*models.Dynam, error) {
			return []*models.Dynam{}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByPostFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return []*models.Comment{}, nil
		},
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

var errDB = errors.New("db down")

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
