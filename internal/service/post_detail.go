package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/observability"
	"github.com/xanke/disney-sns/internal/repository"
)

// GetPostDetail assembles the "view a post" response for viewerID (0 when
// signed out).
//
// A signed-in viewer who is not the author counts as a view: the counter is
// incremented and a view event is recorded. Both are best effort; the post is
// returned even when they fail. The author's own visits are never recorded.
func (s *PostService) GetPostDetail(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPostDetail",
		attribute.Int64("post.id", int64(postID)),
		attribute.Int64("viewer.id", int64(viewerID)),
	)
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	target := PostTarget(post)

	switch {
	case viewerID != 0 && viewerID != post.UserID:
		s.recordView(ctx, post, viewerID)
		ctx = repository.WithPrimaryReads(ctx)
	case viewerID == 0 && s.anonymousViews():
		s.recordAnonymousView(ctx, post)
		ctx = repository.WithPrimaryReads(ctx)
	}

	detail := &models.PostDetail{Post: post}

	if viewerID != 0 && viewerID != post.UserID {
		liked, err := s.activity.HasLiked(ctx, viewerID, target)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		detail.Like = liked
	}

	first := Page{Limit: s.detailPageSize}
	if detail.PvList, err = s.activity.ListByTarget(ctx, target, models.DynamKindView, first); err != nil {
		span.SetError(err)
		return nil, err
	}
	if detail.LikeList, err = s.activity.ListByTarget(ctx, target, models.DynamKindLike, first); err != nil {
		span.SetError(err)
		return nil, err
	}
	if detail.CommentList, err = s.commentRepo.ListByPost(ctx, post.ID, first.Limit, 0); err != nil {
		span.SetError(err)
		return nil, err
	}

	return detail, nil
}

func (s *PostService) recordView(ctx context.Context, post *models.Post, viewerID uint) {
	span, ctx := observability.NewSpan(ctx, "PostService.recordView")
	defer span.End()

	if bestEffort(ctx, "increment_views", func() error { return s.postRepo.IncrementViews(ctx, post.ID) }) {
		post.Views++
	}

	var actor *models.Actor
	ok := bestEffort(ctx, "load_viewer", func() error {
		viewer, err := s.userRepo.GetByID(ctx, viewerID)
		if err != nil {
			return err
		}
		actor = viewer.Actor()
		return nil
	})
	if !ok {
		// keep the dedup key even without the display snapshot
		actor = &models.Actor{ID: viewerID}
	}

	bestEffort(ctx, "record_view", func() error {
		return s.activity.RecordView(ctx, actor, PostTarget(post))
	})
}

func (s *PostService) recordAnonymousView(ctx context.Context, post *models.Post) {
	if bestEffort(ctx, "increment_views", func() error { return s.postRepo.IncrementViews(ctx, post.ID) }) {
		post.Views++
	}
	bestEffort(ctx, "record_view", func() error {
		return s.activity.RecordView(ctx, nil, PostTarget(post))
	})
}
