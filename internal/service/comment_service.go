package service

import (
	"context"
	"strings"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/repository"
)

const maxCommentLen = 1000

// CommentService lists and adds comments on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// ListComments pages the comments of a post, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page Page) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, page.Limit, page.Offset())
}

// CreateComment adds a comment, copying the commenter's display fields.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authorization required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("comment content is required")
	}
	if len([]rune(content)) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 1000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     in.PostID,
		UserID:     author.ID,
		NickName:   author.NickName,
		AvatarFile: author.AvatarFile,
		Content:    content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
