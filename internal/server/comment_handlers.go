package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/service"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment creates a comment on a post (protected)
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body createCommentRequest true "Comment"
// @Success 201 {object} object{message=string,data=models.Comment}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusCreated, "comment added", created)
}

// GetComments pages the comments of a post, oldest first (public)
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Param limit query int false "Page size (max 100)"
// @Param page query int false "Zero-based page index"
// @Success 200 {object} object{data=[]models.Comment}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := parsePage(c, service.DefaultPageSize)
	if err != nil {
		return s.respondErr(c, err)
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID, page)
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, comments)
}
