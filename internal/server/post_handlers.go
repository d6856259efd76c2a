package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/repository"
	"github.com/xanke/disney-sns/internal/service"
)

type createPostRequest struct {
	Type        string                 `json:"type"`
	Content     string                 `json:"content"`
	Images      []string               `json:"images"`
	Task        map[string]interface{} `json:"task"`
	Eit         string                 `json:"eit"`
	Coordinates []float64              `json:"coordinates"`
	PosName     string                 `json:"posName"`
}

type updatePostRequest struct {
	Content     *string             `json:"content"`
	Images      *models.StringSlice `json:"images"`
	Task        *models.JSONMap     `json:"task"`
	Eit         *string             `json:"eit"`
	Coordinates *models.FloatSlice  `json:"coordinates"`
	PosName     *string             `json:"posName"`
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param page query int false "Zero-based page index"
// @Param user_id query int false "Only posts by this author"
// @Param type query string false "Post type"
// @Param sort query string false "new, old or views"
// @Success 200 {object} object{data=[]models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := parsePage(c, service.DefaultPageSize)
	if err != nil {
		return s.respondErr(c, err)
	}
	authorID, err := parseQueryID(c, "user_id")
	if err != nil {
		return s.respondErr(c, err)
	}

	posts, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Page:   page,
		UserID: authorID,
		Type:   c.Query("type"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts)
}

// CreatePost handles POST /api/posts
// @Summary Publish a post
// @Description Content or at least one image is required. A user may publish once every cooldown window.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "Post"
// @Success 201 {object} object{message=string,data=models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Type:        req.Type,
		Content:     req.Content,
		Images:      req.Images,
		Task:        req.Task,
		Eit:         req.Eit,
		Coordinates: req.Coordinates,
		PosName:     req.PosName,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusCreated, "post published", post)
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description Signed-in viewers other than the author are recorded as a view.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{data=models.PostDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPostDetail(c.UserContext(), id, s.optionalUserID(c))
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, detail)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body updatePostRequest true "Fields to change"
// @Success 200 {object} object{message=string,data=models.Post}
// @Failure 403 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID: currentUserID(c),
		PostID: id,
		Update: repository.PostUpdate{
			Content:     req.Content,
			Images:      req.Images,
			Coordinates: req.Coordinates,
			PosName:     req.PosName,
			Eit:         req.Eit,
			Task:        req.Task,
		},
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "post updated", post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: id,
	}); err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "post deleted", nil)
}

// LikePost handles POST /api/posts/:id/like. Liking twice succeeds with
// created=false.
// @Summary Like a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{data=object{like=bool,created=bool}}
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, err := s.postService.LikePost(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"like": true, "created": created})
}

// GetPostDynams handles GET /api/posts/:id/dynams?kind=pv|like, the pages of
// viewers or likers past the first one shown in the detail.
// @Summary Viewers or likers of a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param kind query string false "pv (default) or like"
// @Param limit query int false "Page size (max 100)"
// @Param page query int false "Zero-based page index"
// @Success 200 {object} object{data=[]models.Dynam}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/dynams [get]
func (s *Server) GetPostDynams(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := parsePage(c, service.DefaultPageSize)
	if err != nil {
		return s.respondErr(c, err)
	}

	kind := c.Query("kind", models.DynamKindView)
	dynams, err := s.postService.ListPostActivity(c.UserContext(), id, kind, page)
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, dynams)
}
