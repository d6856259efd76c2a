package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xanke/disney-sns/internal/models"
	"github.com/xanke/disney-sns/internal/service"
)

// GetMyDynams handles GET /api/dynams: views and likes on the caller's posts,
// newest first. kind narrows it to pv or like.
// @Summary Activity on my posts
// @Tags dynams
// @Produce json
// @Security BearerAuth
// @Param kind query string false "pv or like"
// @Param limit query int false "Page size (max 100)"
// @Param page query int false "Zero-based page index"
// @Success 200 {object} object{data=[]models.Dynam}
// @Router /dynams [get]
func (s *Server) GetMyDynams(c *fiber.Ctx) error {
	page, err := parsePage(c, service.DefaultPageSize)
	if err != nil {
		return s.respondErr(c, err)
	}

	dynams, err := s.activity.ListForAuthor(c.UserContext(), currentUserID(c), c.Query("kind"), page)
	if err != nil {
		return s.respondErr(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, dynams)
}

// GetFeatureFlags returns the flags as evaluated for the caller.
// @Summary Feature flags
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{data=map[string]bool}
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return models.RespondWithData(c, fiber.StatusOK, s.featureFlags.Snapshot(currentUserID(c)))
}
