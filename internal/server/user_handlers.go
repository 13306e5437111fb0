package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username?page=N.
// The response is the profile feed variant: the user's posts plus follow
// counts and whether the requester follows them.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profileUser, err := s.userService.GetByUsername(ctx, username)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.feedService.ProfileFeed(ctx, profileUser, parsePage(c), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// FollowUser handles POST /api/users/:username/follow.
// Toggles the follow edge; a self-follow attempt is a silent no-op.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	target, err := s.userService.GetByUsername(ctx, username)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.userService.ToggleFollow(ctx, currentUserID(c), target)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
