package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
// Whitespace-only content is a silent no-op: nothing is created and the
// client gets 204, so a duplicate submission on refresh cannot post twice.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, userID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	if post == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// EditPost handles PUT /api/posts/:id.
// Only the author may edit; the saved content is echoed back.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.EditPost(ctx, userID, postID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated successfully.",
		"content": post.Content,
	})
}

// LikePost handles POST /api/posts/:id/like.
// The endpoint toggles: if already liked it unlikes, and vice versa. The
// response is a small JSON payload for asynchronous partial-page updates.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(ctx, userID, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
