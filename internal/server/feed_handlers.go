package server

import (
	"github.com/gofiber/fiber/v2"
)

// GlobalFeed handles GET /api/feed?page=N
func (s *Server) GlobalFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GlobalFeed(c.Context(), parsePage(c), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

// FollowingFeed handles GET /api/feed/following?page=N
func (s *Server) FollowingFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.FollowingFeed(c.Context(), parsePage(c), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}
