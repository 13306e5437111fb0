package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalFeed(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 25; i++ {
		seedPost(t, db, alice.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	liked := seedPost(t, db, alice.ID, "liked post", base.Add(30*time.Minute))
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: liked.ID}).Error)

	app := fiber.New()
	app.Get("/api/feed", middleware.OptionalAuth, s.GlobalFeed)

	t.Run("first page, anonymous", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		assert.Len(t, feed.Posts, 10)
		assert.Equal(t, 1, feed.Page)
		assert.Equal(t, 3, feed.TotalPages)
		assert.Equal(t, int64(26), feed.TotalPosts)
		assert.True(t, feed.HasNext)
		assert.False(t, feed.HasPrevious)
		assert.Empty(t, feed.LikedPostIDs)

		// Newest first.
		assert.Equal(t, "liked post", feed.Posts[0].Content)
		assert.Equal(t, int64(1), feed.Posts[0].LikesCount)
		assert.False(t, feed.Posts[0].Liked)
	})

	t.Run("last page", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed?page=3", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		assert.Len(t, feed.Posts, 6)
		assert.Equal(t, 3, feed.Page)
		assert.False(t, feed.HasNext)
		assert.True(t, feed.HasPrevious)
	})

	t.Run("page past the end snaps to the last page", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed?page=99", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		assert.Equal(t, 3, feed.Page)
		assert.Len(t, feed.Posts, 6)
	})

	t.Run("authenticated reader sees their liked set", func(t *testing.T) {
		middleware.InitMiddleware(s.config)
		token, err := s.generateToken(bob.ID, bob.Username)
		require.NoError(t, err)

		req := jsonRequest(t, http.MethodGet, "/api/feed", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		assert.Equal(t, []uint{liked.ID}, feed.LikedPostIDs)
		assert.True(t, feed.Posts[0].Liked)
	})
}

func TestFollowingFeed(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := time.Now().Add(-24 * time.Hour)
	seedPost(t, db, bob.ID, "from bob", base)
	seedPost(t, db, carol.ID, "from carol", base.Add(time.Minute))
	seedPost(t, db, alice.ID, "from alice herself", base.Add(2*time.Minute))

	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)

	app := fiber.New()
	app.Get("/api/feed/following", authAs(alice.ID), s.FollowingFeed)

	t.Run("only followed authors appear", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed/following", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		require.Len(t, feed.Posts, 1)
		assert.Equal(t, "from bob", feed.Posts[0].Content)
		assert.Equal(t, int64(1), feed.TotalPosts)
	})

	t.Run("empty when following nobody", func(t *testing.T) {
		emptyApp := fiber.New()
		emptyApp.Get("/api/feed/following", authAs(carol.ID), s.FollowingFeed)

		resp, err := emptyApp.Test(jsonRequest(t, http.MethodGet, "/api/feed/following", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var feed service.FeedPage
		decodeBody(t, resp, &feed)
		assert.Empty(t, feed.Posts)
		assert.Equal(t, 1, feed.TotalPages)
	})

	t.Run("unauthenticated is rejected by the middleware", func(t *testing.T) {
		middleware.InitMiddleware(s.config)
		guarded := fiber.New()
		guarded.Get("/api/feed/following", middleware.AuthRequired, s.FollowingFeed)

		resp, err := guarded.Test(jsonRequest(t, http.MethodGet, "/api/feed/following", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
