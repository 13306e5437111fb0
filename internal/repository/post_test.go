package repository

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "hello", time.Now())

	liked, count, err := repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	// A second toggle removes the like and restores the original state.
	liked, count, err = repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	// Likes from different users accumulate independently.
	_, _, err = repo.ToggleLike(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	liked, count, err = repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(2), count)
}

func TestPostRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "hello", time.Now())

	_, _, err := repo.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	t.Run("viewer who liked", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Content)
		assert.Equal(t, "alice", got.User.Username)
		assert.Equal(t, int64(1), got.LikesCount)
		assert.True(t, got.Liked)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.LikesCount)
		assert.False(t, got.Liked)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999, bob.ID)
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestPostRepository_ListAll_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	oldest := createTestPost(t, db, alice.ID, "oldest", base)
	// Two posts sharing a timestamp; the higher ID must come first.
	tieA := createTestPost(t, db, alice.ID, "tie-a", base.Add(10*time.Minute))
	tieB := createTestPost(t, db, alice.ID, "tie-b", base.Add(10*time.Minute))
	newest := createTestPost(t, db, alice.ID, "newest", base.Add(20*time.Minute))

	posts, err := repo.ListAll(ctx, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	assert.Equal(t, newest.ID, posts[0].ID)
	assert.Equal(t, tieB.ID, posts[1].ID)
	assert.Equal(t, tieA.ID, posts[2].ID)
	assert.Equal(t, oldest.ID, posts[3].ID)
}

func TestPostRepository_ListAll_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		createTestPost(t, db, alice.ID, "post", base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.ListAll(ctx, 10, 0, 0)
	require.NoError(t, err)
	assert.Len(t, first, 10)

	second, err := repo.ListAll(ctx, 10, 10, 0)
	require.NoError(t, err)
	assert.Len(t, second, 5)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15), count)
}

func TestPostRepository_ListByAuthors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	createTestPost(t, db, alice.ID, "from alice", base)
	createTestPost(t, db, bob.ID, "from bob", base.Add(time.Minute))
	createTestPost(t, db, carol.ID, "from carol", base.Add(2*time.Minute))

	t.Run("filters to the given authors", func(t *testing.T) {
		posts, err := repo.ListByAuthors(ctx, []uint{alice.ID, bob.ID}, 10, 0, 0)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "from bob", posts[0].Content)
		assert.Equal(t, "from alice", posts[1].Content)

		count, err := repo.CountByAuthors(ctx, []uint{alice.ID, bob.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("empty author set yields empty page without querying", func(t *testing.T) {
		posts, err := repo.ListByAuthors(ctx, nil, 10, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, posts)

		count, err := repo.CountByAuthors(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("single author", func(t *testing.T) {
		posts, err := repo.ListByAuthor(ctx, carol.ID, 10, 0, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "from carol", posts[0].Content)

		count, err := repo.CountByAuthor(ctx, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestPostRepository_GetLikedPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	p1 := createTestPost(t, db, alice.ID, "one", base)
	p2 := createTestPost(t, db, alice.ID, "two", base.Add(time.Minute))
	p3 := createTestPost(t, db, alice.ID, "three", base.Add(2*time.Minute))

	_, _, err := repo.ToggleLike(ctx, bob.ID, p1.ID)
	require.NoError(t, err)
	_, _, err = repo.ToggleLike(ctx, bob.ID, p3.ID)
	require.NoError(t, err)

	ids, err := repo.GetLikedPostIDs(ctx, bob.ID, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{p1.ID, p3.ID}, ids)

	t.Run("anonymous user gets nothing", func(t *testing.T) {
		ids, err := repo.GetLikedPostIDs(ctx, 0, []uint{p1.ID})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
