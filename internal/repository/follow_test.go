package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Toggle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	following, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	isFollowing, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	// The edge is directional: bob does not follow alice.
	isFollowing, err = repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)

	// A second toggle removes the edge.
	following, err = repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	isFollowing, err = repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)
}

func TestFollowRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, bob.ID, carol.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	followers, err := repo.FollowerCount(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	followingCount, err := repo.FollowingCount(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followingCount)

	ids, err := repo.FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{carol.ID}, ids)

	t.Run("no edges", func(t *testing.T) {
		followers, err := repo.FollowerCount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), followers) // carol follows alice

		ids, err := repo.FollowingIDs(ctx, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{alice.ID}, ids)
	})
}
