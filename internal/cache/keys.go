package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	UserByNamePrefix     = "user:name:%s"
	FollowerCountPrefix  = "profile:%d:followers"
	FollowingCountPrefix = "profile:%d:following"
	GlobalFeedCountKey   = "feed:global:count"

	AuthorFeedCountPrefix = "feed:author:%d:count"
)

const (
	UserTTL         = 5 * time.Minute
	ProfileStatsTTL = 1 * time.Minute
	FeedCountTTL    = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserByNameKey(username string) string {
	return fmt.Sprintf(UserByNamePrefix, username)
}

func FollowerCountKey(userID uint) string {
	return fmt.Sprintf(FollowerCountPrefix, userID)
}

func FollowingCountKey(userID uint) string {
	return fmt.Sprintf(FollowingCountPrefix, userID)
}

func AuthorFeedCountKey(userID uint) string {
	return fmt.Sprintf(AuthorFeedCountPrefix, userID)
}

func InvalidateUser(ctx context.Context, userID uint, username string) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserByNameKey(username))
}

func InvalidateProfileStats(ctx context.Context, userID uint) {
	Invalidate(ctx, FollowerCountKey(userID))
	Invalidate(ctx, FollowingCountKey(userID))
}

func InvalidateFeedCounts(ctx context.Context, authorID uint) {
	Invalidate(ctx, GlobalFeedCountKey)
	Invalidate(ctx, AuthorFeedCountKey(authorID))
}
