// Package service contains the application's business logic between the
// HTTP handlers and the repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// FeedPage is the result shape shared by all feed variants: one page of
// posts in reverse-chronological order plus pagination metadata and the
// requesting user's liked post IDs.
type FeedPage struct {
	Posts        []*models.Post `json:"posts"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalPosts   int64          `json:"total_posts"`
	HasNext      bool           `json:"has_next"`
	HasPrevious  bool           `json:"has_previous"`
	LikedPostIDs []uint         `json:"liked_post_ids"`
}

// Profile is the profile feed variant: the profile owner's posts plus
// aggregate follow counts and the requester's follow state.
type Profile struct {
	User           *models.User `json:"user"`
	FollowersCount int64        `json:"followers_count"`
	FollowingCount int64        `json:"following_count"`
	IsFollowing    bool         `json:"is_following"`
	FeedPage
}

// FeedService composes the three feed variants.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{postRepo: postRepo, followRepo: followRepo}
}

// clampPage converts a requested 1-based page and total row count into a
// valid page number and the page count. Out-of-range requests snap to the
// nearest valid page instead of erroring; an empty result set is page 1 of 1.
func clampPage(page int, total int64) (int, int) {
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// GlobalFeed returns one page of all posts. currentUserID may be zero for
// anonymous requesters; their liked set is then empty.
func (s *FeedService) GlobalFeed(ctx context.Context, page int, currentUserID uint) (*FeedPage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.global")
	defer span.End()
	span.AddAttributes(attribute.Int("feed.page_requested", page))

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	page, totalPages := clampPage(page, total)

	posts, err := s.postRepo.ListAll(ctx, PageSize, (page-1)*PageSize, currentUserID)
	if err != nil {
		return nil, err
	}

	observability.FeedPagesServed.WithLabelValues("global").Inc()
	return s.assemble(ctx, posts, page, totalPages, total, currentUserID)
}

// FollowingFeed returns one page of posts authored by users the requester follows.
func (s *FeedService) FollowingFeed(ctx context.Context, page int, userID uint) (*FeedPage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.following")
	defer span.End()
	span.AddAttributes(attribute.Int("feed.page_requested", page))

	authorIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	page, totalPages := clampPage(page, total)

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, PageSize, (page-1)*PageSize, userID)
	if err != nil {
		return nil, err
	}

	observability.FeedPagesServed.WithLabelValues("following").Inc()
	return s.assemble(ctx, posts, page, totalPages, total, userID)
}

// ProfileFeed returns one page of the profile user's posts together with
// follower/following counts and whether the requester follows the profile.
// IsFollowing is always false for anonymous requesters and for the profile
// owner viewing themselves.
func (s *FeedService) ProfileFeed(ctx context.Context, profileUser *models.User, page int, currentUserID uint) (*Profile, error) {
	span, ctx := observability.NewSpan(ctx, "feed.profile")
	defer span.End()
	span.AddAttributes(attribute.Int("feed.page_requested", page))

	total, err := s.postRepo.CountByAuthor(ctx, profileUser.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	page, totalPages := clampPage(page, total)

	posts, err := s.postRepo.ListByAuthor(ctx, profileUser.ID, PageSize, (page-1)*PageSize, currentUserID)
	if err != nil {
		return nil, err
	}

	feedPage, err := s.assemble(ctx, posts, page, totalPages, total, currentUserID)
	if err != nil {
		return nil, err
	}

	followersCount, err := s.followRepo.FollowerCount(ctx, profileUser.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.FollowingCount(ctx, profileUser.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if currentUserID != 0 && currentUserID != profileUser.ID {
		isFollowing, err = s.followRepo.IsFollowing(ctx, currentUserID, profileUser.ID)
		if err != nil {
			return nil, err
		}
	}

	observability.FeedPagesServed.WithLabelValues("profile").Inc()
	return &Profile{
		User:           profileUser,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		IsFollowing:    isFollowing,
		FeedPage:       *feedPage,
	}, nil
}

func (s *FeedService) assemble(ctx context.Context, posts []*models.Post, page, totalPages int, total int64, currentUserID uint) (*FeedPage, error) {
	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	likedIDs, err := s.postRepo.GetLikedPostIDs(ctx, currentUserID, postIDs)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:        posts,
		Page:         page,
		TotalPages:   totalPages,
		TotalPosts:   total,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
		LikedPostIDs: likedIDs,
	}, nil
}
