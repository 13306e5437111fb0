package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxPostLength = 1000

// PostService handles post creation, editing, and like toggles.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a post for userID. Whitespace-only content is silently
// ignored: no post is created and no error is returned, matching the
// duplicate-submission-safe behavior of the composer form.
func (s *PostService) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}
	if len(content) > maxPostLength {
		return nil, models.NewValidationError("Post content too long (max 1000 characters)")
	}

	post := &models.Post{
		Content: content,
		UserID:  userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload so the response carries the author and computed fields.
	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// EditPost replaces the content of the caller's own post.
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content cannot be empty")
	}
	if len(content) > maxPostLength {
		return nil, models.NewValidationError("Post content too long (max 1000 characters)")
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// LikeToggleResult reports the state after a like toggle.
type LikeToggleResult struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}

// ToggleLike likes the post if the user has not liked it, and unlikes it
// otherwise. Returns the new state and the updated total count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeToggleResult, error) {
	// Resolve the post first so a missing ID is a 404, not an FK violation.
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	liked, count, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	return &LikeToggleResult{IsLiked: liked, LikeCount: count}, nil
}
