package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential checks, and follow toggles.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// Register validates the input, hashes the password, and creates the user.
// A taken username or email surfaces as a CONFLICT AppError; a mismatched
// confirmation never touches the store.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Password != in.Confirmation {
		return nil, models.NewValidationError("Passwords must match")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords produce the same generic error so account existence
// never leaks.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username and/or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username and/or password")
	}

	return user, nil
}

// FollowToggleResult reports the state after a follow toggle.
type FollowToggleResult struct {
	IsFollowing    bool  `json:"is_following"`
	FollowersCount int64 `json:"followers_count"`
}

// ToggleFollow follows the target if no edge exists, and unfollows
// otherwise. A self-follow attempt is a silent no-op that reports the
// current (necessarily absent) state without touching the store.
func (s *UserService) ToggleFollow(ctx context.Context, followerID uint, target *models.User) (*FollowToggleResult, error) {
	if followerID == target.ID {
		count, err := s.followRepo.FollowerCount(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		return &FollowToggleResult{IsFollowing: false, FollowersCount: count}, nil
	}

	following, err := s.followRepo.Toggle(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.followRepo.FollowerCount(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	return &FollowToggleResult{IsFollowing: following, FollowersCount: count}, nil
}

// GetByUsername resolves a user by username, mapping absence to NOT_FOUND.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}
