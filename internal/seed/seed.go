// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with demo users, posts, likes, and follows.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"likes", "follows", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database per the given options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.SeedLikes(users, posts); err != nil {
		return err
	}
	if err := s.SeedFollows(users); err != nil {
		return err
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

// SeedUsers creates n users with the shared demo password "password123".
// All users share one bcrypt hash; hashing per user makes large seeds slow.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	log.Printf("Creating %d users...", n)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	seen := make(map[string]bool, n)
	users := make([]models.User, 0, n)
	for len(users) < n {
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 3 || seen[username] {
			continue
		}
		seen[username] = true

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hash),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread over the last 90 days so feeds page
// through realistic timelines.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed posts without users")
	}
	log.Printf("Creating %d posts...", n)

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			Content: gofakeit.Sentence(5 + s.rng.Intn(15)),
			UserID:  author.ID,
		}

		daysBack := s.rng.Intn(90)
		minsBack := s.rng.Intn(24 * 60)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
		post.UpdatedAt = post.CreatedAt

		if err := s.db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedLikes gives each post a random set of likers.
func (s *Seeder) SeedLikes(users []models.User, posts []models.Post) error {
	log.Println("Creating likes...")

	count := 0
	for _, post := range posts {
		numLikes := s.rng.Intn(len(users)/2 + 1)
		for _, idx := range s.rng.Perm(len(users))[:numLikes] {
			like := models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
			count++
		}
	}
	log.Printf("Created %d likes", count)
	return nil
}

// SeedFollows builds a follow graph where each user follows a random
// subset of the others. Self-follows are never created.
func (s *Seeder) SeedFollows(users []models.User) error {
	log.Println("Creating follows...")

	count := 0
	for i, follower := range users {
		numFollows := s.rng.Intn(len(users)/3 + 1)
		for _, idx := range s.rng.Perm(len(users))[:numFollows] {
			if idx == i {
				continue
			}
			follow := models.Follow{FollowerID: follower.ID, FollowingID: users[idx].ID}
			if err := s.db.Create(&follow).Error; err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
			count++
		}
	}
	log.Printf("Created %d follows", count)
	return nil
}
