// Package seed populates a development database with realistic demo content.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password for every seeded account.
const DefaultPassword = "password1"

var categories = []string{
	"Engineering", "Design", "Productivity", "Career", "Opinion",
}

var tagPool = []string{
	"go", "databases", "testing", "web", "api", "devops",
	"performance", "tooling", "architecture", "career",
}

// Options controls how much content Run generates.
type Options struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
	Seed     int64
}

// DefaultOptions returns the counts used by cmd/seed when no flags are given.
func DefaultOptions() Options {
	return Options{
		Users:    12,
		Posts:    40,
		Comments: 120,
		Likes:    200,
		Seed:     time.Now().UnixNano(),
	}
}

// Run fills the database with fake users, posts, comments, and likes.
// It is not idempotent and should only target empty development databases.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	faker := gofakeit.New(opts.Seed)
	rng := rand.New(rand.NewSource(opts.Seed))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users+1)

	admin := &models.User{Username: "admin", Password: string(hashed), Role: models.RoleAdmin}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	users = append(users, admin)

	for i := 0; i < opts.Users; i++ {
		role := models.RoleReader
		if i%3 != 0 {
			role = models.RoleAuthor
		}
		user := &models.User{
			Username: fmt.Sprintf("%s_%s", strings.ToLower(faker.FirstName()), faker.Word()),
			Password: string(hashed),
			Role:     role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			// Generated usernames can collide; skip and keep going.
			continue
		}
		users = append(users, user)
	}

	authors := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.CanPublish() {
			authors = append(authors, u)
		}
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := authors[rng.Intn(len(authors))]

		post := &models.Post{
			Title:   faker.Sentence(6),
			Content: faker.Paragraph(3, 5, 12, "\n\n"),
			UserID:  author.ID,
		}

		if rng.Intn(4) != 0 {
			category, err := taxonomyRepo.EnsureCategory(ctx, categories[rng.Intn(len(categories))])
			if err != nil {
				return fmt.Errorf("seed category: %w", err)
			}
			post.CategoryID = &category.ID
		}

		names := pickTags(rng, 1+rng.Intn(3))
		tags, err := taxonomyRepo.EnsureTags(ctx, names)
		if err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
		post.Tags = tags

		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}

	for i := 0; i < opts.Comments; i++ {
		post := posts[rng.Intn(len(posts))]
		user := users[rng.Intn(len(users))]
		comment := &models.Comment{
			Content: faker.Sentence(8 + rng.Intn(12)),
			UserID:  user.ID,
			PostID:  post.ID,
		}
		if err := commentRepo.Create(ctx, comment); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}

	for i := 0; i < opts.Likes; i++ {
		post := posts[rng.Intn(len(posts))]
		user := users[rng.Intn(len(users))]
		// Like is idempotent, so random collisions are fine.
		if err := postRepo.Like(ctx, user.ID, post.ID); err != nil {
			return fmt.Errorf("seed like: %w", err)
		}
	}

	return nil
}

func pickTags(rng *rand.Rand, n int) []string {
	perm := rng.Perm(len(tagPool))
	names := make([]string, 0, n)
	for _, idx := range perm[:n] {
		names = append(names, tagPool[idx])
	}
	return names
}
