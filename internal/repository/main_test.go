package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared-cache memory DB alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type postOpts struct {
	category  string
	tags      []string
	createdAt time.Time
}

func createTestPost(t *testing.T, db *gorm.DB, owner *models.User, title, content string, opts postOpts) *models.Post {
	t.Helper()

	ctx := context.Background()
	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  owner.ID,
	}

	if opts.category != "" {
		category, err := NewTaxonomyRepository(db).EnsureCategory(ctx, opts.category)
		require.NoError(t, err)
		post.CategoryID = &category.ID
	}
	if len(opts.tags) > 0 {
		tags, err := NewTaxonomyRepository(db).EnsureTags(ctx, opts.tags)
		require.NoError(t, err)
		post.Tags = tags
	}
	if !opts.createdAt.IsZero() {
		post.CreatedAt = opts.createdAt
	}

	require.NoError(t, NewPostRepository(db).Create(ctx, post))
	return post
}
