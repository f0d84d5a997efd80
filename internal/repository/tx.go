package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the per-entity repositories bound to one data source.
type Repositories struct {
	Users      UserRepository
	Posts      PostRepository
	Comments   CommentRepository
	Taxonomies TaxonomyRepository
}

// NewRepositories builds the bundle over db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      NewUserRepository(db),
		Posts:      NewPostRepository(db),
		Comments:   NewCommentRepository(db),
		Taxonomies: NewTaxonomyRepository(db),
	}
}

// Atomic runs fn inside a single database transaction. Every repository
// handed to fn is bound to that transaction, so either all of fn's writes
// commit or none do.
func Atomic(ctx context.Context, db *gorm.DB, fn func(r Repositories) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
