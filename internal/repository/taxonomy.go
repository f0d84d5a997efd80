// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository manages the normalized tag and category entities.
type TaxonomyRepository interface {
	EnsureCategory(ctx context.Context, name string) (*models.Category, error)
	EnsureTags(ctx context.Context, names []string) ([]models.Tag, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository returns a new TaxonomyRepository implementation.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// EnsureCategory returns the category with the given name, creating it first
// if needed. Names are trimmed; lookups are exact match.
func (r *taxonomyRepository) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	var category models.Category
	err := r.db.WithContext(ctx).
		Where(models.Category{Name: name}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

// EnsureTags resolves each distinct non-empty name to a Tag row, creating
// missing ones. The result preserves first-seen order.
func (r *taxonomyRepository) EnsureTags(ctx context.Context, names []string) ([]models.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]models.Tag, 0, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var tag models.Tag
		err := r.db.WithContext(ctx).
			Where(models.Tag{Name: name}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *taxonomyRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
