package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/storage"
)

const (
	maxTitleLength   = 300
	maxContentLength = 50000

	defaultPageSize = 10
	maxPageSize     = 100
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AtomicRunner runs fn with repositories bound to a single transaction.
type AtomicRunner func(ctx context.Context, fn func(r repository.Repositories) error) error

// CreatePostInput carries the fields for a new post. Category and Tags are
// optional. Images are attached separately through AttachImage.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// UpdatePostInput is a partial patch: nil fields are left untouched. An empty
// Category string clears the association; an empty Tags slice removes all
// tags.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
}

// ListPostsInput holds the filter and 1-indexed pagination for a listing.
type ListPostsInput struct {
	Filter   repository.PostFilter
	Page     int
	PageSize int
}

// PostService enforces the authorization and validation rules around posts,
// comments aside, and coordinates the taxonomy and image stores.
type PostService struct {
	atomic       AtomicRunner
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
	images       storage.Store
}

// NewPostService creates a new PostService.
func NewPostService(atomic AtomicRunner, postRepo repository.PostRepository, taxonomyRepo repository.TaxonomyRepository, images storage.Store) *PostService {
	return &PostService{
		atomic:       atomic,
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
		images:       images,
	}
}

// CreatePost creates a post owned by actor. Only authors and admins may
// publish. Category and tags are resolved to taxonomy rows, creating them on
// first use; the taxonomy writes and the post insert share one transaction.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, input CreatePostInput) (*models.Post, error) {
	if err := CanCreatePost(actor); err != nil {
		return nil, err
	}
	if err := validatePostBody(input.Title, input.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		UserID:  actor.ID,
	}

	err := s.atomic(ctx, func(r repository.Repositories) error {
		if strings.TrimSpace(input.Category) != "" {
			category, err := r.Taxonomies.EnsureCategory(ctx, input.Category)
			if err != nil {
				return err
			}
			post.CategoryID = &category.ID
		}

		tags, err := r.Taxonomies.EnsureTags(ctx, input.Tags)
		if err != nil {
			return err
		}
		post.Tags = tags

		return r.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post with its associations and counts.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts applies the filter, counts the full match set, then returns the
// requested page. Pages are 1-indexed; out-of-range values are normalized.
func (s *PostService) ListPosts(ctx context.Context, input ListPostsInput) (int64, []*models.Post, error) {
	page, pageSize := NormalizePagination(input.Page, input.PageSize)

	total, err := s.postRepo.Count(ctx, input.Filter)
	if err != nil {
		return 0, nil, err
	}

	posts, err := s.postRepo.List(ctx, input.Filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return 0, nil, err
	}
	return total, posts, nil
}

// UpdatePost applies a partial patch. Only the post's owner or an admin may
// update it. The row update and any tag replacement share one transaction.
func (s *PostService) UpdatePost(ctx context.Context, actor *models.User, id uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanModifyPost(actor, post); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if err := validatePostBody(post.Title, post.Content); err != nil {
		return nil, err
	}

	err = s.atomic(ctx, func(r repository.Repositories) error {
		if input.Category != nil {
			if strings.TrimSpace(*input.Category) == "" {
				post.CategoryID = nil
			} else {
				category, err := r.Taxonomies.EnsureCategory(ctx, *input.Category)
				if err != nil {
					return err
				}
				post.CategoryID = &category.ID
			}
		}

		if err := r.Posts.Update(ctx, post); err != nil {
			return err
		}

		if input.Tags != nil {
			tags, err := r.Taxonomies.EnsureTags(ctx, *input.Tags)
			if err != nil {
				return err
			}
			if err := r.Posts.ReplaceTags(ctx, post, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, id)
}

// AttachImage stores the uploaded image and links its ref to the post,
// replacing any previous image. The ref persisted is always the one the
// store returned, never a client-supplied value. Only the owner or an admin
// may attach.
func (s *PostService) AttachImage(ctx context.Context, actor *models.User, postID uint, filename string, r io.Reader) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := CanModifyPost(actor, post); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, models.NewValidationError("Unsupported image type")
	}

	ref, err := s.images.Save(ctx, filename, r)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	oldRef := post.ImageRef
	post.ImageRef = ref
	if err := s.postRepo.Update(ctx, post); err != nil {
		// The DB write failed, so the freshly saved file is orphaned.
		if rmErr := s.images.Remove(ctx, ref); rmErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to remove orphaned image",
				"image_ref", ref, "error", rmErr)
		}
		return nil, err
	}

	s.removeImageRef(ctx, oldRef)
	return s.postRepo.GetByID(ctx, postID)
}

// RemoveImage detaches and deletes the post's image, if any. Only the owner
// or an admin may remove it.
func (s *PostService) RemoveImage(ctx context.Context, actor *models.User, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := CanModifyPost(actor, post); err != nil {
		return nil, err
	}
	if post.ImageRef == "" {
		return post, nil
	}

	oldRef := post.ImageRef
	post.ImageRef = ""
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.removeImageRef(ctx, oldRef)
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes the post together with its comments, likes, and tag
// links, then drops its image from the store. Only the owner or an admin may
// delete.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanModifyPost(actor, post); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeImageRef(ctx, post.ImageRef)
	return nil
}

// LikePost records actor's like on the post. Liking an already-liked post is
// a no-op.
func (s *PostService) LikePost(ctx context.Context, actor *models.User, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, actor.ID, postID)
}

// UnlikePost withdraws actor's like and reports whether one was removed.
func (s *PostService) UnlikePost(ctx context.Context, actor *models.User, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return s.postRepo.Unlike(ctx, actor.ID, postID)
}

// LikesCount returns the number of likes on the post.
func (s *PostService) LikesCount(ctx context.Context, postID uint) (int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, err
	}
	return s.postRepo.LikesCount(ctx, postID)
}

// IsLiked reports whether actor currently likes the post.
func (s *PostService) IsLiked(ctx context.Context, actor *models.User, postID uint) (bool, error) {
	return s.postRepo.IsLiked(ctx, actor.ID, postID)
}

// ListCategories returns every category, ordered by name.
func (s *PostService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.taxonomyRepo.ListCategories(ctx)
}

// ListTags returns every tag, ordered by name.
func (s *PostService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.taxonomyRepo.ListTags(ctx)
}

// removeImageRef drops a no-longer-referenced file from the image store.
// Failures are logged rather than surfaced: the DB is already consistent.
func (s *PostService) removeImageRef(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Remove(ctx, ref); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to remove image",
			"image_ref", ref, "error", err)
	}
}

func validatePostBody(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLength {
		return models.NewValidationError("Title must be at most 300 characters")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLength {
		return models.NewValidationError("Content must be at most 50000 characters")
	}
	return nil
}

// NormalizePagination clamps 1-indexed pagination parameters: page below 1
// becomes 1, a non-positive size becomes the default, and size is capped.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
