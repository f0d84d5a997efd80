package service

import (
	"context"
	"io"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// Func-field stubs: each test wires up only the calls it expects, and any
// unexpected call panics on the nil func.

type userRepoStub struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type postRepoStub struct {
	createFn      func(ctx context.Context, post *models.Post) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Post, error)
	listFn        func(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error)
	countFn       func(ctx context.Context, filter repository.PostFilter) (int64, error)
	updateFn      func(ctx context.Context, post *models.Post) error
	replaceTagsFn func(ctx context.Context, post *models.Post, tags []models.Tag) error
	deleteFn      func(ctx context.Context, id uint) error
	likeFn        func(ctx context.Context, userID, postID uint) error
	unlikeFn      func(ctx context.Context, userID, postID uint) (bool, error)
	isLikedFn     func(ctx context.Context, userID, postID uint) (bool, error)
	likesCountFn  func(ctx context.Context, postID uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset)
}

func (s *postRepoStub) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}

func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func (s *postRepoStub) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, post, tags)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}

func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}

func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func (s *postRepoStub) LikesCount(ctx context.Context, postID uint) (int64, error) {
	return s.likesCountFn(ctx, postID)
}

type commentRepoStub struct {
	createFn      func(ctx context.Context, comment *models.Comment) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn  func(ctx context.Context, postID uint) ([]*models.Comment, error)
	countByPostFn func(ctx context.Context, postID uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

type taxonomyRepoStub struct {
	ensureCategoryFn func(ctx context.Context, name string) (*models.Category, error)
	ensureTagsFn     func(ctx context.Context, names []string) ([]models.Tag, error)
	listCategoriesFn func(ctx context.Context) ([]models.Category, error)
	listTagsFn       func(ctx context.Context) ([]models.Tag, error)
}

func (s *taxonomyRepoStub) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	return s.ensureCategoryFn(ctx, name)
}

func (s *taxonomyRepoStub) EnsureTags(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.ensureTagsFn(ctx, names)
}

func (s *taxonomyRepoStub) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.listCategoriesFn(ctx)
}

func (s *taxonomyRepoStub) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.listTagsFn(ctx)
}

type imageStoreStub struct {
	saveFn  func(ctx context.Context, filename string, r io.Reader) (string, error)
	removed []string
}

func (s *imageStoreStub) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if s.saveFn != nil {
		return s.saveFn(ctx, filename, r)
	}
	return "saved-ref", nil
}

func (s *imageStoreStub) Remove(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

// passthroughAtomic hands the stubs straight to fn; transactional rollback
// itself is covered by the repository tests.
func passthroughAtomic(postRepo *postRepoStub, taxonomyRepo *taxonomyRepoStub) AtomicRunner {
	return func(ctx context.Context, fn func(r repository.Repositories) error) error {
		return fn(repository.Repositories{
			Posts:      postRepo,
			Taxonomies: taxonomyRepo,
		})
	}
}
