package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLength = 10000

// CommentService attaches comments to existing posts. Comments are immutable
// once written; they disappear only when their post does.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment appends actor's comment to the post. Any authenticated user may
// comment.
func (s *CommentService) AddComment(ctx context.Context, actor *models.User, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("Comment must be at most 10000 characters")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  actor.ID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's comment count and the comments oldest
// first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) (int64, []*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, nil, err
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return 0, nil, err
	}
	return total, comments, nil
}
