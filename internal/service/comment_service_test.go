package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	t.Parallel()

	post := &models.Post{ID: 10, UserID: author.ID}

	t.Run("any authenticated user may comment", func(t *testing.T) {
		commentRepo := &commentRepoStub{
			createFn: func(ctx context.Context, comment *models.Comment) error {
				comment.ID = 5
				return nil
			},
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, Content: "Nice", UserID: reader.ID, PostID: 10, User: *reader}, nil
			},
		}
		postRepo := &postRepoStub{getByIDFn: passthroughGetByID(post)}
		svc := NewCommentService(commentRepo, postRepo)

		comment, err := svc.AddComment(context.Background(), reader, 10, "Nice")
		require.NoError(t, err)
		assert.Equal(t, uint(5), comment.ID)
		assert.Equal(t, reader.Username, comment.User.Username)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		svc := NewCommentService(&commentRepoStub{}, &postRepoStub{})

		_, err := svc.AddComment(context.Background(), reader, 10, "   ")
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("rejects oversized content", func(t *testing.T) {
		svc := NewCommentService(&commentRepoStub{}, &postRepoStub{})

		_, err := svc.AddComment(context.Background(), reader, 10, strings.Repeat("a", maxCommentLength+1))
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("missing post is not found", func(t *testing.T) {
		postRepo := &postRepoStub{getByIDFn: passthroughGetByID(post)}
		svc := NewCommentService(&commentRepoStub{}, postRepo)

		_, err := svc.AddComment(context.Background(), reader, 99, "hello")
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestListComments(t *testing.T) {
	t.Parallel()

	post := &models.Post{ID: 10, UserID: author.ID}

	t.Run("returns the count and the comments", func(t *testing.T) {
		commentRepo := &commentRepoStub{
			countByPostFn: func(ctx context.Context, postID uint) (int64, error) {
				return 2, nil
			},
			listByPostFn: func(ctx context.Context, postID uint) ([]*models.Comment, error) {
				return []*models.Comment{{ID: 1}, {ID: 2}}, nil
			},
		}
		postRepo := &postRepoStub{getByIDFn: passthroughGetByID(post)}
		svc := NewCommentService(commentRepo, postRepo)

		total, comments, err := svc.ListComments(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, comments, 2)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		postRepo := &postRepoStub{getByIDFn: passthroughGetByID(post)}
		svc := NewCommentService(&commentRepoStub{}, postRepo)

		_, _, err := svc.ListComments(context.Background(), 99)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}
