package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_OrderedByCreationAscending(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice", models.RoleAuthor)
	reader := createTestUser(t, db, "bob", models.RoleReader)
	post := createTestPost(t, db, author, "discussed", "body", postOpts{})

	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		comment := &models.Comment{
			Content:   content,
			UserID:    reader.ID,
			PostID:    post.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, comment))
	}

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "third", comments[2].Content)
	assert.Equal(t, "bob", comments[0].User.Username)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(context.Background(), 777)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestCommentRepository_CountByPost(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice", models.RoleAuthor)
	post := createTestPost(t, db, author, "counted", "body", postOpts{})

	count, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "a", UserID: author.ID, PostID: post.ID}))
	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "b", UserID: author.ID, PostID: post.ID}))

	count, err = repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
