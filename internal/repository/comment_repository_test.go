package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/models"
)

func TestCommentRepository_AddComment(t *testing.T) {
	tests := []struct {
		name        string
		postID      string
		setupMock   func(mock sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name:   "comment insert and counter move together",
			postID: "p1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT comments_count FROM posts`).
					WithArgs("p1").
					WillReturnRows(sqlmock.NewRows([]string{"comments_count"}).AddRow(4))
				mock.ExpectExec(`INSERT INTO comments`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`UPDATE posts SET comments_count`).
					WithArgs(5, "p1").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "missing parent writes nothing",
			postID: "gone",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT comments_count FROM posts`).
					WithArgs("gone").
					WillReturnRows(sqlmock.NewRows([]string{"comments_count"}))
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)

			repo := NewCommentRepository(db)

			comment := &models.Comment{
				PostID:     tt.postID,
				Content:    "nice post",
				AuthorID:   "u1",
				AuthorName: "Alice",
			}

			err := repo.AddComment(context.Background(), comment)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrNotFound)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, comment.CommentID)
				assert.Equal(t, "Alice", comment.Author.DisplayName)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_AddReply(t *testing.T) {
	tests := []struct {
		name        string
		exists      bool
		expectError bool
	}{
		{name: "reply lands under an existing comment", exists: true},
		{name: "missing comment fails the whole operation", exists: false, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("c1", "p1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			if tt.exists {
				mock.ExpectExec(`INSERT INTO replies`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			repo := NewCommentRepository(db)

			reply := &models.Reply{
				PostID:    "p1",
				CommentID: "c1",
				Content:   "agreed",
				AuthorID:  "u2",
			}

			err := repo.AddReply(context.Background(), reply)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrNotFound)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, reply.ReplyID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_ListComments(t *testing.T) {
	db, mock := setupMockDB(t)

	now := time.Now()
	commentColumns := []string{
		"comment_id", "post_id", "content",
		"author_id", "author_name", "author_photo",
		"created_at", "updated_at",
	}
	replyColumns := []string{
		"reply_id", "comment_id", "post_id", "content",
		"author_id", "author_name", "author_photo",
		"created_at", "updated_at",
	}

	mock.ExpectQuery(`SELECT \* FROM comments`).
		WithArgs("p1", 3).
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow("c1", "p1", "first", "u1", "Alice", "", now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	// partial reply expansion for c1
	mock.ExpectQuery(`SELECT \* FROM replies`).
		WithArgs("c1", "p1", 2).
		WillReturnRows(sqlmock.NewRows(replyColumns).
			AddRow("r1", "c1", "p1", "yep", "u2", "Bob", "", now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM replies`).
		WithArgs("c1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewCommentRepository(db)

	page, err := repo.ListComments(context.Background(), "p1", 3, nil)

	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalComments)
	assert.True(t, page.HasMore)
	require.Len(t, page.Comments, 1)

	comment := page.Comments[0]
	assert.Equal(t, "Alice", comment.Author.DisplayName)
	assert.Equal(t, 3, comment.TotalReplies)
	assert.True(t, comment.HasMoreReplies)
	require.Len(t, comment.Replies, 1)
	assert.Equal(t, "Bob", comment.Replies[0].Author.DisplayName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteComment(t *testing.T) {
	t.Run("delete then best-effort decrement", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs("c1", "p1").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE posts SET comments_count = GREATEST`).
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewCommentRepository(db)

		err := repo.DeleteComment(context.Background(), "p1", "c1")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing comment reports not found", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs("c1", "p1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewCommentRepository(db)

		err := repo.DeleteComment(context.Background(), "p1", "c1")

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
