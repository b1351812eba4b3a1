package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

// Replies shown inline with each comment before the client asks for more.
const initialReplyCount = 2

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// AddComment inserts the comment and increments the parent post's
// counter in one transaction. A missing or deleted parent fails the
// whole operation with nothing written.
func (r *commentRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	now := time.Now().UTC()
	comment.CreatedAt = models.NewTimestamp(now)
	comment.UpdatedAt = models.NewTimestamp(now)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var commentsCount int
	err = tx.GetContext(ctx, &commentsCount, `
		SELECT comments_count FROM posts
		WHERE post_id = $1 AND status <> 'deleted'
		FOR UPDATE
	`, comment.PostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("post %s: %w", comment.PostID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to lock post: %w", err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO comments (comment_id, post_id, content, author_id, author_name, author_photo, created_at, updated_at)
		VALUES (:comment_id, :post_id, :content, :author_id, :author_name, :author_photo, :created_at, :updated_at)
	`, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET comments_count = $1 WHERE post_id = $2
	`, commentsCount+1, comment.PostID)
	if err != nil {
		return fmt.Errorf("failed to update comment counter: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comment: %w", err)
	}

	comment.Normalize()
	return nil
}

// AddReply inserts the reply after checking the parent comment still
// exists, inside one transaction. Reply totals are aggregate counts, so
// no counter is touched here.
func (r *commentRepository) AddReply(ctx context.Context, reply *models.Reply) error {
	if reply.ReplyID == "" {
		reply.ReplyID = uuid.New().String()
	}

	now := time.Now().UTC()
	reply.CreatedAt = models.NewTimestamp(now)
	reply.UpdatedAt = models.NewTimestamp(now)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM comments WHERE comment_id = $1 AND post_id = $2)
	`, reply.CommentID, reply.PostID)
	if err != nil {
		return fmt.Errorf("failed to check comment: %w", err)
	}
	if !exists {
		return fmt.Errorf("comment %s: %w", reply.CommentID, models.ErrNotFound)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO replies (reply_id, comment_id, post_id, content, author_id, author_name, author_photo, created_at, updated_at)
		VALUES (:reply_id, :comment_id, :post_id, :content, :author_id, :author_name, :author_photo, :created_at, :updated_at)
	`, reply)
	if err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reply: %w", err)
	}

	reply.Normalize()
	return nil
}

func (r *commentRepository) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT * FROM comments WHERE comment_id = $1 AND post_id = $2`

	err := r.db.GetContext(ctx, &comment, query, commentID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	comment.Normalize()
	return &comment, nil
}

func (r *commentRepository) ListComments(ctx context.Context, postID string, pageSize int, after *time.Time) (*models.CommentsPage, error) {
	query := `
        SELECT * FROM comments
        WHERE post_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	args := []interface{}{postID, pageSize}

	if after != nil {
		query = `
            SELECT * FROM comments
            WHERE post_id = $1 AND created_at < $3
            ORDER BY created_at DESC
            LIMIT $2
        `
		args = append(args, *after)
	}

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	// Partial expansion: each comment carries its first replies plus
	// the totals needed for a "show more" control.
	for i := range comments {
		comments[i].Normalize()

		page, err := r.ListReplies(ctx, postID, comments[i].CommentID, initialReplyCount, nil)
		if err != nil {
			return nil, err
		}

		comments[i].Replies = page.Replies
		comments[i].TotalReplies = page.TotalReplies
		comments[i].HasMoreReplies = page.TotalReplies > len(page.Replies)
	}

	return &models.CommentsPage{
		Comments:      comments,
		TotalComments: total,
		HasMore:       total > len(comments),
	}, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, postID, commentID string, pageSize int, after *time.Time) (*models.RepliesPage, error) {
	query := `
        SELECT * FROM replies
        WHERE comment_id = $1 AND post_id = $2
        ORDER BY created_at DESC
        LIMIT $3
    `
	args := []interface{}{commentID, postID, pageSize}

	if after != nil {
		query = `
            SELECT * FROM replies
            WHERE comment_id = $1 AND post_id = $2 AND created_at < $4
            ORDER BY created_at DESC
            LIMIT $3
        `
		args = append(args, *after)
	}

	var replies []models.Reply
	err := r.db.SelectContext(ctx, &replies, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	for i := range replies {
		replies[i].Normalize()
	}

	var total int
	err = r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM replies WHERE comment_id = $1 AND post_id = $2
	`, commentID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}

	return &models.RepliesPage{
		Replies:      replies,
		TotalReplies: total,
		HasMore:      total > len(replies),
	}, nil
}

// DeleteComment removes the comment, then decrements the parent's
// counter best effort: delete first, decrement after, no transaction.
func (r *commentRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM comments WHERE comment_id = $1 AND post_id = $2
	`, commentID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE posts SET comments_count = GREATEST(comments_count - 1, 0) WHERE post_id = $1
	`, postID)
	if err != nil {
		log.Printf("Warning: failed to decrement comment counter for post %s: %v", postID, err)
	}

	return nil
}
