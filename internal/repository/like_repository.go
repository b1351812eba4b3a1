package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state of (postID, userID) and keeps the
// denormalized counter in step, all inside one transaction. The post
// row is locked first so the counter cannot drift under concurrent
// toggles; the locked likes_count column is the source of truth, not
// the size of the likes set.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var likesCount int
	err = tx.GetContext(ctx, &likesCount, `
		SELECT likes_count FROM posts
		WHERE post_id = $1 AND status <> 'deleted'
		FOR UPDATE
	`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return false, 0, fmt.Errorf("failed to lock post: %w", err)
	}

	var exists bool
	err = tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)
	`, postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check like: %w", err)
	}

	var liked bool
	var newCount int

	if !exists {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO likes (post_id, user_id, created_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
		`, postID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to create like: %w", err)
		}
		liked = true
		newCount = likesCount + 1
	} else {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM likes WHERE post_id = $1 AND user_id = $2
		`, postID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to remove like: %w", err)
		}
		liked = false
		newCount = likesCount - 1
		if newCount < 0 {
			newCount = 0
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET likes_count = $1 WHERE post_id = $2
	`, newCount, postID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to update like counter: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit like toggle: %w", err)
	}

	return liked, newCount, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

func (r *likeRepository) Count(ctx context.Context, postID string) (int, error) {
	var count int

	query := `SELECT likes_count FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get like count: %w", err)
	}

	return count, nil
}
