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
	"github.com/lib/pq"

	"socialfeed/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	// Server-assigned creation time, zeroed counters, active status.
	now := time.Now().UTC()
	post.CreatedAt = models.NewTimestamp(now)
	post.UpdatedAt = models.NewTimestamp(now)
	post.LikesCount = 0
	post.CommentsCount = 0
	post.Status = models.PostStatusActive

	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO posts
        (post_id, content, author_id, author_name, author_photo,
         video_url, video_path, video_type, video_thumbnail,
         likes_count, comments_count, status, tags, created_at, updated_at)
        VALUES
        (:post_id, :content, :author_id, :author_name, :author_photo,
         :video_url, :video_path, :video_type, :video_thumbnail,
         :likes_count, :comments_count, :status, :tags, :created_at, :updated_at)
    `

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if post.Media != nil {
		for i := range post.Media.Images {
			image := &post.Media.Images[i]
			image.ImageID = uuid.New().String()
			image.PostID = post.PostID
			image.Position = i

			_, err = tx.NamedExecContext(ctx, `
				INSERT INTO post_images (image_id, post_id, image_url, image_path, image_type, position)
				VALUES (:image_id, :post_id, :image_url, :image_path, :image_type, :position)
			`, image)
			if err != nil {
				return fmt.Errorf("failed to save post image: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}

	post.Normalize()
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	posts := []models.Post{post}
	if err := r.loadImages(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

func (r *PostRepositoryImpl) ListActive(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE status = 'active'
        ORDER BY created_at DESC
        LIMIT $1
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit)
	if err != nil {
		// Degrade to the simplified unordered query so the feed still
		// renders while the index is unavailable.
		log.Printf("Warning: ordered feed query failed, falling back to simple query: %v", err)

		fallback := `SELECT * FROM posts WHERE status = 'active' LIMIT $1`
		if err := r.db.SelectContext(ctx, &posts, fallback, limit); err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
	}

	if err := r.loadImages(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListActiveAfter(ctx context.Context, after time.Time, pageSize int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE status = 'active' AND created_at < $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, after, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts after cursor: %w", err)
	}

	if err := r.loadImages(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepositoryImpl) SoftDelete(ctx context.Context, postID string) error {
	query := `
		UPDATE posts SET
			status = 'deleted',
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1 AND status <> 'deleted'
	`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) UpdateContent(ctx context.Context, postID, content string) error {
	query := `
		UPDATE posts SET
			content = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $2 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, content, postID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

// MarkLikedBy fills LikedByMe on the given posts for one user.
func (r *PostRepositoryImpl) MarkLikedBy(ctx context.Context, posts []models.Post, userID string) error {
	if len(posts) == 0 || userID == "" {
		return nil
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].PostID
	}

	var likedIDs []string
	query := `SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`

	err := r.db.SelectContext(ctx, &likedIDs, query, userID, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}

	liked := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	for i := range posts {
		posts[i].LikedByMe = liked[posts[i].PostID]
	}

	return nil
}

func (r *PostRepositoryImpl) loadImages(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].PostID
	}

	var images []models.MediaImage
	query := `
		SELECT * FROM post_images
		WHERE post_id = ANY($1)
		ORDER BY post_id, position
	`

	err := r.db.SelectContext(ctx, &images, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load post images: %w", err)
	}

	byPost := make(map[string][]models.MediaImage)
	for _, image := range images {
		byPost[image.PostID] = append(byPost[image.PostID], image)
	}

	for i := range posts {
		if imgs := byPost[posts[i].PostID]; len(imgs) > 0 {
			posts[i].Media = &models.Media{Images: imgs}
		}
		posts[i].Normalize()
	}

	return nil
}
