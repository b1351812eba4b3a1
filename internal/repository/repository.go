package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
	UpdatePhotoURL(ctx context.Context, userID, photoURL string) error
	SetVerificationToken(ctx context.Context, userID, token string) error
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListActive(ctx context.Context, limit int) ([]models.Post, error)
	ListActiveAfter(ctx context.Context, after time.Time, pageSize int) ([]models.Post, error)
	SoftDelete(ctx context.Context, postID string) error
	UpdateContent(ctx context.Context, postID, content string) error
	MarkLikedBy(ctx context.Context, posts []models.Post, userID string) error
}

type LikeRepository interface {
	Toggle(ctx context.Context, postID, userID string) (liked bool, likes int, err error)
	IsLiked(ctx context.Context, postID, userID string) (bool, error)
	Count(ctx context.Context, postID string) (int, error)
}

type CommentRepository interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	AddReply(ctx context.Context, reply *models.Reply) error
	GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string, pageSize int, after *time.Time) (*models.CommentsPage, error)
	ListReplies(ctx context.Context, postID, commentID string, pageSize int, after *time.Time) (*models.RepliesPage, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Like    LikeRepository
	Comment CommentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Like:    NewLikeRepository(db),
		Comment: NewCommentRepository(db),
	}
}
