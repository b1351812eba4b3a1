package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/cache"
	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

const (
	DefaultPageSize  = 10
	MaxFeedLimit     = 100
	maxImagesPerPost = 3
)

type CreatePostRequest struct {
	Content string        `json:"content"`
	Media   *models.Media `json:"media,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// LikeResult carries the server-acknowledged state; clients apply it
// only after this response, never speculatively.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type FeedService interface {
	ListPosts(ctx context.Context, limit int, viewerID string) ([]models.Post, string, error)
	ListPostsAfter(ctx context.Context, cursor string, pageSize int, viewerID string) ([]models.Post, string, error)
	GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error)
	CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	UpdatePostContent(ctx context.Context, userID, postID, content string) error
	ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error)
	AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error)
	AddReply(ctx context.Context, userID, postID, commentID, content string) (*models.Reply, error)
	ListComments(ctx context.Context, postID string, pageSize int, cursor string) (*models.CommentsPage, string, error)
	ListReplies(ctx context.Context, postID, commentID string, pageSize int, cursor string) (*models.RepliesPage, string, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) error
}

type feedService struct {
	repo      *repository.Repository
	cfg       *config.Config
	feedCache *cache.Redis
}

func NewFeedService(repo *repository.Repository, cfg *config.Config, feedCache *cache.Redis) FeedService {
	return &feedService{
		repo:      repo,
		cfg:       cfg,
		feedCache: feedCache,
	}
}

func (s *feedService) ListPosts(ctx context.Context, limit int, viewerID string) ([]models.Post, string, error) {
	if limit < 1 || limit > MaxFeedLimit {
		limit = DefaultPageSize
	}

	cacheKey := fmt.Sprintf("feed:first:%d", limit)

	var posts []models.Post

	// The cached first page is shared by anonymous readers only; a
	// signed-in viewer needs per-user liked flags.
	if viewerID == "" && s.feedCache.Get(ctx, cacheKey, &posts) {
		return posts, nextPostCursor(posts), nil
	}

	posts, err := s.repo.Post.ListActive(ctx, limit)
	if err != nil {
		return nil, "", err
	}

	if viewerID == "" {
		s.feedCache.Set(ctx, cacheKey, posts, s.cfg.Redis.FeedTTL)
	} else if err := s.repo.Post.MarkLikedBy(ctx, posts, viewerID); err != nil {
		return nil, "", err
	}

	return posts, nextPostCursor(posts), nil
}

func (s *feedService) ListPostsAfter(ctx context.Context, cursor string, pageSize int, viewerID string) ([]models.Post, string, error) {
	if pageSize < 1 || pageSize > MaxFeedLimit {
		pageSize = DefaultPageSize
	}

	after, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	posts, err := s.repo.Post.ListActiveAfter(ctx, after, pageSize)
	if err != nil {
		return nil, "", err
	}

	if viewerID != "" {
		if err := s.repo.Post.MarkLikedBy(ctx, posts, viewerID); err != nil {
			return nil, "", err
		}
	}

	return posts, nextPostCursor(posts), nil
}

func (s *feedService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := s.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status != models.PostStatusActive {
		return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	if viewerID != "" {
		posts := []models.Post{*post}
		if err := s.repo.Post.MarkLikedBy(ctx, posts, viewerID); err != nil {
			return nil, err
		}
		post = &posts[0]
	}

	return post, nil
}

func (s *feedService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error) {
	if userID == "" {
		return nil, fmt.Errorf("create post: %w", models.ErrAuthRequired)
	}

	user, err := s.repo.User.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.Content = strings.TrimSpace(req.Content)
	req.Media = stripEmptyMedia(req.Media)

	if req.Content == "" && req.Media == nil {
		return nil, fmt.Errorf("please add some content, images, or a video to your post: %w", models.ErrValidation)
	}

	if req.Media != nil && len(req.Media.Images) > maxImagesPerPost {
		return nil, fmt.Errorf("a post can hold at most %d images: %w", maxImagesPerPost, models.ErrValidation)
	}

	post := &models.Post{
		Content:     req.Content,
		AuthorID:    user.UserID,
		AuthorName:  user.DisplayName,
		AuthorPhoto: user.PhotoURL,
		Tags:        req.Tags,
	}

	if req.Media != nil {
		if req.Media.Video != nil {
			post.VideoURL = req.Media.Video.URL
			post.VideoPath = req.Media.Video.Path
			post.VideoType = req.Media.Video.Type
			post.VideoThumbnail = req.Media.Video.Thumbnail
		}
		if len(req.Media.Images) > 0 {
			post.Media = &models.Media{Images: req.Media.Images}
		}
	}

	if err := s.repo.Post.Create(ctx, post); err != nil {
		return nil, err
	}

	s.feedCache.DelPattern(ctx, "feed:*")

	return post, nil
}

func (s *feedService) DeletePost(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return fmt.Errorf("delete post: %w", models.ErrAuthRequired)
	}

	post, err := s.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return fmt.Errorf("only the author can delete a post: %w", models.ErrPermissionDenied)
	}

	if err := s.repo.Post.SoftDelete(ctx, postID); err != nil {
		return err
	}

	s.feedCache.DelPattern(ctx, "feed:*")

	return nil
}

func (s *feedService) UpdatePostContent(ctx context.Context, userID, postID, content string) error {
	if userID == "" {
		return fmt.Errorf("update post: %w", models.ErrAuthRequired)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("post content cannot be empty: %w", models.ErrValidation)
	}

	post, err := s.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return fmt.Errorf("only the author can edit a post: %w", models.ErrPermissionDenied)
	}

	if err := s.repo.Post.UpdateContent(ctx, postID, content); err != nil {
		return err
	}

	s.feedCache.DelPattern(ctx, "feed:*")

	return nil
}

func (s *feedService) ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("like: %w", models.ErrAuthRequired)
	}

	liked, likes, err := s.repo.Like.Toggle(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: liked, Likes: likes}, nil
}

func (s *feedService) AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	if userID == "" {
		return nil, fmt.Errorf("comment: %w", models.ErrAuthRequired)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment cannot be empty: %w", models.ErrValidation)
	}

	user, err := s.repo.User.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:      postID,
		Content:     content,
		AuthorID:    user.UserID,
		AuthorName:  user.DisplayName,
		AuthorPhoto: user.PhotoURL,
	}

	if err := s.repo.Comment.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *feedService) AddReply(ctx context.Context, userID, postID, commentID, content string) (*models.Reply, error) {
	if userID == "" {
		return nil, fmt.Errorf("reply: %w", models.ErrAuthRequired)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("reply cannot be empty: %w", models.ErrValidation)
	}

	user, err := s.repo.User.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{
		PostID:      postID,
		CommentID:   commentID,
		Content:     content,
		AuthorID:    user.UserID,
		AuthorName:  user.DisplayName,
		AuthorPhoto: user.PhotoURL,
	}

	if err := s.repo.Comment.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *feedService) ListComments(ctx context.Context, postID string, pageSize int, cursor string) (*models.CommentsPage, string, error) {
	if pageSize < 1 || pageSize > MaxFeedLimit {
		pageSize = 3
	}

	after, err := decodeOptionalCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	page, err := s.repo.Comment.ListComments(ctx, postID, pageSize, after)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if n := len(page.Comments); n > 0 {
		next = repository.EncodeCursor(page.Comments[n-1].CreatedAt.Time)
	}

	return page, next, nil
}

func (s *feedService) ListReplies(ctx context.Context, postID, commentID string, pageSize int, cursor string) (*models.RepliesPage, string, error) {
	if pageSize < 1 || pageSize > MaxFeedLimit {
		pageSize = 2
	}

	after, err := decodeOptionalCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	page, err := s.repo.Comment.ListReplies(ctx, postID, commentID, pageSize, after)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if n := len(page.Replies); n > 0 {
		next = repository.EncodeCursor(page.Replies[n-1].CreatedAt.Time)
	}

	return page, next, nil
}

func (s *feedService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	if userID == "" {
		return fmt.Errorf("delete comment: %w", models.ErrAuthRequired)
	}

	comment, err := s.repo.Comment.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		post, err := s.repo.Post.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		// The post author moderates their own thread.
		if post.AuthorID != userID {
			return fmt.Errorf("only the comment or post author can delete a comment: %w", models.ErrPermissionDenied)
		}
	}

	return s.repo.Comment.DeleteComment(ctx, postID, commentID)
}

// stripEmptyMedia drops empty media subfields before the write, so no
// empty arrays or objects reach the store.
func stripEmptyMedia(media *models.Media) *models.Media {
	if media == nil {
		return nil
	}
	if len(media.Images) == 0 {
		media.Images = nil
	}
	if media.Video != nil && media.Video.URL == "" {
		media.Video = nil
	}
	if media.Images == nil && media.Video == nil {
		return nil
	}
	return media
}

func nextPostCursor(posts []models.Post) string {
	if len(posts) == 0 {
		return ""
	}
	return repository.EncodeCursor(posts[len(posts)-1].CreatedAt.Time)
}

func decodeOptionalCursor(cursor string) (*time.Time, error) {
	if cursor == "" {
		return nil, nil
	}
	t, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
