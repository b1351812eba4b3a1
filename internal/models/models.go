package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	PostStatusActive  = "active"
	PostStatusDeleted = "deleted"
	PostStatusHidden  = "hidden"
)

// Timestamp serializes as {seconds, nanoseconds} on the wire and as
// TIMESTAMPTZ in the database.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int   `json:"nanoseconds"`
	}{
		Seconds:     t.Unix(),
		Nanoseconds: t.Nanosecond(),
	})
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int   `json:"nanoseconds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}
	t.Time = time.Unix(raw.Seconds, int64(raw.Nanoseconds)).UTC()
	return nil
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	DisplayName            string    `json:"displayName" db:"display_name"`
	PhotoURL               string    `json:"photoURL" db:"photo_url"`
	EmailVerified          bool      `json:"emailVerified" db:"email_verified"`
	VerificationToken      string    `json:"-" db:"verification_token"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// Author is the denormalized snapshot of a user stored on posts,
// comments and replies.
type Author struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type MediaImage struct {
	ImageID  string `json:"-" db:"image_id"`
	PostID   string `json:"-" db:"post_id"`
	URL      string `json:"url" db:"image_url"`
	Path     string `json:"path" db:"image_path"`
	Type     string `json:"type" db:"image_type"`
	Position int    `json:"-" db:"position"`
}

type MediaVideo struct {
	URL       string `json:"url"`
	Path      string `json:"path"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type Media struct {
	Images []MediaImage `json:"images,omitempty"`
	Video  *MediaVideo  `json:"video,omitempty"`
}

type PostStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

type Post struct {
	PostID  string `json:"id" db:"post_id"`
	Content string `json:"content" db:"content"`

	AuthorID    string `json:"-" db:"author_id"`
	AuthorName  string `json:"-" db:"author_name"`
	AuthorPhoto string `json:"-" db:"author_photo"`
	Author      Author `json:"author" db:"-"`

	VideoURL       string `json:"-" db:"video_url"`
	VideoPath      string `json:"-" db:"video_path"`
	VideoType      string `json:"-" db:"video_type"`
	VideoThumbnail string `json:"-" db:"video_thumbnail"`
	Media          *Media `json:"media,omitempty" db:"-"`

	LikesCount    int       `json:"-" db:"likes_count"`
	CommentsCount int       `json:"-" db:"comments_count"`
	Stats         PostStats `json:"stats" db:"-"`

	Status    string         `json:"status" db:"status"`
	Tags      pq.StringArray `json:"tags,omitempty" db:"tags"`
	CreatedAt Timestamp      `json:"createdAt" db:"created_at"`
	UpdatedAt Timestamp      `json:"updatedAt" db:"updated_at"`

	// Set for the requesting user on reads when identity is known.
	LikedByMe bool `json:"likedByMe" db:"-"`
}

// Normalize fills the nested JSON projections from the flat row columns.
func (p *Post) Normalize() {
	p.Author = Author{
		UID:         p.AuthorID,
		DisplayName: p.AuthorName,
		PhotoURL:    p.AuthorPhoto,
	}
	p.Stats = PostStats{
		Likes:    p.LikesCount,
		Comments: p.CommentsCount,
	}
	if p.VideoURL != "" {
		if p.Media == nil {
			p.Media = &Media{}
		}
		p.Media.Video = &MediaVideo{
			URL:       p.VideoURL,
			Path:      p.VideoPath,
			Type:      p.VideoType,
			Thumbnail: p.VideoThumbnail,
		}
	}
}

type Comment struct {
	CommentID string `json:"id" db:"comment_id"`
	PostID    string `json:"postId" db:"post_id"`
	Content   string `json:"content" db:"content"`

	AuthorID    string `json:"-" db:"author_id"`
	AuthorName  string `json:"-" db:"author_name"`
	AuthorPhoto string `json:"-" db:"author_photo"`
	Author      Author `json:"author" db:"-"`

	CreatedAt Timestamp `json:"createdAt" db:"created_at"`
	UpdatedAt Timestamp `json:"updatedAt" db:"updated_at"`

	// Partial expansion: the first page of replies plus the totals the
	// client needs to render a "show more" control.
	Replies        []Reply `json:"replies,omitempty" db:"-"`
	TotalReplies   int     `json:"totalReplies" db:"-"`
	HasMoreReplies bool    `json:"hasMoreReplies" db:"-"`
}

func (c *Comment) Normalize() {
	c.Author = Author{
		UID:         c.AuthorID,
		DisplayName: c.AuthorName,
		PhotoURL:    c.AuthorPhoto,
	}
}

type Reply struct {
	ReplyID   string `json:"id" db:"reply_id"`
	CommentID string `json:"commentId" db:"comment_id"`
	PostID    string `json:"postId" db:"post_id"`
	Content   string `json:"content" db:"content"`

	AuthorID    string `json:"-" db:"author_id"`
	AuthorName  string `json:"-" db:"author_name"`
	AuthorPhoto string `json:"-" db:"author_photo"`
	Author      Author `json:"author" db:"-"`

	CreatedAt Timestamp `json:"createdAt" db:"created_at"`
	UpdatedAt Timestamp `json:"updatedAt" db:"updated_at"`
}

func (r *Reply) Normalize() {
	r.Author = Author{
		UID:         r.AuthorID,
		DisplayName: r.AuthorName,
		PhotoURL:    r.AuthorPhoto,
	}
}

// Like existence under a post encodes the liked state; there is no
// separate boolean flag anywhere.
type Like struct {
	PostID    string    `json:"-" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt Timestamp `json:"createdAt" db:"created_at"`
}

type CommentsPage struct {
	Comments      []Comment `json:"comments"`
	TotalComments int       `json:"totalComments"`
	HasMore       bool      `json:"hasMore"`
}

type RepliesPage struct {
	Replies      []Reply `json:"replies"`
	TotalReplies int     `json:"totalReplies"`
	HasMore      bool    `json:"hasMore"`
}
