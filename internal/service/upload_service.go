package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/storage"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
var allowedVideoTypes = []string{"video/mp4", "video/webm", "video/ogg"}

type UploadResult struct {
	URL       string `json:"url"`
	Path      string `json:"path"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type UploadService interface {
	UploadImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error)
	UploadVideo(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error)
	UploadProfilePhoto(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error)
	Remove(ctx context.Context, path string) error
}

type uploadService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadService(storage storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{
		storage: storage,
		cfg:     cfg,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("image upload: %w", models.ErrAuthRequired)
	}

	objectName := fmt.Sprintf("posts/images/%s/%d_%s", userID, time.Now().UnixMilli(), sanitizeFileName(fileName))

	return s.upload(ctx, objectName, file, size, s.cfg.MaxImageSize, allowedImageTypes, "image")
}

func (s *uploadService) UploadVideo(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("video upload: %w", models.ErrAuthRequired)
	}

	objectName := fmt.Sprintf("posts/videos/%s/%d_%s", userID, time.Now().UnixMilli(), sanitizeFileName(fileName))

	return s.upload(ctx, objectName, file, size, s.cfg.MaxVideoSize, allowedVideoTypes, "video")
}

func (s *uploadService) UploadProfilePhoto(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*UploadResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("profile photo upload: %w", models.ErrAuthRequired)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	objectName := fmt.Sprintf("profile-photos/%s_%d%s", userID, time.Now().UnixMilli(), ext)

	return s.upload(ctx, objectName, file, size, s.cfg.MaxImageSize, allowedImageTypes, "image")
}

func (s *uploadService) Remove(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// upload validates type and size before any network call, then stores
// the object. A later failure does not undo the storage write; orphaned
// objects are an accepted risk.
func (s *uploadService) upload(ctx context.Context, objectName string, file io.Reader, size, maxSize int64, allowedTypes []string, kind string) (*UploadResult, error) {
	if size > maxSize {
		return nil, fmt.Errorf("%s size %s exceeds the %s limit: %w",
			kind, humanize.Bytes(uint64(size)), humanize.Bytes(uint64(maxSize)), models.ErrValidation)
	}

	// Sniff the real content type instead of trusting the client header.
	header := make([]byte, 3072)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read %s file: %w", kind, err)
	}

	mtype := mimetype.Detect(header[:n])

	allowed := false
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported %s type %s, allowed: %s: %w",
			kind, mtype.String(), strings.Join(allowedTypes, ", "), models.ErrValidation)
	}

	reader := io.MultiReader(bytes.NewReader(header[:n]), file)

	url, err := s.storage.Upload(ctx, objectName, reader, size, mtype.String())
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	return &UploadResult{
		URL:  url,
		Path: objectName,
		Type: mtype.String(),
	}, nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "_")
}
