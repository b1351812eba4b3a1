package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.User, error)
	UpdateProfilePhoto(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error)
	SendEmailVerification(ctx context.Context, userID string) (string, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	upload   UploadService
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, upload UploadService, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		upload:   upload,
		cfg:      cfg,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get user: %w", models.ErrAuthRequired)
	}
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateDisplayName persists the trimmed name and returns the patched
// user so clients can update without a round trip.
func (s *userService) UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update display name: %w", models.ErrAuthRequired)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("display name cannot be empty: %w", models.ErrValidation)
	}

	if err := s.userRepo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfilePhoto validates and uploads the photo, then commits the
// URL to the user record. The stored object is removed if the commit
// fails.
func (s *userService) UpdateProfilePhoto(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update profile photo: %w", models.ErrAuthRequired)
	}

	result, err := s.upload.UploadProfilePhoto(ctx, userID, fileName, file, size)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePhotoURL(ctx, userID, result.URL); err != nil {
		if removeErr := s.upload.Remove(ctx, result.Path); removeErr != nil {
			log.Printf("Warning: failed to remove orphaned profile photo %s: %v", result.Path, removeErr)
		}
		return nil, fmt.Errorf("failed to save profile photo: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SendEmailVerification issues a fresh verification token. Mail
// delivery is out of scope here, so the token is returned to the
// caller and logged.
func (s *userService) SendEmailVerification(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("send email verification: %w", models.ErrAuthRequired)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.EmailVerified {
		return "", fmt.Errorf("email is already verified: %w", models.ErrValidation)
	}

	token := uuid.New().String()
	if err := s.userRepo.SetVerificationToken(ctx, userID, token); err != nil {
		return "", err
	}

	log.Printf("Verification token issued for %s", user.Email)
	return token, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("verification token is required: %w", models.ErrValidation)
	}
	return s.userRepo.VerifyEmail(ctx, token)
}

// DeleteAccount removes the user record. Posts keep their denormalized
// author snapshot.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete account: %w", models.ErrAuthRequired)
	}
	return s.userRepo.DeleteUser(ctx, userID)
}
