package service

import (
	"socialfeed/internal/cache"
	"socialfeed/internal/config"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Feed   FeedService
	Upload UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, feedCache *cache.Redis) *Service {
	upload := NewUploadService(storage, cfg)

	return &Service{
		Auth:   NewAuthService(rep.User, cfg),
		User:   NewUserService(rep.User, upload, cfg),
		Feed:   NewFeedService(rep, cfg, feedCache),
		Upload: upload,
	}
}
