package app

import (
	"log"

	"socialfeed/internal/cache"
	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *cache.Redis, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// connection Redis; the feed works without it, just uncached
	var feedCache *cache.Redis
	if !cfg.Redis.Disabled {
		feedCache, err = cache.New(cfg)
		if err != nil {
			log.Printf("Warning: redis unavailable, feed cache disabled: %v", err)
			feedCache = nil
		}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, feedCache)

	return db, feedCache, repo, services
}
