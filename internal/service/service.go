package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"imalink-backend/internal/config"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service/association"
	"imalink-backend/internal/service/auth"
	"imalink-backend/internal/service/event"
	"imalink-backend/internal/service/photo"
	"imalink-backend/internal/service/tree"
)

type Services struct {
	Auth        auth.Service
	Event       event.Service
	Tree        tree.Service
	Association association.Service
	Photo       photo.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	authService := auth.NewService(repos.User, repos.Session, cfg)
	treeService := tree.NewService(repos.Event, repos.Association, redis, cfg)
	eventService := event.NewService(repos, treeService)
	photoService := photo.NewService(repos.Photo, repos.Association, minioClient, cfg, treeService)
	associationService := association.NewService(repos.Event, repos.Association, repos.Photo, photoService, treeService)

	return &Services{
		Auth:        authService,
		Event:       eventService,
		Tree:        treeService,
		Association: associationService,
		Photo:       photoService,
	}
}
