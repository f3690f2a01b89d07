package photo

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"imalink-backend/internal/config"
	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service/tree"
)

type Service interface {
	// Upload stores the photo content-addressed by its SHA-256. Uploading
	// bytes that already exist for the user returns the existing record.
	Upload(ctx context.Context, userID uuid.UUID, fileName, mimeType string, reader io.Reader, takenAt *time.Time) (*domain.Photo, error)
	GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error)
	GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error)
	Delete(ctx context.Context, userID uuid.UUID, hash string) error
}

type service struct {
	photoRepo   repository.PhotoRepository
	assocRepo   repository.AssociationRepository
	minioClient *minio.Client
	cfg         *config.Config
	treeSvc     tree.Service
}

func NewService(photoRepo repository.PhotoRepository, assocRepo repository.AssociationRepository, minioClient *minio.Client, cfg *config.Config, treeSvc tree.Service) Service {
	return &service{
		photoRepo:   photoRepo,
		assocRepo:   assocRepo,
		minioClient: minioClient,
		cfg:         cfg,
		treeSvc:     treeSvc,
	}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, fileName, mimeType string, reader io.Reader, takenAt *time.Time) (*domain.Photo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &domain.ValidationError{Field: "file", Message: "file is empty"}
	}

	sum := sha256.Sum256(data)
	contentHash := hex.EncodeToString(sum[:])

	existing, err := s.photoRepo.GetByHash(ctx, userID, contentHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.URL = s.getPublicURL(existing.StoragePath)
		return existing, nil
	}

	storagePath := fmt.Sprintf("photos/%s/%s", userID, contentHash)
	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	photo := &domain.Photo{
		ContentHash: contentHash,
		UserID:      userID,
		FileName:    fileName,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		StoragePath: storagePath,
		TakenAt:     takenAt,
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	photo.URL = s.getPublicURL(storagePath)
	return photo, nil
}

func (s *service) GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByHash(ctx, userID, hash)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, domain.ErrPhotoNotFound
	}
	photo.URL = s.getPublicURL(photo.StoragePath)
	return photo, nil
}

func (s *service) GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error) {
	photos, err := s.photoRepo.GetByHashes(ctx, userID, hashes)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		photos[i].URL = s.getPublicURL(photos[i].StoragePath)
	}
	return photos, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	photos, err := s.photoRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		photos[i].URL = s.getPublicURL(photos[i].StoragePath)
	}
	return photos, nil
}

// Delete removes the catalog entry, its event associations, and the
// stored blob. Events referencing the photo keep existing; only their
// membership rows go.
func (s *service) Delete(ctx context.Context, userID uuid.UUID, hash string) error {
	photo, err := s.photoRepo.GetByHash(ctx, userID, hash)
	if err != nil {
		return err
	}
	if photo == nil {
		return domain.ErrPhotoNotFound
	}

	if err := s.assocRepo.DeleteByHash(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.photoRepo.Delete(ctx, userID, hash); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, photo.StoragePath, minio.RemoveObjectOptions{})

	s.treeSvc.InvalidateCache(ctx, userID)
	return nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
