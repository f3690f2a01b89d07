package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"imalink-backend/internal/domain"
)

type PhotoRepository struct {
	mock.Mock
}

func (m *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *PhotoRepository) GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error) {
	args := m.Called(ctx, userID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *PhotoRepository) GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error) {
	args := m.Called(ctx, userID, hashes)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *PhotoRepository) FilterExisting(ctx context.Context, userID uuid.UUID, hashes []string) (map[string]bool, error) {
	args := m.Called(ctx, userID, hashes)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *PhotoRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *PhotoRepository) Delete(ctx context.Context, userID uuid.UUID, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}
