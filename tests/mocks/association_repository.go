package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"imalink-backend/internal/repository"
)

type AssociationRepository struct {
	mock.Mock
}

func (m *AssociationRepository) Add(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	args := m.Called(ctx, eventID, hashes)
	return args.Int(0), args.Error(1)
}

func (m *AssociationRepository) Remove(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	args := m.Called(ctx, eventID, hashes)
	return args.Int(0), args.Error(1)
}

func (m *AssociationRepository) ListHashes(ctx context.Context, eventIDs []uuid.UUID) ([]string, error) {
	args := m.Called(ctx, eventIDs)
	return args.Get(0).([]string), args.Error(1)
}

func (m *AssociationRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *AssociationRepository) CountByEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, eventIDs)
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *AssociationRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *AssociationRepository) DeleteByHash(ctx context.Context, userID uuid.UUID, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *AssociationRepository) WithTx(tx *sqlx.Tx) repository.AssociationRepository {
	return m
}
