package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) UpdateParent(ctx context.Context, userID, id uuid.UUID, oldParent, newParent *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id, oldParent, newParent)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *EventRepository) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.Event, error) {
	args := m.Called(ctx, userID, parentID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *EventRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *EventRepository) PromoteChildren(ctx context.Context, userID, parentID uuid.UUID, newParent *uuid.UUID) error {
	args := m.Called(ctx, userID, parentID, newParent)
	return args.Error(0)
}

func (m *EventRepository) WithTx(tx *sqlx.Tx) repository.EventRepository {
	return m
}
