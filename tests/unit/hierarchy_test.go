package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/service/hierarchy"
	"imalink-backend/tests/mocks"
)

func TestWouldCreateCycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	eventA := uuid.New()
	eventB := uuid.New()
	eventC := uuid.New()

	t.Run("Nil Parent Never Cycles", func(t *testing.T) {
		repo := new(mocks.EventRepository)

		cycle, err := hierarchy.WouldCreateCycle(ctx, repo, userID, eventA, nil)

		assert.NoError(t, err)
		assert.False(t, cycle)
	})

	t.Run("Self Parent", func(t *testing.T) {
		repo := new(mocks.EventRepository)

		cycle, err := hierarchy.WouldCreateCycle(ctx, repo, userID, eventA, &eventA)

		assert.NoError(t, err)
		assert.True(t, cycle)
	})

	t.Run("Parent Is Descendant", func(t *testing.T) {
		// A -> B -> C; moving A under C closes a loop.
		repo := new(mocks.EventRepository)
		repo.On("GetByID", ctx, userID, eventC).Return(&domain.Event{ID: eventC, UserID: userID, ParentEventID: &eventB}, nil)
		repo.On("GetByID", ctx, userID, eventB).Return(&domain.Event{ID: eventB, UserID: userID, ParentEventID: &eventA}, nil)

		cycle, err := hierarchy.WouldCreateCycle(ctx, repo, userID, eventA, &eventC)

		assert.NoError(t, err)
		assert.True(t, cycle)
	})

	t.Run("Unrelated Parent", func(t *testing.T) {
		other := uuid.New()
		repo := new(mocks.EventRepository)
		repo.On("GetByID", ctx, userID, other).Return(&domain.Event{ID: other, UserID: userID}, nil)

		cycle, err := hierarchy.WouldCreateCycle(ctx, repo, userID, eventA, &other)

		assert.NoError(t, err)
		assert.False(t, cycle)
	})

	t.Run("Corrupted Ancestor Chain", func(t *testing.T) {
		x := uuid.New()
		y := uuid.New()
		repo := new(mocks.EventRepository)
		repo.On("GetByID", ctx, userID, x).Return(&domain.Event{ID: x, UserID: userID, ParentEventID: &y}, nil)
		repo.On("GetByID", ctx, userID, y).Return(&domain.Event{ID: y, UserID: userID, ParentEventID: &x}, nil)

		_, err := hierarchy.WouldCreateCycle(ctx, repo, userID, eventA, &x)

		assert.ErrorIs(t, err, domain.ErrStorageCorrupted)
	})
}

func TestDescendants(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	eventA := uuid.New()
	eventB := uuid.New()
	eventC := uuid.New()

	t.Run("Chain", func(t *testing.T) {
		repo := new(mocks.EventRepository)
		repo.On("ListByParent", ctx, userID, &eventA).Return([]domain.Event{{ID: eventB, UserID: userID, ParentEventID: &eventA}}, nil)
		repo.On("ListByParent", ctx, userID, &eventB).Return([]domain.Event{{ID: eventC, UserID: userID, ParentEventID: &eventB}}, nil)
		repo.On("ListByParent", ctx, userID, &eventC).Return([]domain.Event{}, nil)

		ids, err := hierarchy.DescendantIDs(ctx, repo, userID, eventA)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{eventB, eventC}, ids)
	})

	t.Run("Leaf", func(t *testing.T) {
		repo := new(mocks.EventRepository)
		repo.On("ListByParent", ctx, userID, &eventC).Return([]domain.Event{}, nil)

		ids, err := hierarchy.DescendantIDs(ctx, repo, userID, eventC)

		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Revisit Is Corruption", func(t *testing.T) {
		// B appears as a child of both A and C.
		repo := new(mocks.EventRepository)
		repo.On("ListByParent", ctx, userID, &eventA).Return([]domain.Event{
			{ID: eventB, UserID: userID, ParentEventID: &eventA},
			{ID: eventC, UserID: userID, ParentEventID: &eventA},
		}, nil)
		repo.On("ListByParent", ctx, userID, &eventB).Return([]domain.Event{}, nil)
		repo.On("ListByParent", ctx, userID, &eventC).Return([]domain.Event{{ID: eventB, UserID: userID, ParentEventID: &eventC}}, nil)

		_, err := hierarchy.Descendants(ctx, repo, userID, eventA)

		assert.ErrorIs(t, err, domain.ErrStorageCorrupted)
	})
}
