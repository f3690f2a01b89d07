package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/service/tree"
	"imalink-backend/tests/mocks"
)

func TestTreeService_GetTree(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	eventA := uuid.New()
	eventB := uuid.New()
	eventC := uuid.New()

	t.Run("Full Tree", func(t *testing.T) {
		// A → B → C, one chain; B carries two photos.
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("ListAll", ctx, userID).Return([]domain.Event{
			{ID: eventA, UserID: userID, Name: "Trip"},
			{ID: eventB, UserID: userID, ParentEventID: &eventA, Name: "Day 1"},
			{ID: eventC, UserID: userID, ParentEventID: &eventB, Name: "Morning"},
		}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{eventA, eventB, eventC}).
			Return(map[uuid.UUID]int{eventB: 2}, nil).Once()

		result, err := svc.GetTree(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.TotalEvents)
		assert.Len(t, result.Events, 1)

		root := result.Events[0]
		assert.Equal(t, eventA, root.ID)
		assert.Equal(t, 0, root.PhotoCount)
		assert.Len(t, root.Children, 1)
		assert.Equal(t, eventB, root.Children[0].ID)
		assert.Equal(t, 2, root.Children[0].PhotoCount)
		assert.Len(t, root.Children[0].Children, 1)
		assert.Equal(t, eventC, root.Children[0].Children[0].ID)
		eventRepo.AssertExpectations(t)
		assocRepo.AssertExpectations(t)
	})

	t.Run("Multiple Roots Keep Order", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("ListAll", ctx, userID).Return([]domain.Event{
			{ID: eventA, UserID: userID, Name: "Alps", SortOrder: 1},
			{ID: eventB, UserID: userID, Name: "Beach", SortOrder: 2},
		}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{eventA, eventB}).
			Return(map[uuid.UUID]int{}, nil).Once()

		result, err := svc.GetTree(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.TotalEvents)
		assert.Len(t, result.Events, 2)
		assert.Equal(t, eventA, result.Events[0].ID)
		assert.Equal(t, eventB, result.Events[1].ID)
	})

	t.Run("Subtree", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("GetByID", ctx, userID, eventB).
			Return(&domain.Event{ID: eventB, UserID: userID, ParentEventID: &eventA, Name: "Day 1"}, nil).Once()
		eventRepo.On("ListByParent", ctx, userID, &eventB).Return([]domain.Event{
			{ID: eventC, UserID: userID, ParentEventID: &eventB, Name: "Morning"},
		}, nil).Once()
		eventRepo.On("ListByParent", ctx, userID, &eventC).Return([]domain.Event{}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{eventB, eventC}).
			Return(map[uuid.UUID]int{eventC: 1}, nil).Once()

		result, err := svc.GetTree(ctx, userID, &eventB)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.TotalEvents)
		assert.Len(t, result.Events, 1)
		assert.Equal(t, eventB, result.Events[0].ID)
		assert.Len(t, result.Events[0].Children, 1)
		assert.Equal(t, 1, result.Events[0].Children[0].PhotoCount)
		eventRepo.AssertExpectations(t)
	})

	t.Run("Subtree Root Not Found", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := tree.NewService(eventRepo, new(mocks.AssociationRepository), nil, testConfig())

		eventRepo.On("GetByID", ctx, userID, eventB).Return(nil, nil).Once()

		_, err := svc.GetTree(ctx, userID, &eventB)

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("Empty Forest", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("ListAll", ctx, userID).Return([]domain.Event{}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{}).Return(map[uuid.UUID]int{}, nil).Once()

		result, err := svc.GetTree(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.TotalEvents)
		assert.Empty(t, result.Events)
	})
}

func TestTreeService_ListByParent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	parentID := uuid.New()
	child1 := uuid.New()
	child2 := uuid.New()

	t.Run("Children With Counts", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("GetByID", ctx, userID, parentID).
			Return(&domain.Event{ID: parentID, UserID: userID}, nil).Once()
		eventRepo.On("ListByParent", ctx, userID, &parentID).Return([]domain.Event{
			{ID: child1, UserID: userID, Name: "Morning"},
			{ID: child2, UserID: userID, Name: "Evening"},
		}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{child1, child2}).
			Return(map[uuid.UUID]int{child1: 3}, nil).Once()

		result, err := svc.ListByParent(ctx, userID, &parentID)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, 3, result[0].PhotoCount)
		assert.Equal(t, 0, result[1].PhotoCount)
	})

	t.Run("Roots When Parent Nil", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := tree.NewService(eventRepo, assocRepo, nil, testConfig())

		eventRepo.On("ListByParent", ctx, userID, (*uuid.UUID)(nil)).Return([]domain.Event{
			{ID: child1, UserID: userID, Name: "Trip"},
		}, nil).Once()
		assocRepo.On("CountByEvents", ctx, []uuid.UUID{child1}).
			Return(map[uuid.UUID]int{}, nil).Once()

		result, err := svc.ListByParent(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("Parent Not Found", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := tree.NewService(eventRepo, new(mocks.AssociationRepository), nil, testConfig())

		eventRepo.On("GetByID", ctx, userID, parentID).Return(nil, nil).Once()

		_, err := svc.ListByParent(ctx, userID, &parentID)

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}
