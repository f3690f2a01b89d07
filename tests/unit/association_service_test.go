package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/service/association"
	"imalink-backend/internal/service/photo"
	"imalink-backend/internal/service/tree"
	"imalink-backend/tests/mocks"
)

func newAssociationService(eventRepo *mocks.EventRepository, assocRepo *mocks.AssociationRepository, photoRepo *mocks.PhotoRepository) association.Service {
	treeSvc := tree.NewService(eventRepo, assocRepo, nil, testConfig())
	photoSvc := photo.NewService(photoRepo, assocRepo, nil, testConfig(), treeSvc)
	return association.NewService(eventRepo, assocRepo, photoRepo, photoSvc, treeSvc)
}

func TestAssociationService_AddPhotos(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	eventID := uuid.New()

	existingEvent := &domain.Event{ID: eventID, UserID: userID, Name: "Trip"}

	t.Run("Duplicates Collapsed Before Insert", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		photoRepo := new(mocks.PhotoRepository)
		svc := newAssociationService(eventRepo, assocRepo, photoRepo)

		eventRepo.On("GetByID", ctx, userID, eventID).Return(existingEvent, nil).Once()
		photoRepo.On("FilterExisting", ctx, userID, []string{"h1", "h2"}).
			Return(map[string]bool{"h1": true, "h2": true}, nil).Once()
		assocRepo.On("Add", ctx, eventID, []string{"h1", "h2"}).Return(2, nil).Once()

		added, err := svc.AddPhotos(ctx, userID, eventID, []string{"h1", "h2", "h1"})

		assert.NoError(t, err)
		assert.Equal(t, 2, added)
		assocRepo.AssertExpectations(t)
		photoRepo.AssertExpectations(t)
	})

	t.Run("Already Linked Counts Zero", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		photoRepo := new(mocks.PhotoRepository)
		svc := newAssociationService(eventRepo, assocRepo, photoRepo)

		eventRepo.On("GetByID", ctx, userID, eventID).Return(existingEvent, nil).Once()
		photoRepo.On("FilterExisting", ctx, userID, []string{"h1"}).
			Return(map[string]bool{"h1": true}, nil).Once()
		assocRepo.On("Add", ctx, eventID, []string{"h1"}).Return(0, nil).Once()

		added, err := svc.AddPhotos(ctx, userID, eventID, []string{"h1"})

		assert.NoError(t, err)
		assert.Equal(t, 0, added)
	})

	t.Run("Unknown Hash", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		photoRepo := new(mocks.PhotoRepository)
		svc := newAssociationService(eventRepo, assocRepo, photoRepo)

		eventRepo.On("GetByID", ctx, userID, eventID).Return(existingEvent, nil).Once()
		photoRepo.On("FilterExisting", ctx, userID, []string{"h1", "missing"}).
			Return(map[string]bool{"h1": true}, nil).Once()

		_, err := svc.AddPhotos(ctx, userID, eventID, []string{"h1", "missing"})

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
		assocRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Event Not Found", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newAssociationService(eventRepo, new(mocks.AssociationRepository), new(mocks.PhotoRepository))

		eventRepo.On("GetByID", ctx, userID, eventID).Return(nil, nil).Once()

		_, err := svc.AddPhotos(ctx, userID, eventID, []string{"h1"})

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("Empty Input", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := newAssociationService(eventRepo, assocRepo, new(mocks.PhotoRepository))

		eventRepo.On("GetByID", ctx, userID, eventID).Return(existingEvent, nil).Once()

		added, err := svc.AddPhotos(ctx, userID, eventID, []string{"", ""})

		assert.NoError(t, err)
		assert.Equal(t, 0, added)
		assocRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAssociationService_RemovePhotos(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	eventID := uuid.New()

	t.Run("Reports Removed Count", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		svc := newAssociationService(eventRepo, assocRepo, new(mocks.PhotoRepository))

		eventRepo.On("GetByID", ctx, userID, eventID).
			Return(&domain.Event{ID: eventID, UserID: userID}, nil).Once()
		assocRepo.On("Remove", ctx, eventID, []string{"h1", "h2"}).Return(1, nil).Once()

		removed, err := svc.RemovePhotos(ctx, userID, eventID, []string{"h1", "h2"})

		assert.NoError(t, err)
		assert.Equal(t, 1, removed)
	})

	t.Run("Event Not Found", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newAssociationService(eventRepo, new(mocks.AssociationRepository), new(mocks.PhotoRepository))

		eventRepo.On("GetByID", ctx, userID, eventID).Return(nil, nil).Once()

		_, err := svc.RemovePhotos(ctx, userID, eventID, []string{"h1"})

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestAssociationService_GetPhotos(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	eventA := uuid.New()
	eventB := uuid.New()

	event := &domain.Event{ID: eventA, UserID: userID, Name: "Trip"}

	t.Run("Direct Only", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		photoRepo := new(mocks.PhotoRepository)
		svc := newAssociationService(eventRepo, assocRepo, photoRepo)

		eventRepo.On("GetByID", ctx, userID, eventA).Return(event, nil).Once()
		assocRepo.On("ListHashes", ctx, []uuid.UUID{eventA}).Return([]string{"h1"}, nil).Once()
		photoRepo.On("GetByHashes", ctx, userID, []string{"h1"}).Return([]domain.Photo{
			{ContentHash: "h1", UserID: userID, StoragePath: "photos/p/h1"},
		}, nil).Once()

		photos, err := svc.GetPhotos(ctx, userID, eventA, false)

		assert.NoError(t, err)
		assert.Len(t, photos, 1)
		assert.Equal(t, "h1", photos[0].ContentHash)
		assert.NotEmpty(t, photos[0].URL)
	})

	t.Run("With Descendants", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		assocRepo := new(mocks.AssociationRepository)
		photoRepo := new(mocks.PhotoRepository)
		svc := newAssociationService(eventRepo, assocRepo, photoRepo)

		eventRepo.On("GetByID", ctx, userID, eventA).Return(event, nil).Once()
		eventRepo.On("ListByParent", ctx, userID, &eventA).Return([]domain.Event{
			{ID: eventB, UserID: userID, ParentEventID: &eventA},
		}, nil).Once()
		eventRepo.On("ListByParent", ctx, userID, &eventB).Return([]domain.Event{}, nil).Once()
		assocRepo.On("ListHashes", ctx, []uuid.UUID{eventA, eventB}).
			Return([]string{"h1", "h2"}, nil).Once()
		photoRepo.On("GetByHashes", ctx, userID, []string{"h1", "h2"}).Return([]domain.Photo{
			{ContentHash: "h1", UserID: userID},
			{ContentHash: "h2", UserID: userID},
		}, nil).Once()

		photos, err := svc.GetPhotos(ctx, userID, eventA, true)

		assert.NoError(t, err)
		assert.Len(t, photos, 2)
		eventRepo.AssertExpectations(t)
	})

	t.Run("Event Not Found", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newAssociationService(eventRepo, new(mocks.AssociationRepository), new(mocks.PhotoRepository))

		eventRepo.On("GetByID", ctx, userID, eventA).Return(nil, nil).Once()

		_, err := svc.GetPhotos(ctx, userID, eventA, false)

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestAssociationService_DirectCount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	eventID := uuid.New()

	eventRepo := new(mocks.EventRepository)
	assocRepo := new(mocks.AssociationRepository)
	svc := newAssociationService(eventRepo, assocRepo, new(mocks.PhotoRepository))

	eventRepo.On("GetByID", ctx, userID, eventID).
		Return(&domain.Event{ID: eventID, UserID: userID}, nil).Once()
	assocRepo.On("CountByEvent", ctx, eventID).Return(4, nil).Once()

	count, err := svc.DirectCount(ctx, userID, eventID)

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}
