package unit_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/service/photo"
	"imalink-backend/internal/service/tree"
	"imalink-backend/tests/mocks"
)

func newPhotoService(photoRepo *mocks.PhotoRepository, assocRepo *mocks.AssociationRepository) photo.Service {
	treeSvc := tree.NewService(new(mocks.EventRepository), assocRepo, nil, testConfig())
	return photo.NewService(photoRepo, assocRepo, nil, testConfig(), treeSvc)
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Same Bytes Return Existing Record", func(t *testing.T) {
		photoRepo := new(mocks.PhotoRepository)
		svc := newPhotoService(photoRepo, new(mocks.AssociationRepository))

		content := []byte("raw image bytes")
		sum := sha256.Sum256(content)
		contentHash := hex.EncodeToString(sum[:])

		existing := &domain.Photo{
			ContentHash: contentHash,
			UserID:      userID,
			FileName:    "beach.jpg",
			StoragePath: "photos/" + userID.String() + "/" + contentHash,
		}
		photoRepo.On("GetByHash", ctx, userID, contentHash).Return(existing, nil).Once()

		uploaded, err := svc.Upload(ctx, userID, "beach-copy.jpg", "image/jpeg", bytes.NewReader(content), nil)

		assert.NoError(t, err)
		assert.Equal(t, contentHash, uploaded.ContentHash)
		assert.Equal(t, "beach.jpg", uploaded.FileName)
		assert.NotEmpty(t, uploaded.URL)
		photoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Empty File Rejected", func(t *testing.T) {
		svc := newPhotoService(new(mocks.PhotoRepository), new(mocks.AssociationRepository))

		_, err := svc.Upload(ctx, userID, "empty.jpg", "image/jpeg", bytes.NewReader(nil), nil)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "file", validationErr.Field)
	})
}

func TestPhotoService_GetByHash(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		photoRepo := new(mocks.PhotoRepository)
		svc := newPhotoService(photoRepo, new(mocks.AssociationRepository))

		photoRepo.On("GetByHash", ctx, userID, "abc123").Return(&domain.Photo{
			ContentHash: "abc123",
			UserID:      userID,
			StoragePath: "photos/" + userID.String() + "/abc123",
		}, nil).Once()

		result, err := svc.GetByHash(ctx, userID, "abc123")

		assert.NoError(t, err)
		assert.Contains(t, result.URL, "abc123")
	})

	t.Run("Not Found", func(t *testing.T) {
		photoRepo := new(mocks.PhotoRepository)
		svc := newPhotoService(photoRepo, new(mocks.AssociationRepository))

		photoRepo.On("GetByHash", ctx, userID, "missing").Return(nil, nil).Once()

		_, err := svc.GetByHash(ctx, userID, "missing")

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	})
}

func TestPhotoService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	photoRepo := new(mocks.PhotoRepository)
	svc := newPhotoService(photoRepo, new(mocks.AssociationRepository))

	photoRepo.On("List", ctx, userID).Return([]domain.Photo{
		{ContentHash: "h1", UserID: userID, StoragePath: "photos/p/h1"},
		{ContentHash: "h2", UserID: userID, StoragePath: "photos/p/h2"},
	}, nil).Once()

	photos, err := svc.List(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, photos, 2)
	for _, p := range photos {
		assert.NotEmpty(t, p.URL)
	}
}
