package association

import (
	"context"

	"github.com/google/uuid"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service/hierarchy"
	"imalink-backend/internal/service/photo"
	"imalink-backend/internal/service/tree"
)

type Service interface {
	// AddPhotos links the hashes to the event and reports how many links
	// were actually new. Hashes already linked are skipped silently;
	// hashes the user does not own at all are an error.
	AddPhotos(ctx context.Context, userID, eventID uuid.UUID, hashes []string) (int, error)
	// RemovePhotos unlinks the hashes and reports how many links
	// existed. Hashes not currently linked are ignored.
	RemovePhotos(ctx context.Context, userID, eventID uuid.UUID, hashes []string) (int, error)
	// GetPhotos returns the photos linked to the event, and to its whole
	// descendant set when includeDescendants is true, de-duplicated.
	GetPhotos(ctx context.Context, userID, eventID uuid.UUID, includeDescendants bool) ([]domain.Photo, error)
	DirectCount(ctx context.Context, userID, eventID uuid.UUID) (int, error)
}

type service struct {
	eventRepo repository.EventRepository
	assocRepo repository.AssociationRepository
	photoRepo repository.PhotoRepository
	photoSvc  photo.Service
	treeSvc   tree.Service
}

func NewService(eventRepo repository.EventRepository, assocRepo repository.AssociationRepository, photoRepo repository.PhotoRepository, photoSvc photo.Service, treeSvc tree.Service) Service {
	return &service{
		eventRepo: eventRepo,
		assocRepo: assocRepo,
		photoRepo: photoRepo,
		photoSvc:  photoSvc,
		treeSvc:   treeSvc,
	}
}

func (s *service) AddPhotos(ctx context.Context, userID, eventID uuid.UUID, hashes []string) (int, error) {
	if _, err := s.requireEvent(ctx, userID, eventID); err != nil {
		return 0, err
	}

	hashes = dedupe(hashes)
	if len(hashes) == 0 {
		return 0, nil
	}

	existing, err := s.photoRepo.FilterExisting(ctx, userID, hashes)
	if err != nil {
		return 0, err
	}
	for _, h := range hashes {
		if !existing[h] {
			return 0, domain.ErrPhotoNotFound
		}
	}

	added, err := s.assocRepo.Add(ctx, eventID, hashes)
	if err != nil {
		return 0, err
	}

	if added > 0 {
		s.treeSvc.InvalidateCache(ctx, userID)
	}
	return added, nil
}

func (s *service) RemovePhotos(ctx context.Context, userID, eventID uuid.UUID, hashes []string) (int, error) {
	if _, err := s.requireEvent(ctx, userID, eventID); err != nil {
		return 0, err
	}

	removed, err := s.assocRepo.Remove(ctx, eventID, dedupe(hashes))
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.treeSvc.InvalidateCache(ctx, userID)
	}
	return removed, nil
}

func (s *service) GetPhotos(ctx context.Context, userID, eventID uuid.UUID, includeDescendants bool) ([]domain.Photo, error) {
	if _, err := s.requireEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}

	eventIDs := []uuid.UUID{eventID}
	if includeDescendants {
		descendants, err := hierarchy.DescendantIDs(ctx, s.eventRepo, userID, eventID)
		if err != nil {
			return nil, err
		}
		eventIDs = append(eventIDs, descendants...)
	}

	hashes, err := s.assocRepo.ListHashes(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	return s.photoSvc.GetByHashes(ctx, userID, hashes)
}

func (s *service) DirectCount(ctx context.Context, userID, eventID uuid.UUID) (int, error) {
	if _, err := s.requireEvent(ctx, userID, eventID); err != nil {
		return 0, err
	}
	return s.assocRepo.CountByEvent(ctx, eventID)
}

func (s *service) requireEvent(ctx context.Context, userID, eventID uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func dedupe(hashes []string) []string {
	seen := make(map[string]bool, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
