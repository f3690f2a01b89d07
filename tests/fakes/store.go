// Package fakes provides map-backed repository implementations with the
// same observable semantics as the SQL layer: idempotent association
// inserts that report only new rows, a NULL-safe compare-and-set on the
// parent pointer, and de-duplicated hash listings. They let service
// flows run end to end without a database.
package fakes

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
)

type EventStore struct {
	events map[uuid.UUID]domain.Event

	// BeforeUpdateParent, when set, runs once at the start of the next
	// UpdateParent call and is then cleared. Used to interleave a
	// concurrent modification between a read and its compare-and-set.
	BeforeUpdateParent func()
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[uuid.UUID]domain.Event)}
}

func (s *EventStore) Create(ctx context.Context, event *domain.Event) error {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	event, ok := s.events[id]
	if !ok || event.UserID != userID {
		return nil, nil
	}
	out := event
	return &out, nil
}

func (s *EventStore) Update(ctx context.Context, event *domain.Event) error {
	stored, ok := s.events[event.ID]
	if !ok || stored.UserID != event.UserID {
		return nil
	}
	parent := stored.ParentEventID
	updated := *event
	updated.ParentEventID = parent
	updated.UpdatedAt = time.Now()
	s.events[event.ID] = updated
	return nil
}

func (s *EventStore) UpdateParent(ctx context.Context, userID, id uuid.UUID, oldParent, newParent *uuid.UUID) (bool, error) {
	if s.BeforeUpdateParent != nil {
		hook := s.BeforeUpdateParent
		s.BeforeUpdateParent = nil
		hook()
	}

	event, ok := s.events[id]
	if !ok || event.UserID != userID || !sameParent(event.ParentEventID, oldParent) {
		return false, nil
	}
	event.ParentEventID = copyID(newParent)
	event.UpdatedAt = time.Now()
	s.events[id] = event
	return true, nil
}

func (s *EventStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if event, ok := s.events[id]; ok && event.UserID == userID {
		delete(s.events, id)
	}
	return nil
}

func (s *EventStore) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.Event, error) {
	out := []domain.Event{}
	for _, event := range s.events {
		if event.UserID == userID && sameParent(event.ParentEventID, parentID) {
			out = append(out, event)
		}
	}
	sortEvents(out)
	return out, nil
}

func (s *EventStore) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	out := []domain.Event{}
	for _, event := range s.events {
		if event.UserID == userID {
			out = append(out, event)
		}
	}
	sortEvents(out)
	return out, nil
}

func (s *EventStore) PromoteChildren(ctx context.Context, userID, parentID uuid.UUID, newParent *uuid.UUID) error {
	for id, event := range s.events {
		if event.UserID == userID && event.ParentEventID != nil && *event.ParentEventID == parentID {
			event.ParentEventID = copyID(newParent)
			event.UpdatedAt = time.Now()
			s.events[id] = event
		}
	}
	return nil
}

func (s *EventStore) WithTx(tx *sqlx.Tx) repository.EventRepository {
	return s
}

// Owner reports which user an event belongs to; used by the association
// store to scope hash-wide deletes.
func (s *EventStore) Owner(id uuid.UUID) (uuid.UUID, bool) {
	event, ok := s.events[id]
	return event.UserID, ok
}

type AssociationStore struct {
	links  map[uuid.UUID]map[string]bool
	events *EventStore
}

func NewAssociationStore(events *EventStore) *AssociationStore {
	return &AssociationStore{
		links:  make(map[uuid.UUID]map[string]bool),
		events: events,
	}
}

func (s *AssociationStore) Add(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	set, ok := s.links[eventID]
	if !ok {
		set = make(map[string]bool)
		s.links[eventID] = set
	}
	added := 0
	for _, h := range hashes {
		if !set[h] {
			set[h] = true
			added++
		}
	}
	return added, nil
}

func (s *AssociationStore) Remove(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	set := s.links[eventID]
	removed := 0
	for _, h := range hashes {
		if set[h] {
			delete(set, h)
			removed++
		}
	}
	return removed, nil
}

func (s *AssociationStore) ListHashes(ctx context.Context, eventIDs []uuid.UUID) ([]string, error) {
	seen := make(map[string]bool)
	for _, id := range eventIDs {
		for h := range s.links[id] {
			seen[h] = true
		}
	}
	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out, nil
}

func (s *AssociationStore) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	return len(s.links[eventID]), nil
}

func (s *AssociationStore) CountByEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(eventIDs))
	for _, id := range eventIDs {
		if n := len(s.links[id]); n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (s *AssociationStore) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	delete(s.links, eventID)
	return nil
}

func (s *AssociationStore) DeleteByHash(ctx context.Context, userID uuid.UUID, hash string) error {
	for eventID, set := range s.links {
		if owner, ok := s.events.Owner(eventID); ok && owner == userID {
			delete(set, hash)
		}
	}
	return nil
}

func (s *AssociationStore) WithTx(tx *sqlx.Tx) repository.AssociationRepository {
	return s
}

type PhotoStore struct {
	photos map[uuid.UUID]map[string]domain.Photo
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[uuid.UUID]map[string]domain.Photo)}
}

func (s *PhotoStore) Create(ctx context.Context, photo *domain.Photo) error {
	set, ok := s.photos[photo.UserID]
	if !ok {
		set = make(map[string]domain.Photo)
		s.photos[photo.UserID] = set
	}
	photo.CreatedAt = time.Now()
	set[photo.ContentHash] = *photo
	return nil
}

func (s *PhotoStore) GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error) {
	photo, ok := s.photos[userID][hash]
	if !ok {
		return nil, nil
	}
	out := photo
	return &out, nil
}

func (s *PhotoStore) GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error) {
	out := []domain.Photo{}
	for _, h := range hashes {
		if photo, ok := s.photos[userID][h]; ok {
			out = append(out, photo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentHash < out[j].ContentHash })
	return out, nil
}

func (s *PhotoStore) FilterExisting(ctx context.Context, userID uuid.UUID, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		if _, ok := s.photos[userID][h]; ok {
			existing[h] = true
		}
	}
	return existing, nil
}

func (s *PhotoStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	out := []domain.Photo{}
	for _, photo := range s.photos[userID] {
		out = append(out, photo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentHash < out[j].ContentHash })
	return out, nil
}

func (s *PhotoStore) Delete(ctx context.Context, userID uuid.UUID, hash string) error {
	delete(s.photos[userID], hash)
	return nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}

func sortEvents(events []domain.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].SortOrder != events[j].SortOrder {
			return events[i].SortOrder < events[j].SortOrder
		}
		if events[i].Name != events[j].Name {
			return events[i].Name < events[j].Name
		}
		return events[i].ID.String() < events[j].ID.String()
	})
}
