package event

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service/hierarchy"
	"imalink-backend/internal/service/tree"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdateEventInput) (*domain.Event, error)
	Move(ctx context.Context, userID, id uuid.UUID, newParentID *uuid.UUID) (*domain.Event, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repos   *repository.Repositories
	treeSvc tree.Service
}

func NewService(repos *repository.Repositories, treeSvc tree.Service) Service {
	return &service{
		repos:   repos,
		treeSvc: treeSvc,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateEventInput) (*domain.Event, error) {
	if err := domain.ValidateEventName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEventDescription(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateGPS(input.GPSLatitude, input.GPSLongitude); err != nil {
		return nil, err
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}

	event := &domain.Event{
		ID:            uuid.New(),
		UserID:        userID,
		ParentEventID: input.ParentEventID,
		Name:          input.Name,
		Description:   input.Description,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		LocationName:  input.LocationName,
		GPSLatitude:   input.GPSLatitude,
		GPSLongitude:  input.GPSLongitude,
		SortOrder:     sortOrder,
	}

	err := s.repos.InUserTx(ctx, userID, func(tx *repository.Repositories) error {
		if input.ParentEventID != nil {
			parent, err := tx.Event.GetByID(ctx, userID, *input.ParentEventID)
			if err != nil {
				return err
			}
			if parent == nil {
				return &domain.ValidationError{Field: "parent_event_id", Message: "parent event does not exist"}
			}
		}
		return tx.Event.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.treeSvc.InvalidateCache(ctx, userID)
	return event, nil
}

func (s *service) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	event, err := s.repos.Event.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdateEventInput) (*domain.Event, error) {
	event, err := s.repos.Event.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	if input.Name != nil {
		if err := domain.ValidateEventName(*input.Name); err != nil {
			return nil, err
		}
		event.Name = *input.Name
	}
	if input.Description.Set {
		if err := domain.ValidateEventDescription(input.Description.Value); err != nil {
			return nil, err
		}
		event.Description = input.Description.Value
	}
	if input.StartDate.Set {
		event.StartDate = input.StartDate.Value
	}
	if input.EndDate.Set {
		event.EndDate = input.EndDate.Value
	}
	if input.LocationName.Set {
		event.LocationName = input.LocationName.Value
	}
	if input.GPSLatitude.Set {
		event.GPSLatitude = input.GPSLatitude.Value
	}
	if input.GPSLongitude.Set {
		event.GPSLongitude = input.GPSLongitude.Value
	}
	if err := domain.ValidateGPS(event.GPSLatitude, event.GPSLongitude); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		event.SortOrder = *input.SortOrder
	}

	if err := s.repos.Event.Update(ctx, event); err != nil {
		return nil, err
	}

	s.treeSvc.InvalidateCache(ctx, userID)
	return event, nil
}

// Move is the only path that changes an event's parent. The cycle check
// and the commit run inside one per-user transaction; a compare-and-set
// on the old parent catches writes that slipped past anyway, and such a
// conflict is retried once with a fresh read before being surfaced.
func (s *service) Move(ctx context.Context, userID, id uuid.UUID, newParentID *uuid.UUID) (*domain.Event, error) {
	event, err := s.move(ctx, userID, id, newParentID)
	if errors.Is(err, domain.ErrConflict) {
		event, err = s.move(ctx, userID, id, newParentID)
	}
	if err != nil {
		return nil, err
	}

	s.treeSvc.InvalidateCache(ctx, userID)
	return event, nil
}

func (s *service) move(ctx context.Context, userID, id uuid.UUID, newParentID *uuid.UUID) (*domain.Event, error) {
	var moved *domain.Event

	err := s.repos.InUserTx(ctx, userID, func(tx *repository.Repositories) error {
		event, err := tx.Event.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrEventNotFound
		}

		if newParentID != nil {
			parent, err := tx.Event.GetByID(ctx, userID, *newParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrEventNotFound
			}

			cycle, err := hierarchy.WouldCreateCycle(ctx, tx.Event, userID, id, newParentID)
			if err != nil {
				return err
			}
			if cycle {
				return domain.ErrCycleDetected
			}
		}

		ok, err := tx.Event.UpdateParent(ctx, userID, id, event.ParentEventID, newParentID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}

		event.ParentEventID = newParentID
		moved = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Delete removes the event after promoting its direct children one
// level, to the deleted event's own parent. Children of a root become
// roots. Association rows go with the event; photos are untouched.
func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.repos.InUserTx(ctx, userID, func(tx *repository.Repositories) error {
		event, err := tx.Event.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrEventNotFound
		}

		if err := tx.Event.PromoteChildren(ctx, userID, id, event.ParentEventID); err != nil {
			return err
		}
		if err := tx.Association.DeleteByEvent(ctx, id); err != nil {
			return err
		}
		return tx.Event.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	s.treeSvc.InvalidateCache(ctx, userID)
	return nil
}
