package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"imalink-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	// UpdateParent changes the parent only if it still equals oldParent.
	// Returns false when no row matched, i.e. the event was moved or
	// deleted concurrently.
	UpdateParent(ctx context.Context, userID, id uuid.UUID, oldParent, newParent *uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.Event, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)
	// PromoteChildren re-parents every direct child of parentID to newParent.
	PromoteChildren(ctx context.Context, userID, parentID uuid.UUID, newParent *uuid.UUID) error
	WithTx(tx *sqlx.Tx) EventRepository
}

type eventRepository struct {
	db sqlx.ExtContext
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) WithTx(tx *sqlx.Tx) EventRepository {
	return &eventRepository{db: tx}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (event_id, user_id, parent_event_id, name, description, start_date, end_date, location_name, gps_latitude, gps_longitude, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.UserID, event.ParentEventID, event.Name, event.Description,
		event.StartDate, event.EndDate, event.LocationName, event.GPSLatitude, event.GPSLongitude, event.SortOrder,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT * FROM events WHERE event_id = $1 AND user_id = $2`

	err := sqlx.GetContext(ctx, r.db, &event, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $3, description = $4, start_date = $5, end_date = $6, location_name = $7, gps_latitude = $8, gps_longitude = $9, sort_order = $10, updated_at = NOW()
		WHERE event_id = $1 AND user_id = $2
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.UserID, event.Name, event.Description,
		event.StartDate, event.EndDate, event.LocationName, event.GPSLatitude, event.GPSLongitude, event.SortOrder,
	).Scan(&event.UpdatedAt)
}

func (r *eventRepository) UpdateParent(ctx context.Context, userID, id uuid.UUID, oldParent, newParent *uuid.UUID) (bool, error) {
	query := `
		UPDATE events
		SET parent_event_id = $4::uuid, updated_at = NOW()
		WHERE event_id = $1 AND user_id = $2 AND parent_event_id IS NOT DISTINCT FROM $3::uuid`

	res, err := r.db.ExecContext(ctx, query, id, userID, oldParent, newParent)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *eventRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM events WHERE event_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *eventRepository) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) ([]domain.Event, error) {
	query := `
		SELECT * FROM events
		WHERE user_id = $1 AND parent_event_id IS NOT DISTINCT FROM $2::uuid
		ORDER BY sort_order ASC, name ASC, event_id ASC`

	var events []domain.Event
	err := sqlx.SelectContext(ctx, r.db, &events, query, userID, parentID)
	return events, err
}

func (r *eventRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	query := `
		SELECT * FROM events
		WHERE user_id = $1
		ORDER BY sort_order ASC, name ASC, event_id ASC`

	var events []domain.Event
	err := sqlx.SelectContext(ctx, r.db, &events, query, userID)
	return events, err
}

func (r *eventRepository) PromoteChildren(ctx context.Context, userID, parentID uuid.UUID, newParent *uuid.UUID) error {
	query := `
		UPDATE events
		SET parent_event_id = $3::uuid, updated_at = NOW()
		WHERE user_id = $1 AND parent_event_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, parentID, newParent)
	return err
}
