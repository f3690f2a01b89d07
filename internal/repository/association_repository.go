package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type AssociationRepository interface {
	// Add inserts the (event, hash) pairs that are not present yet and
	// returns how many rows were actually inserted.
	Add(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error)
	// Remove deletes matching pairs and returns how many existed.
	Remove(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error)
	ListHashes(ctx context.Context, eventIDs []uuid.UUID) ([]string, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	CountByEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
	// DeleteByHash removes the photo's membership rows across all of the
	// user's events, e.g. when the photo leaves the catalog.
	DeleteByHash(ctx context.Context, userID uuid.UUID, hash string) error
	WithTx(tx *sqlx.Tx) AssociationRepository
}

type associationRepository struct {
	db sqlx.ExtContext
}

func NewAssociationRepository(db *sqlx.DB) AssociationRepository {
	return &associationRepository{db: db}
}

func (r *associationRepository) WithTx(tx *sqlx.Tx) AssociationRepository {
	return &associationRepository{db: tx}
}

func (r *associationRepository) Add(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	if len(hashes) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO event_photos (event_id, content_hash)
		SELECT $1, h FROM unnest($2::text[]) AS h
		ON CONFLICT (event_id, content_hash) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, eventID, pq.Array(hashes))
	if err != nil {
		return 0, err
	}
	added, err := res.RowsAffected()
	return int(added), err
}

func (r *associationRepository) Remove(ctx context.Context, eventID uuid.UUID, hashes []string) (int, error) {
	if len(hashes) == 0 {
		return 0, nil
	}

	query := `DELETE FROM event_photos WHERE event_id = $1 AND content_hash = ANY($2::text[])`

	res, err := r.db.ExecContext(ctx, query, eventID, pq.Array(hashes))
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	return int(removed), err
}

func (r *associationRepository) ListHashes(ctx context.Context, eventIDs []uuid.UUID) ([]string, error) {
	if len(eventIDs) == 0 {
		return []string{}, nil
	}

	query := `
		SELECT DISTINCT content_hash FROM event_photos
		WHERE event_id = ANY($1::uuid[])
		ORDER BY content_hash ASC`

	var hashes []string
	err := sqlx.SelectContext(ctx, r.db, &hashes, query, pq.Array(uuidStrings(eventIDs)))
	if hashes == nil {
		hashes = []string{}
	}
	return hashes, err
}

func (r *associationRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_photos WHERE event_id = $1`
	err := sqlx.GetContext(ctx, r.db, &count, query, eventID)
	return count, err
}

func (r *associationRepository) CountByEvents(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT event_id, COUNT(*) AS photo_count FROM event_photos
		WHERE event_id = ANY($1::uuid[])
		GROUP BY event_id`

	rows := []struct {
		EventID    uuid.UUID `db:"event_id"`
		PhotoCount int       `db:"photo_count"`
	}{}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, pq.Array(uuidStrings(eventIDs))); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EventID] = row.PhotoCount
	}
	return counts, nil
}

func (r *associationRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	query := `DELETE FROM event_photos WHERE event_id = $1`
	_, err := r.db.ExecContext(ctx, query, eventID)
	return err
}

func (r *associationRepository) DeleteByHash(ctx context.Context, userID uuid.UUID, hash string) error {
	query := `
		DELETE FROM event_photos
		USING events
		WHERE event_photos.event_id = events.event_id AND events.user_id = $1 AND event_photos.content_hash = $2`
	_, err := r.db.ExecContext(ctx, query, userID, hash)
	return err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
