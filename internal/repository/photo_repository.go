package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"imalink-backend/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error)
	GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error)
	// FilterExisting returns the subset of hashes that exist for the user.
	FilterExisting(ctx context.Context, userID uuid.UUID, hashes []string) (map[string]bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error)
	Delete(ctx context.Context, userID uuid.UUID, hash string) error
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (content_hash, user_id, file_name, file_size, mime_type, storage_path, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		photo.ContentHash, photo.UserID, photo.FileName, photo.FileSize, photo.MimeType, photo.StoragePath, photo.TakenAt,
	).Scan(&photo.CreatedAt)
}

func (r *photoRepository) GetByHash(ctx context.Context, userID uuid.UUID, hash string) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT * FROM photos WHERE content_hash = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &photo, query, hash, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) GetByHashes(ctx context.Context, userID uuid.UUID, hashes []string) ([]domain.Photo, error) {
	if len(hashes) == 0 {
		return []domain.Photo{}, nil
	}

	query := `
		SELECT * FROM photos
		WHERE user_id = $1 AND content_hash = ANY($2::text[])
		ORDER BY created_at DESC, content_hash ASC`

	var photos []domain.Photo
	err := r.db.SelectContext(ctx, &photos, query, userID, pq.Array(hashes))
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, err
}

func (r *photoRepository) FilterExisting(ctx context.Context, userID uuid.UUID, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(hashes))
	if len(hashes) == 0 {
		return existing, nil
	}

	query := `SELECT content_hash FROM photos WHERE user_id = $1 AND content_hash = ANY($2::text[])`

	var found []string
	if err := r.db.SelectContext(ctx, &found, query, userID, pq.Array(hashes)); err != nil {
		return nil, err
	}

	for _, h := range found {
		existing[h] = true
	}
	return existing, nil
}

func (r *photoRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Photo, error) {
	query := `SELECT * FROM photos WHERE user_id = $1 ORDER BY created_at DESC, content_hash ASC`

	var photos []domain.Photo
	err := r.db.SelectContext(ctx, &photos, query, userID)
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, err
}

func (r *photoRepository) Delete(ctx context.Context, userID uuid.UUID, hash string) error {
	query := `DELETE FROM photos WHERE content_hash = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, hash, userID)
	return err
}
