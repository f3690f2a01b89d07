package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a catalog entry addressed by the SHA-256 of its content.
// The hash is the identity: uploading the same bytes twice yields the
// same record, and events reference photos by hash only.
type Photo struct {
	ContentHash string     `json:"content_hash" db:"content_hash"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"-"`
	TakenAt     *time.Time `json:"taken_at,omitempty" db:"taken_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type PhotoHashesInput struct {
	Hashes []string `json:"hashes"`
}

type AddPhotosResult struct {
	Added int `json:"added"`
}

type RemovePhotosResult struct {
	Removed int `json:"removed"`
}
