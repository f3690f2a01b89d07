package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	db *sqlx.DB

	User        UserRepository
	Session     SessionRepository
	Event       EventRepository
	Association AssociationRepository
	Photo       PhotoRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Event:       NewEventRepository(db),
		Association: NewAssociationRepository(db),
		Photo:       NewPhotoRepository(db),
	}
}

// InUserTx runs fn against transaction-bound copies of the event and
// association repositories while holding the per-user advisory lock.
// Structural writes (create, move, delete) go through here so two
// concurrent moves cannot both pass the cycle check and jointly commit
// a cycle. The lock is released on commit or rollback.
func (r *Repositories) InUserTx(ctx context.Context, userID uuid.UUID, fn func(*Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID.String()); err != nil {
		return err
	}

	txRepos := &Repositories{
		db:          r.db,
		User:        r.User,
		Session:     r.Session,
		Event:       r.Event.WithTx(tx),
		Association: r.Association.WithTx(tx),
		Photo:       r.Photo,
	}

	if err := fn(txRepos); err != nil {
		return err
	}
	return tx.Commit()
}
