package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrCycleDetected is returned when a move would make an event its own
	// ancestor. Reported separately from validation errors so callers can
	// show a specific message.
	ErrCycleDetected = errors.New("operation would create a cycle in the event hierarchy")

	// ErrConflict means a structural write lost a race with a concurrent
	// modification. The coordinator retries once before surfacing it.
	ErrConflict = errors.New("event was modified concurrently")

	// ErrStorageCorrupted means a hierarchy walk revisited an event id,
	// i.e. the stored parent relation is no longer a forest.
	ErrStorageCorrupted = errors.New("event hierarchy is corrupted")
)

// ValidationError reports a single field constraint violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
