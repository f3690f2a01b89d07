package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/middleware"
	"imalink-backend/internal/service"
)

type Handlers struct {
	Auth  *AuthHandler
	Event *EventHandler
	Photo *PhotoHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:  NewAuthHandler(services.Auth),
		Event: NewEventHandler(services.Event, services.Tree, services.Association),
		Photo: NewPhotoHandler(services.Photo),
	}
}

// mapDomainError turns service-level errors into HTTP responses. Cycle
// attempts come back as a dedicated code so clients can tell them apart
// from plain validation failures.
func mapDomainError(err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return middleware.NotFound("Event not found")
	case errors.Is(err, domain.ErrPhotoNotFound):
		return middleware.NotFound("Photo not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return middleware.NotFound("User not found")
	case errors.Is(err, domain.ErrCycleDetected):
		return &middleware.APIError{
			Status:  fiber.StatusUnprocessableEntity,
			Code:    "CYCLE_DETECTED",
			Message: "Moving the event here would create a cycle",
		}
	case errors.Is(err, domain.ErrConflict):
		return middleware.Conflict("Event was modified concurrently, please retry")
	case errors.As(err, &validationErr):
		return middleware.UnprocessableEntity(validationErr.Error())
	default:
		return err
	}
}
