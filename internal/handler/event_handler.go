package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"imalink-backend/internal/domain"
	"imalink-backend/internal/middleware"
	"imalink-backend/internal/service/association"
	"imalink-backend/internal/service/event"
	"imalink-backend/internal/service/tree"
)

type EventHandler struct {
	eventService event.Service
	treeService  tree.Service
	assocService association.Service
}

func NewEventHandler(eventService event.Service, treeService tree.Service, assocService association.Service) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		treeService:  treeService,
		assocService: assocService,
	}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var parentID *uuid.UUID
	if raw := c.Query("parent_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid parent ID")
		}
		parentID = &id
	}

	events, err := h.treeService.ListByParent(c.Context(), userID, parentID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

func (h *EventHandler) GetTree(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var rootID *uuid.UUID
	if raw := c.Query("root_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid root ID")
		}
		rootID = &id
	}

	eventTree, err := h.treeService.GetTree(c.Context(), userID, rootID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(eventTree)
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.eventService.Create(c.Context(), userID, input)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	found, err := h.eventService.GetByID(c.Context(), userID, eventID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.eventService.Update(c.Context(), userID, eventID, input)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *EventHandler) Move(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.MoveEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	moved, err := h.eventService.Move(c.Context(), userID, eventID, input.NewParentID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(moved)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), userID, eventID); err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *EventHandler) AddPhotos(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.PhotoHashesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.Hashes) == 0 {
		return middleware.BadRequest("At least one content hash is required")
	}

	added, err := h.assocService.AddPhotos(c.Context(), userID, eventID, input.Hashes)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.AddPhotosResult{Added: added})
}

func (h *EventHandler) RemovePhotos(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.PhotoHashesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	removed, err := h.assocService.RemovePhotos(c.Context(), userID, eventID, input.Hashes)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.RemovePhotosResult{Removed: removed})
}

func (h *EventHandler) PhotoCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	count, err := h.assocService.DirectCount(c.Context(), userID, eventID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *EventHandler) GetPhotos(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	includeDescendants := c.QueryBool("include_descendants", false)

	photos, err := h.assocService.GetPhotos(c.Context(), userID, eventID, includeDescendants)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(photos)
}
