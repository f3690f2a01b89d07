package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"imalink-backend/internal/middleware"
	"imalink-backend/internal/service/photo"
)

type PhotoHandler struct {
	photoService photo.Service
}

func NewPhotoHandler(photoService photo.Service) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	var takenAt *time.Time
	if raw := c.FormValue("taken_at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.BadRequest("Invalid taken_at, expected RFC3339")
		}
		takenAt = &t
	}

	uploaded, err := h.photoService.Upload(c.Context(), userID, fileHeader.Filename, mimeType, file, takenAt)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	photos, err := h.photoService.List(c.Context(), userID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(photos)
}

func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	found, err := h.photoService.GetByHash(c.Context(), userID, c.Params("hash"))
	if err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.photoService.Delete(c.Context(), userID, c.Params("hash")); err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
