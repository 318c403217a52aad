package journal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/dto"
	"github.com/plutopets/pluto-backend/internal/principal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func owner(c *fiber.Ctx) (uuid.UUID, error) {
	_, ownerID, err := principal.OwnerFromCtx(c)
	return ownerID, err
}

func ownerError(c *fiber.Ctx, err error) error {
	if errors.Is(err, principal.ErrUnresolvableOwner) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, principal.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	timeline, reminders, err := h.service.List(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch journal",
		})
	}
	return c.JSON(ListResponse{Timeline: timeline, Reminders: reminders})
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	var req CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title is required",
		})
	}

	entry, err := h.service.AddTimelineEntry(ownerID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add journal entry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	var req UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.service.UpdateTimelineEntry(ownerID, c.Params("id"), req)
	if err != nil {
		return journalError(c, err, "Failed to update journal entry")
	}
	return c.JSON(entry)
}

func (h *Handler) DeleteEntry(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	if err := h.service.DeleteTimelineEntry(ownerID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete journal entry",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Entry deleted"})
}

func (h *Handler) AddReminder(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	var req CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title is required",
		})
	}

	reminder, err := h.service.AddReminder(ownerID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add reminder",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (h *Handler) UpdateReminder(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	var req UpdateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reminder, err := h.service.UpdateReminder(ownerID, c.Params("id"), req)
	if err != nil {
		return journalError(c, err, "Failed to update reminder")
	}
	return c.JSON(reminder)
}

func (h *Handler) DeleteReminder(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	if err := h.service.DeleteReminder(ownerID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete reminder",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Reminder deleted"})
}

func (h *Handler) CompleteReminder(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return ownerError(c, err)
	}

	entry, next, err := h.service.CompleteReminder(ownerID, c.Params("id"))
	if err != nil {
		return journalError(c, err, "Failed to complete reminder")
	}
	return c.JSON(CompleteReminderResponse{Entry: entry, Next: next})
}

func journalError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrContainerNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, ErrVersionConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
