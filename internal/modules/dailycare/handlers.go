package dailycare

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/dto"
	"github.com/plutopets/pluto-backend/internal/principal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func careOwner(c *fiber.Ctx) (string, error) {
	_, ownerID, err := principal.OwnerFromCtx(c)
	if err != nil {
		return "", err
	}
	return ownerID.String(), nil
}

func careOwnerError(c *fiber.Ctx, err error) error {
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

func (h *Handler) UpdateChecklist(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	var req UpdateChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	checklist, err := h.service.UpdateChecklist(ownerID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update checklist",
		})
	}
	return c.JSON(checklist)
}

func (h *Handler) AddRoutine(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	var req CreateRoutineRequest
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

	item, err := h.service.AddRoutine(ownerID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add routine",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) UpdateRoutine(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	var req UpdateRoutineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.service.UpdateRoutine(ownerID, c.Params("id"), req)
	if err != nil {
		return routineError(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) ToggleRoutine(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	item, err := h.service.ToggleRoutine(ownerID, c.Params("id"))
	if err != nil {
		return routineError(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) DeleteRoutine(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	if err := h.service.DeleteRoutine(ownerID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete routine",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Routine deleted"})
}

func (h *Handler) UpsertDailyLog(c *fiber.Ctx) error {
	ownerID, err := careOwner(c)
	if err != nil {
		return careOwnerError(c, err)
	}

	var req UpsertDailyLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.service.UpsertDailyLog(ownerID, c.Params("date"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidDailyLog) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update daily log",
		})
	}
	return c.JSON(entry)
}

func routineError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrRoutineNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to update routine",
	})
}
