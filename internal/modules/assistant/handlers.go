package assistant

import (
	"errors"
	"strings"

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

func (h *Handler) Ask(c *fiber.Ctx) error {
	_, ownerID, err := principal.OwnerFromCtx(c)
	if err != nil {
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

	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "question is required",
		})
	}

	return c.JSON(h.service.Ask(ownerID, req))
}
