package records

import (
	"errors"
	"log/slog"

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

// Hydrate serves GET /records and GET /records/:owner. When a doctor opens a
// patient's file the profile is embedded and the visit is logged.
func (h *Handler) Hydrate(c *fiber.Ctx) error {
	p, ownerID, err := principal.OwnerFromCtx(c)
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

	foreign := p.IsDoctor() && ownerID != p.UserID

	snap, err := h.service.Hydrate(ownerID, foreign)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load records",
		})
	}

	if foreign {
		if err := h.service.RecordVisit(ownerID, p.UserID, p.Email); err != nil {
			// The snapshot is already assembled; a failed visit marker must
			// not block the doctor's view.
			slog.Warn("record visit failed", "owner_id", ownerID, "doctor_id", p.UserID, "error", err)
		}
	}
	return c.JSON(snap)
}
