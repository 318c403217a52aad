package clinical

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

func clinicalOwner(c *fiber.Ctx) (principal.Principal, string, error) {
	p, ownerID, err := principal.OwnerFromCtx(c)
	if err != nil {
		return principal.Principal{}, "", err
	}
	return p, ownerID.String(), nil
}

func clinicalOwnerError(c *fiber.Ctx, err error) error {
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

func (h *Handler) ListNotes(c *fiber.Ctx) error {
	_, ownerID, err := clinicalOwner(c)
	if err != nil {
		return clinicalOwnerError(c, err)
	}

	notes, err := h.service.ListNotes(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch notes",
		})
	}
	return c.JSON(NotesResponse{Notes: notes})
}

// AddNote is doctor-only; the route is behind the doctor role middleware.
func (h *Handler) AddNote(c *fiber.Ctx) error {
	p, ownerID, err := clinicalOwner(c)
	if err != nil {
		return clinicalOwnerError(c, err)
	}

	var req CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	note, err := h.service.AddNote(ownerID, p.UserID.String(), p.Email, req.Content)
	if err != nil {
		if errors.Is(err, ErrEmptyNote) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add note",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *Handler) DeleteNote(c *fiber.Ctx) error {
	_, ownerID, err := clinicalOwner(c)
	if err != nil {
		return clinicalOwnerError(c, err)
	}

	if err := h.service.DeleteNote(ownerID, c.Params("id")); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete note",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Note deleted"})
}

func (h *Handler) Network(c *fiber.Ctx) error {
	_, ownerID, err := clinicalOwner(c)
	if err != nil {
		return clinicalOwnerError(c, err)
	}

	doctors, last, err := h.service.ConsultedNetwork(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch consulted doctors",
		})
	}
	return c.JSON(NetworkResponse{Doctors: doctors, LastVisit: last})
}
