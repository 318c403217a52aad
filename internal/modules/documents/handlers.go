package documents

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

func docOwner(c *fiber.Ctx) (string, error) {
	_, ownerID, err := principal.OwnerFromCtx(c)
	if err != nil {
		return "", err
	}
	return ownerID.String(), nil
}

func docOwnerError(c *fiber.Ctx, err error) error {
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
	ownerID, err := docOwner(c)
	if err != nil {
		return docOwnerError(c, err)
	}

	docs, err := h.service.List(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch documents",
		})
	}
	return c.JSON(docs)
}

func (h *Handler) Add(c *fiber.Ctx) error {
	ownerID, err := docOwner(c)
	if err != nil {
		return docOwnerError(c, err)
	}

	var req CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" || req.FileURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name and fileUrl are required",
		})
	}

	doc, err := h.service.Add(ownerID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add document",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *Handler) Rename(c *fiber.Ctx) error {
	ownerID, err := docOwner(c)
	if err != nil {
		return docOwnerError(c, err)
	}

	var req RenameDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name is required",
		})
	}

	doc, err := h.service.Rename(ownerID, c.Params("id"), req.Name)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to rename document",
		})
	}
	return c.JSON(doc)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	ownerID, err := docOwner(c)
	if err != nil {
		return docOwnerError(c, err)
	}

	if err := h.service.Delete(c.Context(), ownerID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Document deleted"})
}

func (h *Handler) UploadSignature(c *fiber.Ctx) error {
	if _, err := principal.FromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(h.service.NewUploadSignature())
}
