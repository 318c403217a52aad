package pets

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/dto"
	"github.com/plutopets/pluto-backend/internal/models"
	"github.com/plutopets/pluto-backend/internal/principal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	p, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if p.Role == models.RoleDoctor {
		profile, err := h.service.GetDoctorProfile(p.UserID)
		if err != nil {
			return profileError(c, err)
		}
		return c.JSON(profile)
	}

	profile, err := h.service.GetPetProfile(p.UserID)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	p, err := principal.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.service.UpdatePetProfile(p.UserID, req)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch doctors",
		})
	}
	return c.JSON(doctors)
}

func profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrProfileNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, ErrInvalidProfile) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to process profile",
	})
}
