package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/dto"
	"github.com/plutopets/pluto-backend/internal/models"
	"github.com/plutopets/pluto-backend/internal/principal"
)

// DoctorRequired gates a route on the doctor role from the access token.
func DoctorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal.FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if p.Role != models.RoleDoctor {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Doctor access required",
			})
		}
		return c.Next()
	}
}
