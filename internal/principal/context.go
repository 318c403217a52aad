package principal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/models"
)

// Principal is the authenticated identity acting on a request. Every store
// operation receives it explicitly; nothing consults ambient session state.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (p Principal) IsDoctor() bool { return p.Role == models.RoleDoctor }

// FromCtx extracts the Principal from JWT claims in Fiber context locals.
func FromCtx(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Principal{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Principal{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RolePetOwner
	}

	return Principal{UserID: id, Email: email, Role: role}, nil
}

// OwnerFromCtx resolves the :owner route param ("me" or "pet-<id>") against
// the requesting principal and checks access.
func OwnerFromCtx(c *fiber.Ctx) (Principal, uuid.UUID, error) {
	p, err := FromCtx(c)
	if err != nil {
		return Principal{}, uuid.Nil, err
	}
	ownerID, err := ResolveOwner(p, c.Params("owner"))
	if err != nil {
		return p, uuid.Nil, err
	}
	if err := Authorize(p, ownerID); err != nil {
		return p, uuid.Nil, err
	}
	return p, ownerID, nil
}
