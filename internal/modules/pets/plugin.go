package pets

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type PetsPlugin struct {
	service *Service
}

func New(service *Service) *PetsPlugin {
	return &PetsPlugin{service: service}
}

func (p *PetsPlugin) ID() string { return "pets" }

func (p *PetsPlugin) Models() []interface{} {
	return []interface{}{
		&PetProfile{},
		&DoctorProfile{},
	}
}

func (p *PetsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/profile", handler.GetProfile)
	router.Patch("/profile", handler.UpdateProfile)
	router.Get("/doctors", handler.ListDoctors)
}
