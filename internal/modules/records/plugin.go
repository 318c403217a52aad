package records

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type RecordsPlugin struct {
	service *Service
}

func New(service *Service) *RecordsPlugin {
	return &RecordsPlugin{service: service}
}

func (p *RecordsPlugin) ID() string { return "records" }

func (p *RecordsPlugin) Models() []interface{} { return nil }

func (p *RecordsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/records", handler.Hydrate)
	router.Get("/records/:owner", handler.Hydrate)
}
