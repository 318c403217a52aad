package clinical

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/plutopets/pluto-backend/internal/middleware"
	"gorm.io/gorm"
)

type ClinicalPlugin struct {
	service *Service
}

func New(service *Service) *ClinicalPlugin {
	return &ClinicalPlugin{service: service}
}

func (p *ClinicalPlugin) ID() string { return "clinical" }

func (p *ClinicalPlugin) Models() []interface{} { return nil }

func (p *ClinicalPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/clinical/:owner/notes", handler.ListNotes)
	router.Post("/clinical/:owner/notes", middleware.DoctorRequired(), handler.AddNote)
	router.Delete("/clinical/:owner/notes/:id", handler.DeleteNote)
	router.Get("/clinical/:owner/network", handler.Network)
}
