package journal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type JournalPlugin struct {
	service *Service
}

func New(service *Service) *JournalPlugin {
	return &JournalPlugin{service: service}
}

func (p *JournalPlugin) ID() string { return "journal" }

func (p *JournalPlugin) Models() []interface{} {
	return []interface{}{
		&JournalDoc{},
	}
}

func (p *JournalPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/journal/:owner", handler.List)
	router.Post("/journal/:owner/timeline", handler.AddEntry)
	router.Put("/journal/:owner/timeline/:id", handler.UpdateEntry)
	router.Delete("/journal/:owner/timeline/:id", handler.DeleteEntry)
	router.Post("/journal/:owner/reminders", handler.AddReminder)
	router.Put("/journal/:owner/reminders/:id", handler.UpdateReminder)
	router.Delete("/journal/:owner/reminders/:id", handler.DeleteReminder)
	router.Post("/journal/:owner/reminders/:id/complete", handler.CompleteReminder)
}
