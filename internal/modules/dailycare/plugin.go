package dailycare

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type DailyCarePlugin struct {
	service *Service
}

func New(service *Service) *DailyCarePlugin {
	return &DailyCarePlugin{service: service}
}

func (p *DailyCarePlugin) ID() string { return "dailycare" }

// Models returns nil; daily-care records live in the fallback store, whose
// backend models are migrated by the store factory.
func (p *DailyCarePlugin) Models() []interface{} { return nil }

func (p *DailyCarePlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Put("/care/:owner/checklist", handler.UpdateChecklist)
	router.Post("/care/:owner/routines", handler.AddRoutine)
	router.Put("/care/:owner/routines/:id", handler.UpdateRoutine)
	router.Post("/care/:owner/routines/:id/toggle", handler.ToggleRoutine)
	router.Delete("/care/:owner/routines/:id", handler.DeleteRoutine)
	router.Put("/care/:owner/logs/:date", handler.UpsertDailyLog)
}
