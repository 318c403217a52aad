package assistant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type AssistantPlugin struct {
	service *Service
}

func New(service *Service) *AssistantPlugin {
	return &AssistantPlugin{service: service}
}

func (p *AssistantPlugin) ID() string { return "assistant" }

func (p *AssistantPlugin) Models() []interface{} { return nil }

func (p *AssistantPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Post("/assistant/:owner/ask", handler.Ask)
}
