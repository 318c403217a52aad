package documents

import (
	"github.com/gofiber/fiber/v2"
	"github.com/plutopets/pluto-backend/internal/config"
	"gorm.io/gorm"
)

type DocumentsPlugin struct {
	service *Service
}

func New(service *Service) *DocumentsPlugin {
	return &DocumentsPlugin{service: service}
}

func (p *DocumentsPlugin) ID() string { return "documents" }

func (p *DocumentsPlugin) Models() []interface{} { return nil }

func (p *DocumentsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/documents/upload-signature", handler.UploadSignature)
	router.Get("/documents/:owner", handler.List)
	router.Post("/documents/:owner", handler.Add)
	router.Put("/documents/:owner/:id", handler.Rename)
	router.Delete("/documents/:owner/:id", handler.Delete)
}
