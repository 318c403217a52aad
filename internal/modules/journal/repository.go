package journal

import (
	"errors"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/principal"
	"gorm.io/gorm"
)

var (
	ErrContainerNotFound = errors.New("journal container not found")
	ErrVersionConflict   = errors.New("journal container was modified concurrently")
)

// Repository is the versioned document access the service mutates through.
type Repository interface {
	Get(ownerID uuid.UUID) (*JournalDoc, error)
	Create(doc *JournalDoc) error
	// Update persists the arrays only when the stored version still equals
	// expectedVersion, bumping the version on success.
	Update(doc *JournalDoc, expectedVersion int64) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Get(ownerID uuid.UUID) (*JournalDoc, error) {
	var doc JournalDoc
	err := r.db.Scopes(principal.ForOwner(ownerID)).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *gormRepository) Create(doc *JournalDoc) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.Create(doc).Error
}

func (r *gormRepository) Update(doc *JournalDoc, expectedVersion int64) error {
	res := r.db.Model(&JournalDoc{}).
		Where("owner_id = ? AND version = ?", doc.OwnerID, expectedVersion).
		Updates(map[string]interface{}{
			"care_journal": doc.CareJournal,
			"planned_care": doc.PlannedCare,
			"version":      expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	doc.Version = expectedVersion + 1
	return nil
}
