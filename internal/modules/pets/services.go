package pets

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/payload"
	"github.com/plutopets/pluto-backend/internal/principal"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile payload")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreatePetProfile builds a pet profile from the registration payload.
// Unknown keys are ignored; nil values are stripped before decoding.
func (s *Service) CreatePetProfile(ownerID uuid.UUID, attrs map[string]interface{}) (*PetProfile, error) {
	p := PetProfile{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Species: SpeciesDog,
		Gender:  GenderUnknown,
	}
	if err := applyAttrs(&p, attrs); err != nil {
		return nil, err
	}
	p.OwnerID = ownerID
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreateDoctorProfile(ownerID uuid.UUID, attrs map[string]interface{}) (*DoctorProfile, error) {
	d := DoctorProfile{
		ID:      uuid.New(),
		OwnerID: ownerID,
	}
	if err := applyAttrs(&d, attrs); err != nil {
		return nil, err
	}
	d.OwnerID = ownerID
	if err := s.db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) GetPetProfile(ownerID uuid.UUID) (*PetProfile, error) {
	var p PetProfile
	err := s.db.Scopes(principal.ForOwner(ownerID)).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetDoctorProfile(ownerID uuid.UUID) (*DoctorProfile, error) {
	var d DoctorProfile
	err := s.db.Scopes(principal.ForOwner(ownerID)).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdatePetProfile shallow-merges the partial update onto the stored profile
// and returns the merged result.
func (s *Service) UpdatePetProfile(ownerID uuid.UUID, updates map[string]interface{}) (*PetProfile, error) {
	p, err := s.GetPetProfile(ownerID)
	if err != nil {
		return nil, err
	}
	if err := applyAttrs(p, updates); err != nil {
		return nil, err
	}
	p.OwnerID = ownerID
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListDoctors() ([]DoctorProfile, error) {
	var doctors []DoctorProfile
	if err := s.db.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// applyAttrs merges a sanitized attribute map onto the target struct. Only
// keys present in the map overwrite fields, which gives the shallow-merge
// partial-update semantics.
func applyAttrs(target interface{}, attrs map[string]interface{}) error {
	if len(attrs) == 0 {
		return nil
	}
	clean, _ := payload.Sanitize(attrs).(map[string]interface{})
	b, err := json.Marshal(clean)
	if err != nil {
		return ErrInvalidProfile
	}
	if err := json.Unmarshal(b, target); err != nil {
		return ErrInvalidProfile
	}
	return nil
}
