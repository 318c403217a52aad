package pets

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SpeciesDog   = "dog"
	SpeciesCat   = "cat"
	SpeciesOther = "other"
)

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// PetProfile is the single pet a pet-owner account manages.
type PetProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"ownerId"`
	Name      string         `gorm:"size:100" json:"name"`
	Species   string         `gorm:"size:20;default:'dog'" json:"species"`
	Breed     string         `gorm:"size:100" json:"breed"`
	BirthDate *time.Time     `json:"birthDate,omitempty"`
	Gender    string         `gorm:"size:10;default:'unknown'" json:"gender"`
	AvatarURL string         `gorm:"type:text" json:"avatarUrl"`
	WeightKG  float64        `json:"weightKg"`
	Color     string         `gorm:"size:50" json:"color"`
	Microchip string         `gorm:"size:50" json:"microchip"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DoctorProfile is the professional profile of a veterinarian account.
type DoctorProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	OwnerID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"ownerId"`
	Name           string         `gorm:"size:100" json:"name"`
	Specialization string         `gorm:"size:100" json:"specialization"`
	Clinic         string         `gorm:"size:150" json:"clinic"`
	Phone          string         `gorm:"size:30" json:"phone"`
	ContactEmail   string         `gorm:"size:255" json:"contactEmail"`
	Bio            string         `gorm:"type:text" json:"bio"`
	CreatedAt      time.Time      `json:"-"`
	UpdatedAt      time.Time      `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type UpdateProfileRequest map[string]interface{}
