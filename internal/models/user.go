package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RolePetOwner = "pet_owner"
	RoleDoctor   = "doctor"
)

// User is the authentication identity. The role-specific profile lives in a
// separate row (pets.PetProfile or pets.DoctorProfile) keyed by UserID.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	Role          string         `gorm:"size:20;default:'pet_owner'" json:"role"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
