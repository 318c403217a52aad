package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Timeline entry / reminder types.
const (
	EntryTypeVetVisit    = "vet_visit"
	EntryTypeVaccination = "vaccination"
	EntryTypeMedication  = "medication"
	EntryTypeNote        = "note"
)

// Reminder repeat cadences.
const (
	RepeatDaily   = "daily"
	RepeatWeekly  = "weekly"
	RepeatMonthly = "monthly"
)

// DateLayout is the date-only format journal records carry. Descending and
// ascending order invariants compare these strings directly.
const DateLayout = "2006-01-02"

// TimelineEntry is one care-journal item. Older clients wrote the id under
// "entryId"; lookups accept either field.
type TimelineEntry struct {
	ID         string `json:"id"`
	LegacyID   string `json:"entryId,omitempty"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
}

// Reminder is one planned-care item. Completion removes it from the planned
// list and appends an equivalent timeline entry.
type Reminder struct {
	ID        string `json:"id"`
	LegacyID  string `json:"entryId,omitempty"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	Repeat    string `json:"repeat,omitempty"`
}

// JournalDoc is the per-owner journal container. Writes carry a version
// precondition so concurrent writers conflict instead of silently
// overwriting each other's arrays.
type JournalDoc struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CareJournal datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	PlannedCare datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Version     int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// --- DTOs ---

type CreateEntryRequest struct {
	Date       string `json:"date"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	DocumentID string `json:"documentId"`
}

type UpdateEntryRequest struct {
	Date       *string `json:"date"`
	Type       *string `json:"type"`
	Title      *string `json:"title"`
	Notes      *string `json:"notes"`
	DocumentID *string `json:"documentId"`
}

type CreateReminderRequest struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Repeat string `json:"repeat"`
}

type UpdateReminderRequest struct {
	Title     *string `json:"title"`
	Date      *string `json:"date"`
	Type      *string `json:"type"`
	Completed *bool   `json:"completed"`
	Repeat    *string `json:"repeat"`
}

type ListResponse struct {
	Timeline  []TimelineEntry `json:"timeline"`
	Reminders []Reminder      `json:"reminders"`
}

type CompleteReminderResponse struct {
	Entry *TimelineEntry `json:"entry"`
	Next  *Reminder      `json:"next,omitempty"`
}
