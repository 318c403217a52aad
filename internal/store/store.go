package store

import "time"

// Document types.
const (
	DocTypePrescription = "prescription"
	DocTypeBill         = "bill"
	DocTypeReport       = "report"
	DocTypeNote         = "note"
)

// Routine categories.
const (
	RoutineCategoryFeeding  = "feeding"
	RoutineCategoryExercise = "exercise"
	RoutineCategoryHygiene  = "hygiene"
	RoutineCategoryMedical  = "medical"
	RoutineCategoryOther    = "other"
)

type PetDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	FileURL  string `json:"fileUrl"`
	FileID   string `json:"fileId"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// DailyChecklist is a singleton per pet. All four flags are forced false the
// first time the checklist is read on a new calendar day.
type DailyChecklist struct {
	Food       bool      `json:"food"`
	Water      bool      `json:"water"`
	Walk       bool      `json:"walk"`
	Medication bool      `json:"medication"`
	LastReset  time.Time `json:"lastReset"`
}

type RoutineItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TimeOfDay string `json:"timeOfDay"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
}

// DailyLog holds one day's activity counters, keyed by ISO date.
type DailyLog struct {
	ActivityMinutes int `json:"activityMinutes"`
	MoodRating      int `json:"moodRating"`
	FeedingCount    int `json:"feedingCount"`
}

type DoctorNote struct {
	ID         string    `json:"id"`
	DoctorID   string    `json:"doctorId"`
	DoctorName string    `json:"doctorName"`
	PetOwnerID string    `json:"petOwnerId"`
	Date       time.Time `json:"date"`
	Content    string    `json:"content"`
}

// VisitRecord marks a doctor having opened a pet's file.
type VisitRecord struct {
	DoctorID   string    `json:"doctorId"`
	DoctorName string    `json:"doctorName"`
	At         time.Time `json:"at"`
}

// Store is the unified repository for sub-resources not promoted to the
// journal document: documents, checklist, routines, daily logs, doctor notes
// and the visit log. Backends are a configuration concern (see factory).
type Store interface {
	GetDocuments(ownerID string) ([]PetDocument, error)
	SaveDocuments(ownerID string, docs []PetDocument) error

	GetChecklist(ownerID string) (DailyChecklist, bool, error)
	SaveChecklist(ownerID string, c DailyChecklist) error

	GetRoutines(ownerID string) ([]RoutineItem, error)
	SaveRoutines(ownerID string, items []RoutineItem) error

	GetDailyLogs(ownerID string) (map[string]DailyLog, error)
	SaveDailyLog(ownerID string, date string, entry DailyLog) error

	GetDoctorNotes(ownerID string) ([]DoctorNote, error)
	AddDoctorNote(note DoctorNote) error
	DeleteDoctorNote(ownerID, noteID string) error

	GetVisits(ownerID string) ([]VisitRecord, error)
	AddVisit(ownerID string, v VisitRecord) error
}
