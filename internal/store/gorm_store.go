package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FallbackBlob is the Postgres shape of the fallback store: one jsonb blob
// row per owner, matching the file backend's ownerBlob.
type FallbackBlob struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   string         `gorm:"size:64;not null;uniqueIndex"`
	Documents datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Checklist datatypes.JSON `gorm:"type:jsonb"`
	Routines  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	DailyLogs datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	VisitedBy datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DoctorNoteRow struct {
	ID         string    `gorm:"size:64;primaryKey"`
	PetOwnerID string    `gorm:"size:64;not null;index"`
	DoctorID   string    `gorm:"size:64;not null"`
	DoctorName string    `gorm:"size:255"`
	Date       time.Time `gorm:"not null"`
	Content    string    `gorm:"type:text"`
	CreatedAt  time.Time
}

// GormStore keeps the fallback sub-resources in Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Models returns the GORM models for AutoMigrate.
func (s *GormStore) Models() []interface{} {
	return []interface{}{&FallbackBlob{}, &DoctorNoteRow{}}
}

func (s *GormStore) blob(ownerID string) (*FallbackBlob, error) {
	var blob FallbackBlob
	err := s.db.Where("owner_id = ?", ownerID).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FallbackBlob{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &blob, nil
}

func (s *GormStore) saveBlob(blob *FallbackBlob) error {
	if blob.ID == uuid.Nil {
		blob.ID = uuid.New()
		return s.db.Create(blob).Error
	}
	return s.db.Save(blob).Error
}

func decodeJSON[T any](raw datatypes.JSON, out *T) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func encodeJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func (s *GormStore) GetDocuments(ownerID string) ([]PetDocument, error) {
	blob, err := s.blob(ownerID)
	if err != nil {
		return nil, err
	}
	docs := make([]PetDocument, 0)
	if err := decodeJSON(blob.Documents, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GormStore) SaveDocuments(ownerID string, docs []PetDocument) error {
	blob, err := s.blob(ownerID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(docs)
	if err != nil {
		return err
	}
	blob.Documents = raw
	return s.saveBlob(blob)
}

func (s *GormStore) GetChecklist(ownerID string) (DailyChecklist, bool, error) {
	blob, err := s.blob(ownerID)
	if err != nil {
		return DailyChecklist{}, false, err
	}
	if len(blob.Checklist) == 0 {
		return DailyChecklist{}, false, nil
	}
	var c DailyChecklist
	if err := decodeJSON(blob.Checklist, &c); err != nil {
		return DailyChecklist{}, false, err
	}
	return c, true, nil
}

func (s *GormStore) SaveChecklist(ownerID string, c DailyChecklist) error {
	blob, err := s.blob(ownerID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(c)
	if err != nil {
		return err
	}
	blob.Checklist = raw
	return s.saveBlob(blob)
}

func (s *GormStore) GetRoutines(ownerID string) ([]RoutineItem, error) {
	blob, err := s.blob(ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]RoutineItem, 0)
	if err := decodeJSON(blob.Routines, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) SaveRoutines(ownerID string, items []RoutineItem) error {
	blob, err := s.blob(ownerID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(items)
	if err != nil {
		return err
	}
	blob.Routines = raw
	return s.saveBlob(blob)
}

func (s *GormStore) GetDailyLogs(ownerID string) (map[string]DailyLog, error) {
	blob, err := s.blob(ownerID)
	if err != nil {
		return nil, err
	}
	logs := make(map[string]DailyLog)
	if err := decodeJSON(blob.DailyLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormStore) SaveDailyLog(ownerID string, date string, entry DailyLog) error {
	logs, err := s.GetDailyLogs(ownerID)
	if err != nil {
		return err
	}
	logs[date] = entry
	blob, err := s.blob(ownerID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(logs)
	if err != nil {
		return err
	}
	blob.DailyLogs = raw
	return s.saveBlob(blob)
}

func (s *GormStore) GetDoctorNotes(ownerID string) ([]DoctorNote, error) {
	var rows []DoctorNoteRow
	if err := s.db.Where("pet_owner_id = ?", ownerID).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	notes := make([]DoctorNote, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, DoctorNote{
			ID:         r.ID,
			DoctorID:   r.DoctorID,
			DoctorName: r.DoctorName,
			PetOwnerID: r.PetOwnerID,
			Date:       r.Date,
			Content:    r.Content,
		})
	}
	return notes, nil
}

func (s *GormStore) AddDoctorNote(note DoctorNote) error {
	row := DoctorNoteRow{
		ID:         note.ID,
		PetOwnerID: note.PetOwnerID,
		DoctorID:   note.DoctorID,
		DoctorName: note.DoctorName,
		Date:       note.Date,
		Content:    note.Content,
	}
	return s.db.Create(&row).Error
}

func (s *GormStore) DeleteDoctorNote(ownerID, noteID string) error {
	return s.db.Where("pet_owner_id = ? AND id = ?", ownerID, noteID).Delete(&DoctorNoteRow{}).Error
}

func (s *GormStore) GetVisits(ownerID string) ([]VisitRecord, error) {
	blob, err := s.blob(ownerID)
	if err != nil {
		return nil, err
	}
	visits := make([]VisitRecord, 0)
	if err := decodeJSON(blob.VisitedBy, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (s *GormStore) AddVisit(ownerID string, v VisitRecord) error {
	visits, err := s.GetVisits(ownerID)
	if err != nil {
		return err
	}
	visits = append(visits, v)
	blob, err := s.blob(ownerID)
	if err != nil {
		return err
	}
	raw, err := encodeJSON(visits)
	if err != nil {
		return err
	}
	blob.VisitedBy = raw
	return s.saveBlob(blob)
}
