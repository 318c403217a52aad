package clinical

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/store"
)

var (
	ErrEmptyNote    = errors.New("note content is empty")
	ErrNoteNotFound = errors.New("doctor note not found")
)

// NameResolver maps a doctor's user id to a display name. Returning "" falls
// back to the provided default.
type NameResolver func(doctorID string) string

type Service struct {
	store store.Store
	names NameResolver
	now   func() time.Time
}

func NewService(st store.Store, names NameResolver) *Service {
	if names == nil {
		names = func(string) string { return "" }
	}
	return &Service{store: st, names: names, now: time.Now}
}

func (s *Service) doctorName(doctorID, fallback string) string {
	if name := s.names(doctorID); name != "" {
		return name
	}
	return fallback
}

func (s *Service) ListNotes(ownerID string) ([]store.DoctorNote, error) {
	notes, err := s.store.GetDoctorNotes(ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []store.DoctorNote{}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Date.After(notes[j].Date)
	})
	return notes, nil
}

// AddNote records a clinical note against the pet owner. The caller is the
// authoring doctor; role enforcement happens at the route layer.
func (s *Service) AddNote(ownerID, doctorID, fallbackName, content string) (*store.DoctorNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}
	note := store.DoctorNote{
		ID:         uuid.NewString(),
		DoctorID:   doctorID,
		DoctorName: s.doctorName(doctorID, fallbackName),
		PetOwnerID: ownerID,
		Date:       s.now(),
		Content:    content,
	}
	if err := s.store.AddDoctorNote(note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) DeleteNote(ownerID, noteID string) error {
	notes, err := s.store.GetDoctorNotes(ownerID)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if n.ID == noteID {
			return s.store.DeleteDoctorNote(ownerID, noteID)
		}
	}
	return ErrNoteNotFound
}

// RecordVisit appends a visit marker for the doctor opening this pet's file.
func (s *Service) RecordVisit(ownerID, doctorID, fallbackName string) error {
	return s.store.AddVisit(ownerID, store.VisitRecord{
		DoctorID:   doctorID,
		DoctorName: s.doctorName(doctorID, fallbackName),
		At:         s.now(),
	})
}

// ConsultedNetwork reduces the raw visit log to one entry per doctor, keeping
// the most recent visit time, plus the overall last visit.
func (s *Service) ConsultedNetwork(ownerID string) ([]ConsultedDoctor, *time.Time, error) {
	visits, err := s.store.GetVisits(ownerID)
	if err != nil {
		return nil, nil, err
	}

	byDoctor := make(map[string]ConsultedDoctor)
	var last *time.Time
	for _, v := range visits {
		if cur, ok := byDoctor[v.DoctorID]; !ok || v.At.After(cur.LastVisit) {
			byDoctor[v.DoctorID] = ConsultedDoctor{
				DoctorID:   v.DoctorID,
				DoctorName: v.DoctorName,
				LastVisit:  v.At,
			}
		}
		if last == nil || v.At.After(*last) {
			at := v.At
			last = &at
		}
	}

	doctors := make([]ConsultedDoctor, 0, len(byDoctor))
	for _, d := range byDoctor {
		doctors = append(doctors, d)
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].LastVisit.After(doctors[j].LastVisit)
	})
	return doctors, last, nil
}
