package records

import (
	"errors"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/modules/clinical"
	"github.com/plutopets/pluto-backend/internal/modules/dailycare"
	"github.com/plutopets/pluto-backend/internal/modules/documents"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"github.com/plutopets/pluto-backend/internal/store"
)

// Service assembles the per-pet snapshot out of the domain services. It is
// the one place that runs the daily checklist reset.
type Service struct {
	pets      *pets.Service
	journal   *journal.Service
	dailycare *dailycare.Service
	documents *documents.Service
	clinical  *clinical.Service
}

func NewService(p *pets.Service, j *journal.Service, d *dailycare.Service, doc *documents.Service, cl *clinical.Service) *Service {
	return &Service{pets: p, journal: j, dailycare: d, documents: doc, clinical: cl}
}

// Hydrate returns the full record set for ownerID. withProfile controls
// whether the pet profile is embedded (set on the doctor path, where the
// caller has no local copy).
func (s *Service) Hydrate(ownerID uuid.UUID, withProfile bool) (*Snapshot, error) {
	owner := ownerID.String()

	timeline, reminders, err := s.journal.List(ownerID)
	if err != nil {
		return nil, err
	}

	checklist, routines, err := s.dailycare.Reset(owner)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.List(owner)
	if err != nil {
		return nil, err
	}

	logs, err := s.dailycare.GetDailyLogs(owner)
	if err != nil {
		return nil, err
	}

	notes, err := s.clinical.ListNotes(owner)
	if err != nil {
		return nil, err
	}

	network, lastVisit, err := s.clinical.ConsultedNetwork(owner)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		CareJournal: timeline,
		PlannedCare: reminders,
		Checklist:   checklist,
		Routines:    routines,
		Documents:   docs,
		DailyLogs:   logs,
		DoctorNotes: notes,
		Network:     network,
		LastVisit:   lastVisit,
	}
	if snap.DailyLogs == nil {
		snap.DailyLogs = map[string]store.DailyLog{}
	}

	if withProfile {
		profile, err := s.pets.GetPetProfile(ownerID)
		if err != nil && !errors.Is(err, pets.ErrProfileNotFound) {
			return nil, err
		}
		snap.Profile = profile
	}
	return snap, nil
}

// RecordVisit marks the doctor's access on the patient's file.
func (s *Service) RecordVisit(ownerID uuid.UUID, doctorID uuid.UUID, fallbackName string) error {
	return s.clinical.RecordVisit(ownerID.String(), doctorID.String(), fallbackName)
}
