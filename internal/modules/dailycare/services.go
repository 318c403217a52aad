package dailycare

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/store"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrInvalidDate     = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidDailyLog = errors.New("invalid daily log values")
)

const dateLayout = "2006-01-02"

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// dateOnly projects a timestamp to its local calendar date. The reset check
// compares these strings, never full timestamps, so re-running on the same
// day is a no-op regardless of time of day.
func dateOnly(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// Reset applies the daily-reset invariant on read: if the checklist's
// lastReset falls on an earlier calendar day than now, all checklist flags
// and routine completions are forced false and lastReset advances to now.
// A first-ever read initializes the default checklist without resetting
// anything, since there is nothing to compare.
func (s *Service) Reset(ownerID string) (store.DailyChecklist, []store.RoutineItem, error) {
	now := s.now()

	checklist, found, err := s.store.GetChecklist(ownerID)
	if err != nil {
		return store.DailyChecklist{}, nil, err
	}
	routines, err := s.store.GetRoutines(ownerID)
	if err != nil {
		return store.DailyChecklist{}, nil, err
	}

	if !found {
		checklist = store.DailyChecklist{LastReset: now}
		if err := s.store.SaveChecklist(ownerID, checklist); err != nil {
			return store.DailyChecklist{}, nil, err
		}
		return checklist, routines, nil
	}

	if dateOnly(checklist.LastReset) == dateOnly(now) {
		return checklist, routines, nil
	}

	checklist = store.DailyChecklist{LastReset: now}
	if err := s.store.SaveChecklist(ownerID, checklist); err != nil {
		return store.DailyChecklist{}, nil, err
	}

	changed := false
	for i := range routines {
		if routines[i].Completed {
			routines[i].Completed = false
			changed = true
		}
	}
	if changed {
		if err := s.store.SaveRoutines(ownerID, routines); err != nil {
			return store.DailyChecklist{}, nil, err
		}
	}

	return checklist, routines, nil
}

func (s *Service) UpdateChecklist(ownerID string, req UpdateChecklistRequest) (store.DailyChecklist, error) {
	checklist, found, err := s.store.GetChecklist(ownerID)
	if err != nil {
		return store.DailyChecklist{}, err
	}
	if !found {
		checklist = store.DailyChecklist{LastReset: s.now()}
	}

	if req.Food != nil {
		checklist.Food = *req.Food
	}
	if req.Water != nil {
		checklist.Water = *req.Water
	}
	if req.Walk != nil {
		checklist.Walk = *req.Walk
	}
	if req.Medication != nil {
		checklist.Medication = *req.Medication
	}

	if err := s.store.SaveChecklist(ownerID, checklist); err != nil {
		return store.DailyChecklist{}, err
	}
	return checklist, nil
}

func (s *Service) AddRoutine(ownerID string, req CreateRoutineRequest) (*store.RoutineItem, error) {
	category := req.Category
	if category == "" {
		category = store.RoutineCategoryOther
	}
	item := store.RoutineItem{
		ID:        uuid.NewString(),
		Title:     req.Title,
		TimeOfDay: req.TimeOfDay,
		Category:  category,
	}

	routines, err := s.store.GetRoutines(ownerID)
	if err != nil {
		return nil, err
	}
	routines = append(routines, item)
	if err := s.store.SaveRoutines(ownerID, routines); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateRoutine(ownerID, id string, req UpdateRoutineRequest) (*store.RoutineItem, error) {
	routines, err := s.store.GetRoutines(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		if routines[i].ID != id {
			continue
		}
		r := &routines[i]
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.TimeOfDay != nil {
			r.TimeOfDay = *req.TimeOfDay
		}
		if req.Completed != nil {
			r.Completed = *req.Completed
		}
		if req.Category != nil {
			r.Category = *req.Category
		}
		if err := s.store.SaveRoutines(ownerID, routines); err != nil {
			return nil, err
		}
		out := *r
		return &out, nil
	}
	return nil, ErrRoutineNotFound
}

func (s *Service) ToggleRoutine(ownerID, id string) (*store.RoutineItem, error) {
	routines, err := s.store.GetRoutines(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		if routines[i].ID != id {
			continue
		}
		routines[i].Completed = !routines[i].Completed
		if err := s.store.SaveRoutines(ownerID, routines); err != nil {
			return nil, err
		}
		out := routines[i]
		return &out, nil
	}
	return nil, ErrRoutineNotFound
}

// DeleteRoutine is a no-op when the routine is already gone.
func (s *Service) DeleteRoutine(ownerID, id string) error {
	routines, err := s.store.GetRoutines(ownerID)
	if err != nil {
		return err
	}
	kept := routines[:0]
	for _, r := range routines {
		if r.ID == id {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == len(routines) {
		return nil
	}
	return s.store.SaveRoutines(ownerID, kept)
}

// UpsertDailyLog merges the partial update into the entry for the given
// calendar date.
func (s *Service) UpsertDailyLog(ownerID, date string, req UpsertDailyLogRequest) (store.DailyLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return store.DailyLog{}, ErrInvalidDate
	}

	logs, err := s.store.GetDailyLogs(ownerID)
	if err != nil {
		return store.DailyLog{}, err
	}
	entry := logs[date]

	if req.ActivityMinutes != nil {
		if *req.ActivityMinutes < 0 {
			return store.DailyLog{}, ErrInvalidDailyLog
		}
		entry.ActivityMinutes = *req.ActivityMinutes
	}
	if req.MoodRating != nil {
		if *req.MoodRating < 1 || *req.MoodRating > 5 {
			return store.DailyLog{}, ErrInvalidDailyLog
		}
		entry.MoodRating = *req.MoodRating
	}
	if req.FeedingCount != nil {
		if *req.FeedingCount < 0 {
			return store.DailyLog{}, ErrInvalidDailyLog
		}
		entry.FeedingCount = *req.FeedingCount
	}

	if err := s.store.SaveDailyLog(ownerID, date, entry); err != nil {
		return store.DailyLog{}, err
	}
	return entry, nil
}

func (s *Service) GetDailyLogs(ownerID string) (map[string]store.DailyLog, error) {
	return s.store.GetDailyLogs(ownerID)
}
