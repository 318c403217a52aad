package journal

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrEntryNotFound = errors.New("journal entry not found")
)

// mutation attempts before a version conflict is surfaced to the caller.
const maxWriteAttempts = 3

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// docState is a decoded journal container.
type docState struct {
	timeline  []TimelineEntry
	reminders []Reminder
}

// EnsureContainer creates the empty journal container for a new owner.
// Existing containers are left untouched.
func (s *Service) EnsureContainer(ownerID uuid.UUID) error {
	_, err := s.repo.Get(ownerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrContainerNotFound) {
		return err
	}
	doc := &JournalDoc{OwnerID: ownerID}
	if err := encodeState(doc, &docState{}); err != nil {
		return err
	}
	return s.repo.Create(doc)
}

// List returns the timeline sorted descending by date and the reminders
// sorted ascending by date. A missing container reads as empty, not as an
// error.
func (s *Service) List(ownerID uuid.UUID) ([]TimelineEntry, []Reminder, error) {
	doc, err := s.repo.Get(ownerID)
	if errors.Is(err, ErrContainerNotFound) {
		return []TimelineEntry{}, []Reminder{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	state, err := decodeState(doc)
	if err != nil {
		return nil, nil, err
	}
	sortState(state)
	return state.timeline, state.reminders, nil
}

func (s *Service) AddTimelineEntry(ownerID uuid.UUID, req CreateEntryRequest) (*TimelineEntry, error) {
	entry := TimelineEntry{
		ID:         uuid.NewString(),
		Date:       s.defaultDate(req.Date),
		Type:       normalizeEntryType(req.Type),
		Title:      req.Title,
		Notes:      req.Notes,
		DocumentID: req.DocumentID,
	}
	err := s.mutate(ownerID, true, func(state *docState) error {
		state.timeline = append(state.timeline, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) UpdateTimelineEntry(ownerID uuid.UUID, id string, req UpdateEntryRequest) (*TimelineEntry, error) {
	var updated TimelineEntry
	err := s.mutate(ownerID, false, func(state *docState) error {
		for i := range state.timeline {
			if !matchesID(state.timeline[i].ID, state.timeline[i].LegacyID, id) {
				continue
			}
			e := &state.timeline[i]
			if req.Date != nil {
				e.Date = *req.Date
			}
			if req.Type != nil {
				e.Type = normalizeEntryType(*req.Type)
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.Notes != nil {
				e.Notes = *req.Notes
			}
			if req.DocumentID != nil {
				e.DocumentID = *req.DocumentID
			}
			updated = *e
			return nil
		}
		return ErrEntryNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTimelineEntry is a no-op when the entry or the whole container is
// absent.
func (s *Service) DeleteTimelineEntry(ownerID uuid.UUID, id string) error {
	err := s.mutate(ownerID, false, func(state *docState) error {
		kept := state.timeline[:0]
		for _, e := range state.timeline {
			if matchesID(e.ID, e.LegacyID, id) {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == len(state.timeline) {
			return errNoChange
		}
		state.timeline = kept
		return nil
	})
	if errors.Is(err, ErrContainerNotFound) || errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

func (s *Service) AddReminder(ownerID uuid.UUID, req CreateReminderRequest) (*Reminder, error) {
	reminder := Reminder{
		ID:     uuid.NewString(),
		Title:  req.Title,
		Date:   s.defaultDate(req.Date),
		Type:   normalizeEntryType(req.Type),
		Repeat: req.Repeat,
	}
	err := s.mutate(ownerID, true, func(state *docState) error {
		state.reminders = append(state.reminders, reminder)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *Service) UpdateReminder(ownerID uuid.UUID, id string, req UpdateReminderRequest) (*Reminder, error) {
	var updated Reminder
	err := s.mutate(ownerID, false, func(state *docState) error {
		for i := range state.reminders {
			if !matchesID(state.reminders[i].ID, state.reminders[i].LegacyID, id) {
				continue
			}
			r := &state.reminders[i]
			if req.Title != nil {
				r.Title = *req.Title
			}
			if req.Date != nil {
				r.Date = *req.Date
			}
			if req.Type != nil {
				r.Type = normalizeEntryType(*req.Type)
			}
			if req.Completed != nil {
				r.Completed = *req.Completed
			}
			if req.Repeat != nil {
				r.Repeat = *req.Repeat
			}
			updated = *r
			return nil
		}
		return ErrEntryNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteReminder(ownerID uuid.UUID, id string) error {
	err := s.mutate(ownerID, false, func(state *docState) error {
		kept := state.reminders[:0]
		for _, r := range state.reminders {
			if matchesID(r.ID, r.LegacyID, id) {
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == len(state.reminders) {
			return errNoChange
		}
		state.reminders = kept
		return nil
	})
	if errors.Is(err, ErrContainerNotFound) || errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

// CompleteReminder removes the reminder from the planned list and appends an
// equivalent timeline entry dated today, in one versioned write. A repeating
// reminder schedules its next occurrence under a fresh id.
func (s *Service) CompleteReminder(ownerID uuid.UUID, id string) (*TimelineEntry, *Reminder, error) {
	var entry TimelineEntry
	var next *Reminder
	err := s.mutate(ownerID, false, func(state *docState) error {
		entry = TimelineEntry{}
		next = nil
		idx := -1
		for i, r := range state.reminders {
			if matchesID(r.ID, r.LegacyID, id) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrEntryNotFound
		}
		done := state.reminders[idx]
		state.reminders = append(state.reminders[:idx], state.reminders[idx+1:]...)

		entry = TimelineEntry{
			ID:    uuid.NewString(),
			Date:  s.now().Format(DateLayout),
			Type:  normalizeEntryType(done.Type),
			Title: "Completed: " + done.Title,
		}
		state.timeline = append(state.timeline, entry)

		if succ, ok := nextOccurrence(done); ok {
			state.reminders = append(state.reminders, succ)
			next = &succ
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, next, nil
}

// errNoChange signals a mutation that left the state untouched, so no write
// is issued.
var errNoChange = errors.New("no change")

// mutate runs fn against the decoded container and writes it back with a
// version precondition, retrying on conflict. createMissing controls whether
// an absent container is initialized (additive ops) or surfaced
// (ErrContainerNotFound).
func (s *Service) mutate(ownerID uuid.UUID, createMissing bool, fn func(state *docState) error) error {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		doc, err := s.repo.Get(ownerID)
		if errors.Is(err, ErrContainerNotFound) {
			if !createMissing {
				return err
			}
			doc = &JournalDoc{OwnerID: ownerID}
			state := &docState{}
			if err := fn(state); err != nil {
				return err
			}
			if err := encodeState(doc, state); err != nil {
				return err
			}
			if err := s.repo.Create(doc); err == nil {
				return nil
			}
			// Another writer created the container first; retry as update.
			continue
		}
		if err != nil {
			return err
		}

		state, err := decodeState(doc)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		if err := encodeState(doc, state); err != nil {
			return err
		}
		err = s.repo.Update(doc, doc.Version)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		return err
	}
	return ErrVersionConflict
}

func (s *Service) defaultDate(date string) string {
	if date == "" {
		return s.now().Format(DateLayout)
	}
	return date
}

func decodeState(doc *JournalDoc) (*docState, error) {
	state := &docState{
		timeline:  make([]TimelineEntry, 0),
		reminders: make([]Reminder, 0),
	}
	if len(doc.CareJournal) > 0 {
		if err := json.Unmarshal(doc.CareJournal, &state.timeline); err != nil {
			return nil, err
		}
	}
	if len(doc.PlannedCare) > 0 {
		if err := json.Unmarshal(doc.PlannedCare, &state.reminders); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func encodeState(doc *JournalDoc, state *docState) error {
	if state.timeline == nil {
		state.timeline = make([]TimelineEntry, 0)
	}
	if state.reminders == nil {
		state.reminders = make([]Reminder, 0)
	}
	tl, err := json.Marshal(state.timeline)
	if err != nil {
		return err
	}
	rm, err := json.Marshal(state.reminders)
	if err != nil {
		return err
	}
	doc.CareJournal = datatypes.JSON(tl)
	doc.PlannedCare = datatypes.JSON(rm)
	return nil
}

func sortState(state *docState) {
	sort.SliceStable(state.timeline, func(i, j int) bool {
		return state.timeline[i].Date > state.timeline[j].Date
	})
	sort.SliceStable(state.reminders, func(i, j int) bool {
		return state.reminders[i].Date < state.reminders[j].Date
	})
}

func matchesID(id, legacyID, target string) bool {
	if target == "" {
		return false
	}
	return id == target || (legacyID != "" && legacyID == target)
}

func normalizeEntryType(t string) string {
	switch t {
	case EntryTypeVetVisit, EntryTypeVaccination, EntryTypeMedication, EntryTypeNote:
		return t
	default:
		return EntryTypeNote
	}
}

// nextOccurrence advances a repeating reminder by its cadence. Reminders
// without a cadence, or with an unparseable date, do not repeat.
func nextOccurrence(r Reminder) (Reminder, bool) {
	if r.Repeat == "" {
		return Reminder{}, false
	}
	base, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return Reminder{}, false
	}
	var next time.Time
	switch r.Repeat {
	case RepeatDaily:
		next = base.AddDate(0, 0, 1)
	case RepeatWeekly:
		next = base.AddDate(0, 0, 7)
	case RepeatMonthly:
		next = base.AddDate(0, 1, 0)
	default:
		return Reminder{}, false
	}
	return Reminder{
		ID:     uuid.NewString(),
		Title:  r.Title,
		Date:   next.Format(DateLayout),
		Type:   r.Type,
		Repeat: r.Repeat,
	}, true
}
