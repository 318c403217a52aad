package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ownerBlob mirrors the per-pet record the browser client kept in local
// storage: one entry per owner id plus a flat doctor-note list shared across
// pets.
type ownerBlob struct {
	Documents []PetDocument       `json:"documents"`
	Checklist *DailyChecklist     `json:"checklist,omitempty"`
	Routines  []RoutineItem       `json:"routines"`
	DailyLogs map[string]DailyLog `json:"dailyLogs"`
	VisitedBy []VisitRecord       `json:"visitedBy"`
}

type fileState struct {
	Owners map[string]ownerBlob `json:"owners"`
	Notes  []DoctorNote         `json:"doctorNotes"`
}

// FileStore persists the fallback blob to a single JSON file. Single-writer
// per process; writes go through a temp file rename.
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	state    fileState
}

func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		filePath: filePath,
		state: fileState{
			Owners: make(map[string]ownerBlob),
			Notes:  make([]DoctorNote, 0),
		},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) GetDocuments(ownerID string) ([]PetDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob := s.state.Owners[ownerID]
	out := make([]PetDocument, len(blob.Documents))
	copy(out, blob.Documents)
	return out, nil
}

func (s *FileStore) SaveDocuments(ownerID string, docs []PetDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := s.state.Owners[ownerID]
	blob.Documents = docs
	s.state.Owners[ownerID] = blob
	return s.persistLocked()
}

func (s *FileStore) GetChecklist(ownerID string) (DailyChecklist, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob := s.state.Owners[ownerID]
	if blob.Checklist == nil {
		return DailyChecklist{}, false, nil
	}
	return *blob.Checklist, true, nil
}

func (s *FileStore) SaveChecklist(ownerID string, c DailyChecklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := s.state.Owners[ownerID]
	blob.Checklist = &c
	s.state.Owners[ownerID] = blob
	return s.persistLocked()
}

func (s *FileStore) GetRoutines(ownerID string) ([]RoutineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob := s.state.Owners[ownerID]
	out := make([]RoutineItem, len(blob.Routines))
	copy(out, blob.Routines)
	return out, nil
}

func (s *FileStore) SaveRoutines(ownerID string, items []RoutineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := s.state.Owners[ownerID]
	blob.Routines = items
	s.state.Owners[ownerID] = blob
	return s.persistLocked()
}

func (s *FileStore) GetDailyLogs(ownerID string) (map[string]DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob := s.state.Owners[ownerID]
	out := make(map[string]DailyLog, len(blob.DailyLogs))
	for k, v := range blob.DailyLogs {
		out[k] = v
	}
	return out, nil
}

func (s *FileStore) SaveDailyLog(ownerID string, date string, entry DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := s.state.Owners[ownerID]
	if blob.DailyLogs == nil {
		blob.DailyLogs = make(map[string]DailyLog)
	}
	blob.DailyLogs[date] = entry
	s.state.Owners[ownerID] = blob
	return s.persistLocked()
}

func (s *FileStore) GetDoctorNotes(ownerID string) ([]DoctorNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DoctorNote, 0)
	for _, n := range s.state.Notes {
		if n.PetOwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *FileStore) AddDoctorNote(note DoctorNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notes = append(s.state.Notes, note)
	return s.persistLocked()
}

func (s *FileStore) DeleteDoctorNote(ownerID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Notes[:0]
	for _, n := range s.state.Notes {
		if n.PetOwnerID == ownerID && n.ID == noteID {
			continue
		}
		kept = append(kept, n)
	}
	if len(kept) == len(s.state.Notes) {
		return nil
	}
	s.state.Notes = kept
	return s.persistLocked()
}

func (s *FileStore) GetVisits(ownerID string) ([]VisitRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob := s.state.Owners[ownerID]
	out := make([]VisitRecord, len(blob.VisitedBy))
	copy(out, blob.VisitedBy)
	return out, nil
}

func (s *FileStore) AddVisit(ownerID string, v VisitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob := s.state.Owners[ownerID]
	blob.VisitedBy = append(blob.VisitedBy, v)
	s.state.Owners[ownerID] = blob
	return s.persistLocked()
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	if state.Owners == nil {
		state.Owners = make(map[string]ownerBlob)
	}
	if state.Notes == nil {
		state.Notes = make([]DoctorNote, 0)
	}
	s.state = state
	return nil
}

func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
