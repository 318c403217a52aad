package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T, path string) *FileStore {
	t.Helper()
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := newStore(t, path)

	docs := []PetDocument{{ID: "d1", Name: "bloodwork.pdf", Type: DocTypeReport}}
	if err := s.SaveDocuments("owner-1", docs); err != nil {
		t.Fatalf("save documents: %v", err)
	}
	if err := s.SaveChecklist("owner-1", DailyChecklist{Food: true, LastReset: time.Now()}); err != nil {
		t.Fatalf("save checklist: %v", err)
	}
	if err := s.SaveDailyLog("owner-1", "2025-04-10", DailyLog{ActivityMinutes: 45}); err != nil {
		t.Fatalf("save log: %v", err)
	}

	// Reopen from disk.
	s = newStore(t, path)

	got, err := s.GetDocuments("owner-1")
	if err != nil || len(got) != 1 || got[0].Name != "bloodwork.pdf" {
		t.Fatalf("documents did not survive reopen: %v %+v", err, got)
	}
	checklist, found, err := s.GetChecklist("owner-1")
	if err != nil || !found || !checklist.Food {
		t.Fatalf("checklist did not survive reopen: %v %v %+v", err, found, checklist)
	}
	logs, err := s.GetDailyLogs("owner-1")
	if err != nil || logs["2025-04-10"].ActivityMinutes != 45 {
		t.Fatalf("daily log did not survive reopen: %v %+v", err, logs)
	}
}

func TestFileStoreOwnerIsolation(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "store.json"))

	if err := s.SaveDocuments("owner-a", []PetDocument{{ID: "a1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveDocuments("owner-b", []PetDocument{{ID: "b1"}, {ID: "b2"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	a, _ := s.GetDocuments("owner-a")
	b, _ := s.GetDocuments("owner-b")
	if len(a) != 1 || len(b) != 2 {
		t.Fatalf("owners bleed into each other: a=%d b=%d", len(a), len(b))
	}

	if _, found, err := s.GetChecklist("owner-c"); err != nil || found {
		t.Fatalf("unknown owner should read as absent: %v %v", err, found)
	}
}

func TestFileStoreDoctorNotes(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "store.json"))

	notes := []DoctorNote{
		{ID: "n1", DoctorID: "doc-1", PetOwnerID: "owner-a", Content: "healthy"},
		{ID: "n2", DoctorID: "doc-1", PetOwnerID: "owner-b", Content: "needs followup"},
		{ID: "n3", DoctorID: "doc-2", PetOwnerID: "owner-a", Content: "vaccinated"},
	}
	for _, n := range notes {
		if err := s.AddDoctorNote(n); err != nil {
			t.Fatalf("add note: %v", err)
		}
	}

	ownerA, err := s.GetDoctorNotes("owner-a")
	if err != nil {
		t.Fatalf("get notes: %v", err)
	}
	if len(ownerA) != 2 {
		t.Fatalf("expected 2 notes for owner-a, got %d", len(ownerA))
	}

	if err := s.DeleteDoctorNote("owner-a", "n1"); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	ownerA, _ = s.GetDoctorNotes("owner-a")
	if len(ownerA) != 1 || ownerA[0].ID != "n3" {
		t.Fatalf("wrong note deleted: %+v", ownerA)
	}
	// owner-b untouched.
	if ownerB, _ := s.GetDoctorNotes("owner-b"); len(ownerB) != 1 {
		t.Fatalf("owner-b notes affected: %+v", ownerB)
	}
}

func TestFileStoreVisits(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "store.json"))

	if err := s.AddVisit("owner-a", VisitRecord{DoctorID: "doc-1", At: time.Now()}); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := s.AddVisit("owner-a", VisitRecord{DoctorID: "doc-2", At: time.Now()}); err != nil {
		t.Fatalf("add visit: %v", err)
	}

	visits, err := s.GetVisits("owner-a")
	if err != nil || len(visits) != 2 {
		t.Fatalf("visits mismatch: %v %+v", err, visits)
	}
	if other, _ := s.GetVisits("owner-b"); len(other) != 0 {
		t.Fatalf("visits leaked across owners: %+v", other)
	}
}
