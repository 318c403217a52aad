package clinical

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/plutopets/pluto-backend/internal/store"
)

func newTestService(t *testing.T, names NameResolver) *Service {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return NewService(st, names)
}

func TestAddNoteResolvesDoctorName(t *testing.T) {
	svc := newTestService(t, func(doctorID string) string {
		if doctorID == "doc-1" {
			return "Dr. Aylin Kaya"
		}
		return ""
	})

	note, err := svc.AddNote("owner-1", "doc-1", "fallback@clinic.example", "  Mild ear infection, drops prescribed.  ")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if note.DoctorName != "Dr. Aylin Kaya" {
		t.Fatalf("expected resolved name, got %q", note.DoctorName)
	}
	if note.Content != "Mild ear infection, drops prescribed." {
		t.Fatalf("content should be trimmed, got %q", note.Content)
	}

	// Unknown doctor keeps the fallback.
	note, err = svc.AddNote("owner-1", "doc-9", "fallback@clinic.example", "ok")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if note.DoctorName != "fallback@clinic.example" {
		t.Fatalf("expected fallback name, got %q", note.DoctorName)
	}
}

func TestAddNoteRejectsEmptyContent(t *testing.T) {
	svc := newTestService(t, nil)

	if _, err := svc.AddNote("owner-1", "doc-1", "x", "   "); !errors.Is(err, ErrEmptyNote) {
		t.Fatalf("expected ErrEmptyNote, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	svc := newTestService(t, nil)

	note, err := svc.AddNote("owner-1", "doc-1", "x", "note")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteNote("owner-1", "missing"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if err := svc.DeleteNote("owner-1", note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notes, _ := svc.ListNotes("owner-1")
	if len(notes) != 0 {
		t.Fatalf("note should be gone: %+v", notes)
	}
}

func TestConsultedNetworkDistinctDoctors(t *testing.T) {
	svc := newTestService(t, nil)
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	visits := []struct {
		doctor string
		at     time.Time
	}{
		{"doc-1", base},
		{"doc-2", base.Add(24 * time.Hour)},
		{"doc-1", base.Add(48 * time.Hour)},
	}
	for _, v := range visits {
		svc.now = func() time.Time { return v.at }
		if err := svc.RecordVisit("owner-1", v.doctor, v.doctor+"@clinic"); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}

	doctors, last, err := svc.ConsultedNetwork("owner-1")
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("expected 2 distinct doctors, got %+v", doctors)
	}
	// Most recent first, with doc-1's latest visit kept.
	if doctors[0].DoctorID != "doc-1" || !doctors[0].LastVisit.Equal(base.Add(48*time.Hour)) {
		t.Fatalf("unexpected ordering: %+v", doctors)
	}
	if last == nil || !last.Equal(base.Add(48*time.Hour)) {
		t.Fatalf("last visit mismatch: %v", last)
	}
}

func TestConsultedNetworkEmpty(t *testing.T) {
	svc := newTestService(t, nil)

	doctors, last, err := svc.ConsultedNetwork("owner-1")
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if len(doctors) != 0 || last != nil {
		t.Fatalf("fresh owner should have empty network: %+v %v", doctors, last)
	}
}
