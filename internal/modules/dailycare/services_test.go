package dailycare

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/plutopets/pluto-backend/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return NewService(st)
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestResetFirstEverInitializesWithoutReset(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2025, 4, 10, 8, 30, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	checklist, routines, err := svc.Reset("owner-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if checklist.Food || checklist.Water || checklist.Walk || checklist.Medication {
		t.Fatalf("fresh checklist must start unchecked: %+v", checklist)
	}
	if !checklist.LastReset.Equal(now) {
		t.Fatalf("lastReset should initialize to now, got %v", checklist.LastReset)
	}
	if len(routines) != 0 {
		t.Fatalf("expected no routines, got %d", len(routines))
	}
}

func TestResetSameDayIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	morning := time.Date(2025, 4, 10, 8, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return morning }

	if _, _, err := svc.Reset("owner-1"); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	if _, err := svc.UpdateChecklist("owner-1", UpdateChecklistRequest{Food: boolPtr(true), Walk: boolPtr(true)}); err != nil {
		t.Fatalf("update checklist: %v", err)
	}

	// Later the same day, at a different time of day.
	svc.now = func() time.Time {
		return time.Date(2025, 4, 10, 22, 45, 0, 0, time.Local)
	}
	checklist, _, err := svc.Reset("owner-1")
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if !checklist.Food || !checklist.Walk {
		t.Fatalf("same-day reset must not clear flags: %+v", checklist)
	}
}

func TestResetOnDayRolloverClearsBothCollections(t *testing.T) {
	svc := newTestService(t)
	yesterday := time.Date(2025, 4, 9, 23, 50, 0, 0, time.Local)
	svc.now = func() time.Time { return yesterday }

	if _, _, err := svc.Reset("owner-1"); err != nil {
		t.Fatalf("seed reset: %v", err)
	}
	if _, err := svc.UpdateChecklist("owner-1", UpdateChecklistRequest{
		Food: boolPtr(true), Water: boolPtr(true), Walk: boolPtr(true), Medication: boolPtr(true),
	}); err != nil {
		t.Fatalf("update checklist: %v", err)
	}
	routine, err := svc.AddRoutine("owner-1", CreateRoutineRequest{Title: "Morning walk", Category: store.RoutineCategoryExercise})
	if err != nil {
		t.Fatalf("add routine: %v", err)
	}
	if _, err := svc.ToggleRoutine("owner-1", routine.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	today := time.Date(2025, 4, 10, 0, 5, 0, 0, time.Local)
	svc.now = func() time.Time { return today }

	checklist, routines, err := svc.Reset("owner-1")
	if err != nil {
		t.Fatalf("rollover reset: %v", err)
	}
	if checklist.Food || checklist.Water || checklist.Walk || checklist.Medication {
		t.Fatalf("checklist flags should reset: %+v", checklist)
	}
	if dateOnly(checklist.LastReset) != "2025-04-10" {
		t.Fatalf("lastReset should advance to today, got %v", checklist.LastReset)
	}
	if len(routines) != 1 || routines[0].Completed {
		t.Fatalf("routine completion should reset: %+v", routines)
	}
}

func TestToggleRoutine(t *testing.T) {
	svc := newTestService(t)

	routine, err := svc.AddRoutine("owner-1", CreateRoutineRequest{Title: "Feed"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if routine.Category != store.RoutineCategoryOther {
		t.Fatalf("empty category should default, got %q", routine.Category)
	}

	toggled, err := svc.ToggleRoutine("owner-1", routine.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("first toggle should complete the routine")
	}

	toggled, err = svc.ToggleRoutine("owner-1", routine.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if toggled.Completed {
		t.Fatal("second toggle should uncomplete the routine")
	}

	if _, err := svc.ToggleRoutine("owner-1", "missing"); !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("expected ErrRoutineNotFound, got %v", err)
	}
}

func TestDeleteRoutineMissingIsNoOp(t *testing.T) {
	svc := newTestService(t)

	if err := svc.DeleteRoutine("owner-1", "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestUpsertDailyLogValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.UpsertDailyLog("owner-1", "not-a-date", UpsertDailyLogRequest{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := svc.UpsertDailyLog("owner-1", "2025-04-10", UpsertDailyLogRequest{MoodRating: intPtr(6)}); !errors.Is(err, ErrInvalidDailyLog) {
		t.Fatalf("expected ErrInvalidDailyLog for mood 6, got %v", err)
	}
	if _, err := svc.UpsertDailyLog("owner-1", "2025-04-10", UpsertDailyLogRequest{ActivityMinutes: intPtr(-1)}); !errors.Is(err, ErrInvalidDailyLog) {
		t.Fatalf("expected ErrInvalidDailyLog for negative minutes, got %v", err)
	}
}

func TestUpsertDailyLogMergesPartialUpdates(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.UpsertDailyLog("owner-1", "2025-04-10", UpsertDailyLogRequest{ActivityMinutes: intPtr(30)}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	entry, err := svc.UpsertDailyLog("owner-1", "2025-04-10", UpsertDailyLogRequest{MoodRating: intPtr(4)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if entry.ActivityMinutes != 30 || entry.MoodRating != 4 {
		t.Fatalf("partial update should merge, got %+v", entry)
	}

	logs, err := svc.GetDailyLogs("owner-1")
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if logs["2025-04-10"].ActivityMinutes != 30 {
		t.Fatalf("stored log mismatch: %+v", logs)
	}
}
