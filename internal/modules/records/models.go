package records

import (
	"time"

	"github.com/plutopets/pluto-backend/internal/modules/clinical"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"github.com/plutopets/pluto-backend/internal/store"
)

// Snapshot is the full hydration payload for one pet. A fresh account yields
// empty collections, never nulls.
type Snapshot struct {
	Profile     *pets.PetProfile           `json:"profile,omitempty"`
	CareJournal []journal.TimelineEntry    `json:"careJournal"`
	PlannedCare []journal.Reminder         `json:"plannedCare"`
	Checklist   store.DailyChecklist       `json:"checklist"`
	Routines    []store.RoutineItem        `json:"routines"`
	Documents   []store.PetDocument        `json:"documents"`
	DailyLogs   map[string]store.DailyLog  `json:"dailyLogs"`
	DoctorNotes []store.DoctorNote         `json:"doctorNotes"`
	Network     []clinical.ConsultedDoctor `json:"network"`
	LastVisit   *time.Time                 `json:"lastVisit,omitempty"`
}
