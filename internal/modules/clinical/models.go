package clinical

import (
	"time"

	"github.com/plutopets/pluto-backend/internal/store"
)

type CreateNoteRequest struct {
	Content string `json:"content"`
}

// ConsultedDoctor is one distinct doctor from the visit log, with the time of
// their most recent visit.
type ConsultedDoctor struct {
	DoctorID   string    `json:"doctorId"`
	DoctorName string    `json:"doctorName"`
	LastVisit  time.Time `json:"lastVisit"`
}

type NotesResponse struct {
	Notes []store.DoctorNote `json:"notes"`
}

type NetworkResponse struct {
	Doctors   []ConsultedDoctor `json:"doctors"`
	LastVisit *time.Time        `json:"lastVisit,omitempty"`
}
