package principal

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	// PetIDPrefix marks a pet-scoped identifier. A pet id embeds the owning
	// user's id, so stripping the prefix yields the owner.
	PetIDPrefix = "pet-"

	// SelfPlaceholder resolves to the requesting principal's own id.
	SelfPlaceholder = "me"
)

var (
	ErrUnresolvableOwner = errors.New("owner id could not be resolved")
	ErrForbidden         = errors.New("principal may not act on this owner")
)

// ResolveOwner maps a pet-or-owner reference to the owning user id. The UI
// sometimes holds only a pet-scoped id (a doctor viewing a patient) and
// sometimes only the logged-in user's session, hence the indirection.
func ResolveOwner(p Principal, ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)

	if strings.HasPrefix(ref, PetIDPrefix) {
		id, err := uuid.Parse(strings.TrimPrefix(ref, PetIDPrefix))
		if err != nil {
			return uuid.Nil, ErrUnresolvableOwner
		}
		return id, nil
	}

	if ref == "" || ref == SelfPlaceholder {
		if p.UserID == uuid.Nil {
			return uuid.Nil, ErrUnresolvableOwner
		}
		return p.UserID, nil
	}

	return uuid.Nil, ErrUnresolvableOwner
}

// Authorize checks that the principal may operate on the resolved owner's
// records. Owners act only on their own; doctors may act on any patient.
func Authorize(p Principal, owner uuid.UUID) error {
	if p.IsDoctor() {
		return nil
	}
	if p.UserID == owner {
		return nil
	}
	return ErrForbidden
}
