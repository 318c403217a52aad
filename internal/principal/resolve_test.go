package principal

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/models"
)

func TestResolveOwnerPetPrefix(t *testing.T) {
	owner := uuid.New()
	p := Principal{UserID: uuid.New(), Role: models.RoleDoctor}

	got, err := ResolveOwner(p, "pet-"+owner.String())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != owner {
		t.Fatalf("expected %s, got %s", owner, got)
	}
}

func TestResolveOwnerSelf(t *testing.T) {
	self := uuid.New()
	p := Principal{UserID: self, Role: models.RolePetOwner}

	for _, ref := range []string{"", "me", " me "} {
		got, err := ResolveOwner(p, ref)
		if err != nil {
			t.Fatalf("resolve %q: %v", ref, err)
		}
		if got != self {
			t.Fatalf("ref %q: expected session id %s, got %s", ref, self, got)
		}
	}
}

func TestResolveOwnerMalformed(t *testing.T) {
	p := Principal{UserID: uuid.New()}

	for _, ref := range []string{"pet-not-a-uuid", "bogus", uuid.NewString()} {
		if _, err := ResolveOwner(p, ref); !errors.Is(err, ErrUnresolvableOwner) {
			t.Fatalf("ref %q: expected ErrUnresolvableOwner, got %v", ref, err)
		}
	}
}

func TestResolveOwnerNoSession(t *testing.T) {
	if _, err := ResolveOwner(Principal{}, "me"); !errors.Is(err, ErrUnresolvableOwner) {
		t.Fatalf("expected ErrUnresolvableOwner, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	doctor := Principal{UserID: uuid.New(), Role: models.RoleDoctor}
	if err := Authorize(doctor, owner); err != nil {
		t.Fatalf("doctor should access any patient: %v", err)
	}

	self := Principal{UserID: owner, Role: models.RolePetOwner}
	if err := Authorize(self, owner); err != nil {
		t.Fatalf("owner should access own records: %v", err)
	}

	stranger := Principal{UserID: uuid.New(), Role: models.RolePetOwner}
	if err := Authorize(stranger, owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
