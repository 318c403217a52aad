package pets

import (
	"testing"
)

func TestApplyAttrsShallowMerge(t *testing.T) {
	p := PetProfile{Name: "Luna", Species: SpeciesCat, Color: "black"}

	err := applyAttrs(&p, map[string]interface{}{
		"name":     "Mira",
		"weightKg": 4.2,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Name != "Mira" {
		t.Fatalf("name should update, got %q", p.Name)
	}
	if p.WeightKG != 4.2 {
		t.Fatalf("weight should update, got %v", p.WeightKG)
	}
	// Untouched fields survive.
	if p.Species != SpeciesCat || p.Color != "black" {
		t.Fatalf("absent keys must not reset fields: %+v", p)
	}
}

func TestApplyAttrsStripsNilValues(t *testing.T) {
	p := PetProfile{Breed: "Siamese"}

	err := applyAttrs(&p, map[string]interface{}{
		"breed": nil,
		"name":  "Luna",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Breed != "Siamese" {
		t.Fatalf("nil value should be stripped, not applied: %q", p.Breed)
	}
	if p.Name != "Luna" {
		t.Fatalf("name should apply, got %q", p.Name)
	}
}

func TestApplyAttrsIgnoresUnknownKeys(t *testing.T) {
	p := PetProfile{Name: "Luna"}

	if err := applyAttrs(&p, map[string]interface{}{"nonsense": "x"}); err != nil {
		t.Fatalf("unknown keys should be ignored: %v", err)
	}
	if p.Name != "Luna" {
		t.Fatalf("profile changed unexpectedly: %+v", p)
	}
}

func TestApplyAttrsEmptyMapIsNoOp(t *testing.T) {
	p := PetProfile{Name: "Luna"}
	if err := applyAttrs(&p, nil); err != nil {
		t.Fatalf("nil attrs: %v", err)
	}
	if p.Name != "Luna" {
		t.Fatalf("profile changed: %+v", p)
	}
}
