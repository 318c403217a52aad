package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"github.com/plutopets/pluto-backend/internal/store"
)

type fakeProfiles struct{ profile *pets.PetProfile }

func (f *fakeProfiles) GetPetProfile(uuid.UUID) (*pets.PetProfile, error) {
	if f.profile == nil {
		return nil, pets.ErrProfileNotFound
	}
	return f.profile, nil
}

type fakeJournal struct {
	timeline  []journal.TimelineEntry
	reminders []journal.Reminder
}

func (f *fakeJournal) List(uuid.UUID) ([]journal.TimelineEntry, []journal.Reminder, error) {
	return f.timeline, f.reminders, nil
}

type fakeDocuments struct{ docs []store.PetDocument }

func (f *fakeDocuments) List(string) ([]store.PetDocument, error) {
	return f.docs, nil
}

func newAskService(t *testing.T, providerURL string) *Service {
	t.Helper()
	cfg := &config.Config{
		AIAPIKey:      "test-key",
		AIAPIURL:      providerURL,
		AIModel:       "general-model",
		AISearchModel: "search-model",
	}
	profiles := &fakeProfiles{profile: &pets.PetProfile{Name: "Luna", Species: pets.SpeciesCat}}
	jr := &fakeJournal{timeline: []journal.TimelineEntry{
		{Date: "2025-01-10", Type: journal.EntryTypeVaccination, Title: "Rabies shot"},
	}}
	docs := &fakeDocuments{docs: []store.PetDocument{
		{Name: "bloodwork.pdf", Type: store.DocTypeReport, Date: "2025-02-01"},
	}}
	return NewService(cfg, NewKeywordRouter(cfg.AIModel, cfg.AISearchModel), profiles, jr, docs)
}

func TestAskForwardsContextAndQuestion(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Luna's last vaccine was the rabies shot on 2025-01-10."}}]}`))
	}))
	defer srv.Close()

	svc := newAskService(t, srv.URL)
	resp := svc.Ask(uuid.New(), AskRequest{Question: "when was Luna's last vaccine?"})

	if !strings.Contains(resp.Answer, "rabies shot") {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}
	if len(resp.Sources) != 0 {
		t.Fatalf("expected no sources, got %+v", resp.Sources)
	}

	if captured.Model != "general-model" {
		t.Fatalf("expected general model, got %s", captured.Model)
	}
	if captured.WebSearchOptions != nil {
		t.Fatal("general question must not attach the search tool")
	}
	user := captured.Messages[len(captured.Messages)-1].Content
	for _, want := range []string{"Luna", "Rabies shot", "bloodwork.pdf", "when was Luna's last vaccine?"} {
		if !strings.Contains(user, want) {
			t.Fatalf("user message missing %q:\n%s", want, user)
		}
	}
}

func TestAskLocationQuestionAttachesCoordinates(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{
			"content":"Two clinics nearby.",
			"annotations":[
				{"type":"url_citation","url_citation":{"url":"https://vets.example/a","title":"Clinic A"}},
				{"type":"url_citation","url_citation":{"url":"https://vets.example/a","title":"Clinic A again"}},
				{"type":"url_citation","url_citation":{"url":"","title":"No link"}},
				{"type":"url_citation","url_citation":{"url":"https://vets.example/b","title":"Clinic B"}}
			]}}]}`))
	}))
	defer srv.Close()

	lat, lng := 41.0082, 28.9784
	svc := newAskService(t, srv.URL)
	resp := svc.Ask(uuid.New(), AskRequest{Question: "find vets nearby", Latitude: &lat, Longitude: &lng})

	if captured.Model != "search-model" {
		t.Fatalf("expected search model, got %s", captured.Model)
	}
	if captured.WebSearchOptions == nil || captured.WebSearchOptions.UserLocation == nil {
		t.Fatal("location question should attach coordinates")
	}
	if captured.WebSearchOptions.UserLocation.Approximate.Latitude != lat {
		t.Fatalf("latitude mismatch: %+v", captured.WebSearchOptions.UserLocation)
	}

	// Citations deduplicated by URI, blanks dropped.
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %+v", resp.Sources)
	}
	if resp.Sources[0].URI != "https://vets.example/a" || resp.Sources[1].URI != "https://vets.example/b" {
		t.Fatalf("unexpected sources %+v", resp.Sources)
	}
}

func TestAskProviderFailureYieldsApology(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newAskService(t, srv.URL)
	resp := svc.Ask(uuid.New(), AskRequest{Question: "anything"})

	if resp.Answer != apologyText {
		t.Fatalf("expected apology, got %q", resp.Answer)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Fatalf("expected empty source list, got %+v", resp.Sources)
	}
}

func TestAskEmptyCompletionYieldsApology(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	svc := newAskService(t, srv.URL)
	resp := svc.Ask(uuid.New(), AskRequest{Question: "anything"})

	if resp.Answer != apologyText {
		t.Fatalf("expected apology, got %q", resp.Answer)
	}
}
