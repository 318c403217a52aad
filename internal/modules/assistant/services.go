package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"github.com/plutopets/pluto-backend/internal/store"
)

const apologyText = "I'm sorry, I couldn't answer that right now. Please try again in a moment."

const systemPrompt = `You are Pluto, a helpful pet care assistant.
Answer strictly from the pet record context supplied below. If the context does not contain the answer, say so.
Never give a medical diagnosis or prescribe treatment; for health concerns, advise the user to contact their veterinarian.
Use the location search tool only when the user asks about nearby services such as vets, clinics, stores, daycare or grooming.`

// Record lookups the context builder needs. The domain services satisfy
// these directly.
type ProfileSource interface {
	GetPetProfile(ownerID uuid.UUID) (*pets.PetProfile, error)
}

type JournalSource interface {
	List(ownerID uuid.UUID) ([]journal.TimelineEntry, []journal.Reminder, error)
}

type DocumentSource interface {
	List(ownerID string) ([]store.PetDocument, error)
}

// Service forwards a question plus the pet's record snapshot to the
// completion provider. Provider and network failures surface to the caller as
// the apology text with no sources, never as an error.
type Service struct {
	cfg       *config.Config
	router    Router
	pets      ProfileSource
	journal   JournalSource
	documents DocumentSource
	client    *http.Client
}

func NewService(cfg *config.Config, router Router, p ProfileSource, j JournalSource, d DocumentSource) *Service {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		cfg:       cfg,
		router:    router,
		pets:      p,
		journal:   j,
		documents: d,
		client:    &http.Client{Timeout: timeout},
	}
}

func (s *Service) Ask(ownerID uuid.UUID, req AskRequest) AskResponse {
	question := strings.TrimSpace(req.Question)
	decision := s.router.Route(question)

	answer, sources, err := s.complete(ownerID, question, decision, req.Latitude, req.Longitude)
	if err != nil {
		slog.Warn("assistant completion failed", "owner_id", ownerID, "error", err)
		return AskResponse{Answer: apologyText, Sources: []Source{}}
	}
	return AskResponse{Answer: answer, Sources: sources}
}

func (s *Service) complete(ownerID uuid.UUID, question string, decision Decision, lat, lng *float64) (string, []Source, error) {
	contextBlock := s.buildContext(ownerID)

	body := chatRequest{
		Model: decision.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: contextBlock + "\n\nQuestion: " + question},
		},
	}
	if decision.UseLocationTool {
		opts := &webSearchOptions{}
		if lat != nil && lng != nil {
			opts.UserLocation = &userLocation{
				Type:        "approximate",
				Approximate: approximate{Latitude: *lat, Longitude: *lng},
			}
		}
		body.WebSearchOptions = opts
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.cfg.AIAPIURL, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.AIAPIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("AI API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", nil, err
	}

	answer := ""
	var sources []Source
	if len(completion.Choices) > 0 {
		msg := completion.Choices[0].Message
		answer = strings.TrimSpace(msg.Content)
		sources = extractSources(msg.Annotations)
	}
	if answer == "" {
		answer = apologyText
	}
	if sources == nil {
		sources = []Source{}
	}
	return answer, sources, nil
}

// extractSources keeps citations that carry a URI and drops duplicates.
func extractSources(annotations []annotation) []Source {
	seen := make(map[string]bool)
	sources := []Source{}
	for _, a := range annotations {
		if a.Type != "url_citation" || a.URLCitation == nil {
			continue
		}
		uri := strings.TrimSpace(a.URLCitation.URL)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		sources = append(sources, Source{Title: a.URLCitation.Title, URI: uri})
	}
	return sources
}

// buildContext renders the record snapshot as plain text, one line per
// record. Lookups that fail leave their section out rather than failing the
// whole question.
func (s *Service) buildContext(ownerID uuid.UUID) string {
	var b strings.Builder
	b.WriteString("Pet record context:\n")

	if profile, err := s.pets.GetPetProfile(ownerID); err == nil {
		fmt.Fprintf(&b, "Pet: %s (%s", profile.Name, profile.Species)
		if profile.Breed != "" {
			fmt.Fprintf(&b, ", %s", profile.Breed)
		}
		b.WriteString(")\n")
		if profile.BirthDate != nil {
			fmt.Fprintf(&b, "Born: %s\n", profile.BirthDate.Format("2006-01-02"))
		}
		if profile.WeightKG > 0 {
			fmt.Fprintf(&b, "Weight: %.1f kg\n", profile.WeightKG)
		}
	}

	timeline, reminders, err := s.journal.List(ownerID)
	if err == nil {
		if len(timeline) > 0 {
			b.WriteString("Care journal:\n")
			for _, e := range timeline {
				fmt.Fprintf(&b, "- %s [%s] %s", e.Date, e.Type, e.Title)
				if e.Notes != "" {
					fmt.Fprintf(&b, ": %s", e.Notes)
				}
				b.WriteString("\n")
			}
		}
		if len(reminders) > 0 {
			b.WriteString("Upcoming reminders:\n")
			for _, r := range reminders {
				fmt.Fprintf(&b, "- %s [%s] %s\n", r.Date, r.Type, r.Title)
			}
		}
	}

	if docs, err := s.documents.List(ownerID.String()); err == nil && len(docs) > 0 {
		b.WriteString("Documents:\n")
		for _, d := range docs {
			fmt.Fprintf(&b, "- %s [%s] %s\n", d.Date, d.Type, d.Name)
		}
	}

	return b.String()
}
