package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/genclient"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
)

// maxAttachedSources caps how many discovery citations ride along on each
// venue. Citations are call-scoped: the provider does not correlate them to
// individual venues, so the same leading few attach to every result.
const maxAttachedSources = 3

// Resolver discovers fitness venues through an explicit two-stage pipeline:
// a grounded discovery call that yields free text plus citations, then a
// schema-constrained extraction pass over that text.
type Resolver struct {
	discovery genclient.GroundedGenerator
	extractor genclient.StructuredGenerator
	log       zerolog.Logger
}

// NewResolver creates a new venue Resolver.
func NewResolver(discovery genclient.GroundedGenerator, extractor genclient.StructuredGenerator, log zerolog.Logger) *Resolver {
	return &Resolver{
		discovery: discovery,
		extractor: extractor,
		log:       log.With().Str("component", "venues").Logger(),
	}
}

// ResolveVenues returns venues near locationText that suit the given goal.
// Discovery failures are non-fatal: any failure at either stage yields an
// empty list, logged, never an error to the surrounding application.
func (r *Resolver) ResolveVenues(ctx context.Context, locationText string, goal contracts.Goal, lang contracts.Language, coords *contracts.Coordinates) []contracts.Venue {
	answer, err := r.discover(ctx, locationText, goal, lang, coords)
	if err != nil {
		r.log.Error().Err(err).Str("location", locationText).Msg("venue discovery failed")
		return []contracts.Venue{}
	}

	extracted, err := r.extract(ctx, answer)
	if err != nil {
		r.log.Error().Err(err).Str("location", locationText).Msg("venue extraction failed")
		return []contracts.Venue{}
	}

	sources := answer.Citations
	if len(sources) > maxAttachedSources {
		sources = sources[:maxAttachedSources]
	}
	for i := range extracted {
		extracted[i].Sources = sources
	}

	r.log.Info().
		Str("location", locationText).
		Int("venues", len(extracted)).
		Int("citations", len(answer.Citations)).
		Msg("venues resolved")
	return extracted
}

func (r *Resolver) discover(ctx context.Context, locationText string, goal contracts.Goal, lang contracts.Language, coords *contracts.Coordinates) (genclient.GroundedAnswer, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Find gyms, fitness studios and training venues near %q that suit someone working toward %q. ", locationText, string(goal))
	b.WriteString("For each venue mention its name, address, rating, distance, standout amenities and what makes it a good fit. ")
	fmt.Fprintf(&b, "Answer in %s.", lang.DisplayName())

	return r.discovery.DiscoverGrounded(ctx, b.String(), coords)
}

func (r *Resolver) extract(ctx context.Context, answer genclient.GroundedAnswer) ([]contracts.Venue, error) {
	cites, err := json.Marshal(answer.Citations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode citations: %w", err)
	}

	var b strings.Builder
	b.WriteString("Extract every venue mentioned in the text below into a strict JSON array. ")
	b.WriteString("Always emit numeric latitude and longitude for each venue, either from the source metadata or estimated from the address; downstream map placement cannot render a venue without coordinates.\n\n")
	b.WriteString("Text:\n")
	b.WriteString(answer.Text)
	b.WriteString("\n\nSources:\n")
	b.Write(cites)

	resp, err := r.extractor.GenerateJSON(ctx, b.String(), VenueListSchema())
	if err != nil {
		return nil, err
	}

	// Pointer coordinates distinguish "missing" from zero; an entity lacking
	// resolvable coordinates is dropped, never retained with placeholders.
	var raw struct {
		Venues []struct {
			Name      string   `json:"name"`
			Address   string   `json:"address"`
			Rating    float64  `json:"rating"`
			Distance  float64  `json:"distance_km"`
			Amenities []string `json:"amenities"`
			Highlight string   `json:"highlight"`
			URL       string   `json:"url"`
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"venues"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse venue payload: %w", err)
	}

	venues := make([]contracts.Venue, 0, len(raw.Venues))
	for _, v := range raw.Venues {
		if v.Latitude == nil || v.Longitude == nil {
			r.log.Warn().Str("venue", v.Name).Msg("dropping venue without resolvable coordinates")
			continue
		}
		venues = append(venues, contracts.Venue{
			Name:      v.Name,
			Address:   v.Address,
			Rating:    v.Rating,
			Distance:  v.Distance,
			Amenities: v.Amenities,
			Highlight: v.Highlight,
			URL:       v.URL,
			Latitude:  *v.Latitude,
			Longitude: *v.Longitude,
		})
	}
	return venues, nil
}

// VenueListSchema is the output schema for the extraction stage.
func VenueListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"venues": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"address":     {Type: genai.TypeString},
						"rating":      {Type: genai.TypeNumber},
						"distance_km": {Type: genai.TypeNumber},
						"amenities":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"highlight":   {Type: genai.TypeString},
						"url":         {Type: genai.TypeString},
						"latitude":    {Type: genai.TypeNumber},
						"longitude":   {Type: genai.TypeNumber},
					},
					Required: []string{"name", "address", "latitude", "longitude"},
				},
			},
		},
		Required: []string{"venues"},
	}
}
