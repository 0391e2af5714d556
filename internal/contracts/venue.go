package contracts

// GroundingLink is one source the backend consulted while grounding a
// discovery answer.
type GroundingLink struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Venue is a discovered fitness venue. Latitude and Longitude are always
// populated: an entity whose coordinates could not be resolved is dropped
// during extraction, never retained with placeholders. Sources holds the
// first few grounding links of the discovery call that produced this venue;
// they are call-scoped, not venue-specific.
type Venue struct {
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Rating    float64         `json:"rating"`
	Distance  float64         `json:"distance_km"`
	Amenities []string        `json:"amenities"`
	Highlight string          `json:"highlight"`
	URL       string          `json:"url"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Sources   []GroundingLink `json:"sources,omitempty"`
}
