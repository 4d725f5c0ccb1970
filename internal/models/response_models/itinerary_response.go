package response_models

import "time"

type Provenance string

const (
	ProvenanceAIWithEnrichment    Provenance = "ai-with-enrichment"
	ProvenanceAIWithoutEnrichment Provenance = "ai-without-enrichment"
	ProvenanceFallbackMock        Provenance = "fallback-mock"
)

type GenerateItineraryResponse struct {
	ItineraryID string             `json:"itinerary_id"`
	Provenance  Provenance         `json:"provenance"`
	Itinerary   *ItineraryDocument `json:"itinerary"`
}

type ItineraryListItem struct {
	ID            string    `json:"id"`
	Destination   string    `json:"destination"`
	NumDays       int       `json:"num_days"`
	Budget        string    `json:"budget"`
	PartySize     int       `json:"party_size"`
	ActivityLevel string    `json:"activity_level"`
	Provenance    string    `json:"provenance"`
	CreatedAt     time.Time `json:"created_at"`
}

type ItineraryDetailResponse struct {
	ItineraryListItem
	AgeGroups           []string           `json:"age_groups"`
	DietaryRestrictions []string           `json:"dietary_restrictions"`
	AccessibilityNeeds  []string           `json:"accessibility_needs"`
	Interests           []string           `json:"interests"`
	Itinerary           *ItineraryDocument `json:"itinerary"`
}
