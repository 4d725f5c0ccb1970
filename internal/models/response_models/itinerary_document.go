package response_models

type ItineraryOverview struct {
	Destination        string `json:"destination"`
	Duration           string `json:"duration"`
	TotalEstimatedCost string `json:"totalEstimatedCost"`
}

type ItineraryActivity struct {
	TimeSlot       string `json:"timeSlot"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Cost           string `json:"cost"`
	WhyRecommended string `json:"whyRecommended"`
}

type ItineraryDay struct {
	Day            int                 `json:"day"`
	Activities     []ItineraryActivity `json:"activities"`
	Transportation string              `json:"transportation"`
	DailyCost      string              `json:"dailyCost"`
}

type ItinerarySummary struct {
	TotalEstimatedCost string   `json:"totalEstimatedCost"`
	TotalActivities    int      `json:"totalActivities"`
	KeyHighlights      []string `json:"keyHighlights"`
}

type ItineraryDocument struct {
	Overview ItineraryOverview `json:"overview"`
	Days     []ItineraryDay    `json:"days"`
	Summary  ItinerarySummary  `json:"summary"`
}
