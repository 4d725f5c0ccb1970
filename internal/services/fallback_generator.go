package services

import (
	"fmt"

	"wayplan/internal/models/request_models"
	"wayplan/internal/models/response_models"
)

type activityArchetype struct {
	name     string
	cost     string
	category string
}

// activityCatalog order is part of the output: day i uses entries i and i+2.
var activityCatalog = []activityArchetype{
	{name: "City Walking Tour", cost: "Free", category: "Sightseeing"},
	{name: "Local Museum Visit", cost: "$20", category: "Culture"},
	{name: "Famous Park Stroll", cost: "Free", category: "Nature"},
	{name: "Traditional Lunch", cost: "$30", category: "Food"},
	{name: "Historic Landmark", cost: "$15", category: "History"},
	{name: "Sunset Viewpoint", cost: "Free", category: "Sightseeing"},
	{name: "Dinner at Top Rated Spot", cost: "$50", category: "Food"},
	{name: "Evening Market", cost: "Variable", category: "Shopping"},
}

var localLunch = response_models.ItineraryActivity{
	TimeSlot:       "01:00 PM - 02:30 PM",
	Name:           "Lunch at Local Favorite",
	Description:    "Enjoy authentic local cuisine in a charming atmosphere.",
	Cost:           "$25-40",
	WhyRecommended: "Highly rated by locals and tourists alike.",
}

type budgetBand struct {
	dailyCost string
	perDay    int
}

func budgetBandFor(budget string) budgetBand {
	switch budget {
	case request_models.BudgetFriendly:
		return budgetBand{dailyCost: "$50-80", perDay: 80}
	case request_models.BudgetLuxury:
		return budgetBand{dailyCost: "$200+", perDay: 300}
	default:
		return budgetBand{dailyCost: "$100-150", perDay: 150}
	}
}

// GenerateFallbackItinerary builds an itinerary from the request alone. It
// makes no external calls and returns the same document for the same input.
func GenerateFallbackItinerary(destination string, numDays int, budget string) *response_models.ItineraryDocument {
	if numDays < 0 {
		numDays = 0
	}
	band := budgetBandFor(budget)
	n := len(activityCatalog)

	days := make([]response_models.ItineraryDay, numDays)
	for i := range days {
		morning := activityCatalog[i%n]
		afternoon := activityCatalog[(i+2)%n]

		days[i] = response_models.ItineraryDay{
			Day: i + 1,
			Activities: []response_models.ItineraryActivity{
				{
					TimeSlot:       "09:00 AM - 12:00 PM",
					Name:           destination + " " + morning.name,
					Description:    fmt.Sprintf("Start your day exploring the beautiful sights of %s.", destination),
					Cost:           morning.cost,
					WhyRecommended: fmt.Sprintf("A must-visit %s stop for first-time travelers.", morning.category),
				},
				localLunch,
				{
					TimeSlot:       "03:00 PM - 06:00 PM",
					Name:           destination + " " + afternoon.name,
					Description:    "Immerse yourself in the local culture and history.",
					Cost:           afternoon.cost,
					WhyRecommended: fmt.Sprintf("Offers a unique %s perspective on the city.", afternoon.category),
				},
			},
			Transportation: "Public transit is convenient and affordable.",
			DailyCost:      band.dailyCost,
		}
	}

	total := fmt.Sprintf("$%d", numDays*band.perDay)
	duration := fmt.Sprintf("%d Days", numDays)
	if numDays == 1 {
		duration = "1 Day"
	}

	return &response_models.ItineraryDocument{
		Overview: response_models.ItineraryOverview{
			Destination:        destination,
			Duration:           duration,
			TotalEstimatedCost: total,
		},
		Days: days,
		Summary: response_models.ItinerarySummary{
			TotalEstimatedCost: total,
			TotalActivities:    numDays * 3,
			KeyHighlights:      []string{"Historic City Center", "Local Cuisine Tasting", "Scenic Views"},
		},
	}
}
