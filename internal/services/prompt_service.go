package services

import (
	"fmt"
	"strings"

	"wayplan/internal/models/request_models"
)

// outputSchemaInstruction is embedded verbatim in every generation prompt.
const outputSchemaInstruction = `{
  "overview": {
    "destination": "string",
    "duration": "string",
    "totalEstimatedCost": "string"
  },
  "days": [
    {
      "day": number,
      "activities": [
        {
          "timeSlot": "string (e.g. 9:00 AM - 11:00 AM)",
          "name": "string",
          "description": "string",
          "cost": "string",
          "whyRecommended": "string"
        }
      ],
      "transportation": "string",
      "dailyCost": "string"
    }
  ],
  "summary": {
    "totalEstimatedCost": "string",
    "totalActivities": number,
    "keyHighlights": ["string"]
  }
}`

// BuildEnrichmentQuery is the real-time search question for a trip.
func BuildEnrichmentQuery(req request_models.ItineraryRequest) string {
	return fmt.Sprintf(
		"Find top attractions, restaurants, and activities in %s suitable for %s with %s intensity. "+
			"Include current hours, prices, and accessibility info.",
		req.Destination, strings.Join(req.AgeGroups, ", "), req.ActivityLevel)
}

// BuildGenerationPrompts returns the system and user instructions for the
// generation model. enrichment may be empty.
func BuildGenerationPrompts(req request_models.ItineraryRequest, enrichment string) (string, string) {
	system := fmt.Sprintf(
		"You are a travel itinerary expert. Create a detailed %d-day itinerary for %s. "+
			"Respond with a single JSON object and nothing else.",
		req.NumDays, req.Destination)

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Create a %d-day itinerary for %s based on these preferences:\n", req.NumDays, req.Destination)
	fmt.Fprintf(&prompt, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&prompt, "- Party Size: %d\n", req.PartySize)
	fmt.Fprintf(&prompt, "- Age Groups: %s\n", strings.Join(req.AgeGroups, ", "))
	fmt.Fprintf(&prompt, "- Activity Level: %s\n", req.ActivityLevel)
	writeOptionalList(&prompt, "Dietary Restrictions", req.DietaryRestrictions)
	writeOptionalList(&prompt, "Accessibility Needs", req.AccessibilityNeeds)
	writeOptionalList(&prompt, "Interests", req.Interests)

	prompt.WriteString("\nUse this real-time data (if available):\n")
	prompt.WriteString(strings.TrimSpace(enrichment))
	prompt.WriteString("\n\n")

	fmt.Fprintf(&prompt, "Hard constraints:\n- Exactly %d entries in \"days\", numbered 1..%d with no gaps.\n", req.NumDays, req.NumDays)
	prompt.WriteString("- Every day has at least one activity.\n")
	prompt.WriteString("- summary.totalActivities equals the number of activities across all days.\n\n")

	prompt.WriteString("Return a valid JSON object with this structure:\n")
	prompt.WriteString(outputSchemaInstruction)

	return system, prompt.String()
}

func writeOptionalList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(values, ", "))
}
