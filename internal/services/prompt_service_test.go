package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnrichmentQuery(t *testing.T) {
	req := kyotoRequest()
	req.AgeGroups = []string{"Adults", "Seniors"}

	assert.Equal(t,
		"Find top attractions, restaurants, and activities in Kyoto, Japan suitable for Adults, Seniors with Moderate intensity. "+
			"Include current hours, prices, and accessibility info.",
		BuildEnrichmentQuery(req))
}

func TestBuildGenerationPrompts(t *testing.T) {
	req := kyotoRequest()
	req.DietaryRestrictions = []string{"vegetarian"}

	system, user := BuildGenerationPrompts(req, "  Gion is busiest after 6pm.  ")

	assert.Contains(t, system, "travel itinerary expert")
	assert.Contains(t, system, "3-day itinerary for Kyoto, Japan")

	assert.Contains(t, user, "- Budget: Moderate\n")
	assert.Contains(t, user, "- Party Size: 2\n")
	assert.Contains(t, user, "- Dietary Restrictions: vegetarian\n")
	assert.NotContains(t, user, "Interests")
	assert.Contains(t, user, "Use this real-time data (if available):\nGion is busiest after 6pm.\n")
	assert.Contains(t, user, `Exactly 3 entries in "days"`)
	assert.Contains(t, user, outputSchemaInstruction)
}

func TestBuildGenerationPrompts_WithoutEnrichment(t *testing.T) {
	_, user := BuildGenerationPrompts(kyotoRequest(), "")
	assert.Contains(t, user, "Use this real-time data (if available):\n\n")
}
