package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan/internal/models/request_models"
	"wayplan/pkg/utils"
)

func rawDocument(days ...int) string {
	entries := make([]string, len(days))
	for i, d := range days {
		entries[i] = fmt.Sprintf(`{"day": %d, "activities": [{"timeSlot": "9:00 AM - 11:00 AM", "name": "Stop %d", "description": "d", "cost": "$10", "whyRecommended": "w"}], "transportation": "Walk", "dailyCost": "$10"}`, d, d)
	}
	return fmt.Sprintf(`{
  "overview": {"destination": "Kyoto, Japan", "duration": "%d Days", "totalEstimatedCost": "$30"},
  "days": [%s],
  "summary": {"totalEstimatedCost": "$30", "totalActivities": 99, "keyHighlights": ["Temples"]}
}`, len(days), strings.Join(entries, ","))
}

func TestDocumentValidator_ValidateRaw_Accepts(t *testing.T) {
	v := NewDocumentValidator()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain object", raw: rawDocument(1, 2, 3)},
		{name: "json fence", raw: "```json\n" + rawDocument(1, 2, 3) + "\n```"},
		{name: "bare fence", raw: "```\n" + rawDocument(1, 2, 3) + "\n```"},
		{name: "surrounding prose", raw: "Here is your itinerary:\n" + rawDocument(1, 2, 3) + "\nEnjoy {your} trip!"},
		{name: "days out of order", raw: rawDocument(3, 1, 2)},
		{name: "braces in leading prose", raw: "Budget note: {Moderate} applies.\n" + rawDocument(1, 2, 3)},
		{name: "fence inside a string value", raw: fencedDescription},
		{name: "fenced block after other blocks", raw: "```python\nprint({})\n```\n```json\n" + rawDocument(1, 2, 3) + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := v.ValidateRaw(tt.raw, 3)
			require.NoError(t, err)
			require.Len(t, doc.Days, 3)
			for i, day := range doc.Days {
				assert.Equal(t, i+1, day.Day)
				assert.Equal(t, fmt.Sprintf("Stop %d", i+1), day.Activities[0].Name)
			}
			assert.Equal(t, 3, doc.Summary.TotalActivities)
			assert.Equal(t, []string{"Temples"}, doc.Summary.KeyHighlights)
		})
	}
}

var fencedDescription = strings.Replace(rawDocument(1, 2, 3), `"description": "d"`, "\"description\": \"Run ```ls``` first\"", 1)

func TestDocumentValidator_ValidateRaw_KeepsFencesInsideStrings(t *testing.T) {
	v := NewDocumentValidator()

	for name, raw := range map[string]string{
		"bare":   fencedDescription,
		"fenced": "```json\n" + fencedDescription + "\n```",
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := v.ValidateRaw(raw, 3)
			require.NoError(t, err)
			assert.Equal(t, "Run ```ls``` first", doc.Days[0].Activities[0].Description)
		})
	}
}

func TestDocumentValidator_ValidateRaw_Rejects(t *testing.T) {
	v := NewDocumentValidator()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose only", raw: "I cannot help with that."},
		{name: "truncated", raw: `{"overview": {"destination": "Kyoto"`},
		{name: "wrong day count", raw: rawDocument(1, 2)},
		{name: "duplicate day", raw: rawDocument(1, 1, 2)},
		{name: "gap in days", raw: rawDocument(1, 2, 4)},
		{name: "missing summary", raw: `{"overview": {"destination": "a", "duration": "b", "totalEstimatedCost": "c"}, "days": []}`},
		{name: "days not an array", raw: `{"overview": {"destination": "a", "duration": "b", "totalEstimatedCost": "c"}, "days": "three", "summary": {"totalEstimatedCost": "c", "totalActivities": 0}}`},
		{name: "day without activities", raw: strings.Replace(rawDocument(1, 2, 3), `"activities": [{"timeSlot": "9:00 AM - 11:00 AM", "name": "Stop 2", "description": "d", "cost": "$10", "whyRecommended": "w"}]`, `"activities": []`, 1)},
		{name: "activity without name", raw: strings.Replace(rawDocument(1, 2, 3), `"name": "Stop 1",`, "", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := v.ValidateRaw(tt.raw, 3)
			assert.Nil(t, doc)
			var shapeErr *utils.ShapeError
			assert.ErrorAs(t, err, &shapeErr)
		})
	}
}

func TestDocumentValidator_Idempotent(t *testing.T) {
	v := NewDocumentValidator()

	first, err := v.ValidateRaw(rawDocument(2, 3, 1), 3)
	require.NoError(t, err)

	second, err := v.ValidateDocument(first, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDocumentValidator_ValidateDocument_Nil(t *testing.T) {
	_, err := NewDocumentValidator().ValidateDocument(nil, 1)
	var shapeErr *utils.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestDocumentValidator_MissingHighlightsBecomeEmpty(t *testing.T) {
	raw := strings.Replace(rawDocument(1), `, "keyHighlights": ["Temples"]`, "", 1)
	doc, err := NewDocumentValidator().ValidateRaw(raw, 1)
	require.NoError(t, err)
	assert.NotNil(t, doc.Summary.KeyHighlights)
	assert.Empty(t, doc.Summary.KeyHighlights)
}

func TestDocumentJSON_DoesNotEscapeHTML(t *testing.T) {
	doc := GenerateFallbackItinerary("Tom & Jerry's <Town>", 1, request_models.BudgetModerate)
	data, err := documentJSON(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tom & Jerry's <Town>")
	assert.False(t, strings.HasSuffix(string(data), "\n"))
}
