package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"wayplan/internal/models/response_models"
	"wayplan/pkg/utils"
)

const itineraryDocumentSchema = `{
  "type": "object",
  "required": ["overview", "days", "summary"],
  "properties": {
    "overview": {
      "type": "object",
      "required": ["destination", "duration", "totalEstimatedCost"],
      "properties": {
        "destination": {"type": "string"},
        "duration": {"type": "string"},
        "totalEstimatedCost": {"type": "string"}
      }
    },
    "days": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "activities"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "activities": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["timeSlot", "name"],
              "properties": {
                "timeSlot": {"type": "string", "minLength": 1},
                "name": {"type": "string", "minLength": 1},
                "description": {"type": "string"},
                "cost": {"type": "string"},
                "whyRecommended": {"type": "string"}
              }
            }
          },
          "transportation": {"type": "string"},
          "dailyCost": {"type": "string"}
        }
      }
    },
    "summary": {
      "type": "object",
      "required": ["totalEstimatedCost", "totalActivities"],
      "properties": {
        "totalEstimatedCost": {"type": "string"},
        "totalActivities": {"type": "integer", "minimum": 0},
        "keyHighlights": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var compiledDocumentSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(itineraryDocumentSchema))
	if err != nil {
		panic(fmt.Sprintf("itinerary document schema: %v", err))
	}
	return schema
}()

// DocumentValidator checks and normalizes itinerary documents before they are stored.
type DocumentValidator struct {
	schema *gojsonschema.Schema
}

func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{schema: compiledDocumentSchema}
}

// ValidateRaw accepts untrusted model output, tolerating markdown fences and
// prose around the JSON object.
func (v *DocumentValidator) ValidateRaw(raw string, numDays int) (*response_models.ItineraryDocument, error) {
	content, ok := extractJSONObject(raw)
	if !ok {
		return nil, &utils.ShapeError{Reason: "no JSON object in response"}
	}
	return v.validateBytes([]byte(content), numDays)
}

// ValidateDocument runs an in-memory document through the same checks.
func (v *DocumentValidator) ValidateDocument(doc *response_models.ItineraryDocument, numDays int) (*response_models.ItineraryDocument, error) {
	if doc == nil {
		return nil, &utils.ShapeError{Reason: "document is nil"}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &utils.ShapeError{Reason: "encode document", Err: err}
	}
	return v.validateBytes(data, numDays)
}

func (v *DocumentValidator) validateBytes(data []byte, numDays int) (*response_models.ItineraryDocument, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &utils.ShapeError{Reason: "decode document", Err: err}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, &utils.ShapeError{Reason: strings.Join(errs, "; ")}
	}

	var doc response_models.ItineraryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &utils.ShapeError{Reason: "decode document", Err: err}
	}

	if err := normalizeDays(&doc, numDays); err != nil {
		return nil, err
	}

	total := 0
	for _, day := range doc.Days {
		total += len(day.Activities)
	}
	doc.Summary.TotalActivities = total
	if doc.Summary.KeyHighlights == nil {
		doc.Summary.KeyHighlights = []string{}
	}

	return &doc, nil
}

// normalizeDays orders days by index and requires exactly 1..numDays.
func normalizeDays(doc *response_models.ItineraryDocument, numDays int) error {
	if len(doc.Days) != numDays {
		return &utils.ShapeError{Reason: fmt.Sprintf("expected %d days, got %d", numDays, len(doc.Days))}
	}

	sort.SliceStable(doc.Days, func(i, j int) bool {
		return doc.Days[i].Day < doc.Days[j].Day
	})
	for i, day := range doc.Days {
		if day.Day != i+1 {
			return &utils.ShapeError{Reason: fmt.Sprintf("day %d is missing or duplicated", i+1)}
		}
	}
	return nil
}

// fencedBlockPattern matches a markdown code block with an optional language tag.
var fencedBlockPattern = regexp.MustCompile(`(?s)` + "```" + `(\w*)[ \t]*\n(.+?)\n[ \t]*` + "```")

// extractJSONObject returns the first valid JSON object in a model response.
// Fenced json blocks win over bare objects; text inside string values is left as is.
func extractJSONObject(response string) (string, bool) {
	for _, match := range fencedBlockPattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		if candidate, ok := firstObject(strings.TrimSpace(match[2])); ok {
			return candidate, true
		}
	}
	return firstObject(response)
}

// firstObject tries every opening brace in turn until one spans a valid object.
func firstObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := findMatchingBrace(s, start); end >= 0 {
			candidate := s[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// documentJSON is the canonical stored encoding.
func documentJSON(doc *response_models.ItineraryDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
