package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrForbidden         = errors.New("itinerary belongs to another user")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
)

// FieldViolation is a single rejected request field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every violated constraint of a request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "invalid itinerary request: " + strings.Join(parts, "; ")
}

// HasField reports whether field was rejected.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// UpstreamError describes a failed call to an external AI or search service.
type UpstreamError struct {
	Service string
	Status  int
	Detail  string
	Err     error
}

func (e *UpstreamError) Error() string {
	msg := e.Service + " request failed"
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// EnrichmentError is returned by the real-time search client.
type EnrichmentError struct{ UpstreamError }

func (e *EnrichmentError) Unwrap() error { return e.Err }

// GenerationError is returned by the itinerary generation client.
type GenerationError struct{ UpstreamError }

func (e *GenerationError) Unwrap() error { return e.Err }

func NewEnrichmentError(status int, detail string, err error) *EnrichmentError {
	return &EnrichmentError{UpstreamError{Service: "enrichment", Status: status, Detail: detail, Err: err}}
}

func NewGenerationError(status int, detail string, err error) *GenerationError {
	return &GenerationError{UpstreamError{Service: "generation", Status: status, Detail: detail, Err: err}}
}

// ShapeError means a document did not match the itinerary shape.
type ShapeError struct {
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return "malformed itinerary document: " + e.Reason + ": " + e.Err.Error()
	}
	return "malformed itinerary document: " + e.Reason
}

func (e *ShapeError) Unwrap() error { return e.Err }

// PersistenceError wraps a failure of the itinerary store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("itinerary store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
