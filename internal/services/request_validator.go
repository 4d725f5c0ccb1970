package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"wayplan/internal/models/request_models"
	"wayplan/pkg/utils"
)

const minDestinationLength = 2

// RequestValidator turns an untrusted generate body into an ItineraryRequest.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Tags are constants; registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("destination", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minDestinationLength
	})
	_ = v.RegisterValidation("budget", oneOf(request_models.Budgets))
	_ = v.RegisterValidation("agegroup", oneOf(request_models.AgeGroups))
	_ = v.RegisterValidation("activitylevel", oneOf(request_models.ActivityLevels))

	return &RequestValidator{validate: v}
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// ValidateJSON decodes and validates a raw request body, reporting every
// violated field at once.
func (v *RequestValidator) ValidateJSON(raw []byte) (request_models.ItineraryRequest, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return request_models.ItineraryRequest{}, &utils.ValidationError{
			Violations: []utils.FieldViolation{{Field: "body", Reason: "request body is required"}},
		}
	}

	var input request_models.ItineraryInput
	var violations []utils.FieldViolation

	if err := json.Unmarshal(raw, &input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return request_models.ItineraryRequest{}, &utils.ValidationError{
				Violations: []utils.FieldViolation{{Field: "body", Reason: "must be a JSON object"}},
			}
		}
		// encoding/json keeps decoding the other fields after a type mismatch.
		violations = append(violations, utils.FieldViolation{
			Field:  typeErr.Field,
			Reason: "must be of type " + jsonKind(typeErr.Type),
		})
	}

	return v.validateInput(input, violations)
}

// Validate checks an already decoded input.
func (v *RequestValidator) Validate(input request_models.ItineraryInput) (request_models.ItineraryRequest, error) {
	return v.validateInput(input, nil)
}

func (v *RequestValidator) validateInput(input request_models.ItineraryInput, violations []utils.FieldViolation) (request_models.ItineraryRequest, error) {
	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return request_models.ItineraryRequest{}, fmt.Errorf("validate itinerary request: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			if alreadyReported(violations, field) {
				continue
			}
			violations = append(violations, utils.FieldViolation{Field: field, Reason: violationReason(fe)})
		}
	}

	if len(violations) > 0 {
		return request_models.ItineraryRequest{}, &utils.ValidationError{Violations: violations}
	}

	return request_models.ItineraryRequest{
		Destination:         strings.TrimSpace(input.Destination),
		NumDays:             input.NumDays,
		Budget:              input.Budget,
		AgeGroups:           slices.Clone(input.AgeGroups),
		PartySize:           input.PartySize,
		ActivityLevel:       input.ActivityLevel,
		DietaryRestrictions: cloneOrEmpty(input.DietaryRestrictions),
		AccessibilityNeeds:  cloneOrEmpty(input.AccessibilityNeeds),
		Interests:           cloneOrEmpty(input.Interests),
	}, nil
}

// fieldPath drops the struct name validator prefixes to every namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func alreadyReported(violations []utils.FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field || strings.HasPrefix(field, v.Field+"[") {
			return true
		}
	}
	return false
}

func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "destination":
		return fmt.Sprintf("must be at least %d characters", minDestinationLength)
	case "budget":
		return "must be one of " + strings.Join(request_models.Budgets, ", ")
	case "agegroup":
		return "must be one of " + strings.Join(request_models.AgeGroups, ", ")
	case "activitylevel":
		return "must be one of " + strings.Join(request_models.ActivityLevels, ", ")
	case "unique":
		return "must not contain duplicates"
	case "min", "max":
		return rangeReason(fe)
	default:
		return "is invalid"
	}
}

func rangeReason(fe validator.FieldError) string {
	switch fe.Field() {
	case "numDays":
		return "must be between 1 and 30"
	case "partySize":
		return "must be between 1 and 20"
	case "ageGroups":
		return "must contain at least one age group"
	}

	switch fe.Kind() {
	case reflect.Slice:
		return fmt.Sprintf("must have at most %s entries", fe.Param())
	case reflect.String:
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "array"
	default:
		return t.Kind().String()
	}
}

func cloneOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
