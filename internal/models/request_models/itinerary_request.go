package request_models

const (
	BudgetFriendly = "Budget-Friendly"
	BudgetModerate = "Moderate"
	BudgetLuxury   = "Luxury"
	BudgetNoLimit  = "No Limit"
)

var (
	Budgets        = []string{BudgetFriendly, BudgetModerate, BudgetLuxury, BudgetNoLimit}
	AgeGroups      = []string{"Children", "Teens", "Adults", "Seniors"}
	ActivityLevels = []string{"Relaxed", "Moderate", "Active", "Very Active"}
)

// ItineraryInput is the raw generate request body before validation.
type ItineraryInput struct {
	Destination         string   `json:"destination" validate:"required,destination"`
	NumDays             int      `json:"numDays" validate:"min=1,max=30"`
	Budget              string   `json:"budget" validate:"required,budget"`
	AgeGroups           []string `json:"ageGroups" validate:"required,min=1,unique,dive,agegroup"`
	PartySize           int      `json:"partySize" validate:"min=1,max=20"`
	ActivityLevel       string   `json:"activityLevel" validate:"required,activitylevel"`
	DietaryRestrictions []string `json:"dietaryRestrictions" validate:"omitempty,max=20,dive,required,max=100"`
	AccessibilityNeeds  []string `json:"accessibilityNeeds" validate:"omitempty,max=20,dive,required,max=100"`
	Interests           []string `json:"interests" validate:"omitempty,max=20,dive,required,max=100"`
}

// ItineraryRequest is a validated trip request. Callers pass it by value and
// never modify the slices it carries.
type ItineraryRequest struct {
	Destination         string
	NumDays             int
	Budget              string
	AgeGroups           []string
	PartySize           int
	ActivityLevel       string
	DietaryRestrictions []string
	AccessibilityNeeds  []string
	Interests           []string
}
