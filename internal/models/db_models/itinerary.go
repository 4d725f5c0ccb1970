package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Itinerary struct {
	BaseModel
	UserID              string         `gorm:"type:text;not null;index"`
	Destination         string         `gorm:"type:text;not null"`
	NumDays             int            `gorm:"not null"`
	Budget              string         `gorm:"type:text;not null"`
	AgeGroups           pq.StringArray `gorm:"type:text[]"`
	PartySize           int            `gorm:"not null"`
	ActivityLevel       string         `gorm:"type:text;not null"`
	DietaryRestrictions pq.StringArray `gorm:"type:text[]"`
	AccessibilityNeeds  pq.StringArray `gorm:"type:text[]"`
	Interests           pq.StringArray `gorm:"type:text[]"`
	Provenance          string         `gorm:"type:text;not null"`
	ItineraryData       datatypes.JSON `gorm:"type:jsonb;not null"`
}
