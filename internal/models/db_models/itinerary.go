package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ItineraryStatus string

const (
	StatusDraft      ItineraryStatus = "draft"
	StatusConfirmed  ItineraryStatus = "confirmed"
	StatusInProgress ItineraryStatus = "in-progress"
	StatusCompleted  ItineraryStatus = "completed"
	StatusCancelled  ItineraryStatus = "cancelled"
)

func ValidStatus(s string) bool {
	switch ItineraryStatus(s) {
	case StatusDraft, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Itinerary struct {
	BaseModel
	UserID      string `gorm:"index"`
	Title       string
	City        string
	Country     string
	DestLon     float64
	DestLat     float64
	StartDate   time.Time
	EndDate     time.Time
	TravelStyle string

	PlannedBudget float64
	ActualBudget  float64
	Currency      string `gorm:"size:3"`

	Status      ItineraryStatus `gorm:"default:draft"`
	IsPublic    bool            `gorm:"default:false"`
	SharedWith  pq.StringArray  `gorm:"type:text[]"`
	AIGenerated bool            `gorm:"default:false"`

	Tips        pq.StringArray `gorm:"type:text[]"`
	Preferences datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Days []ItineraryDay
}

type ItineraryDay struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"index"`
	Date        time.Time
	DayNumber   int
	Notes       string

	Activities []ItineraryActivity
}

type ItineraryActivity struct {
	BaseModel
	ItineraryDayID uuid.UUID `gorm:"index"`
	ActivityType   string
	Title          string `gorm:"size:100"`
	Description    string `gorm:"size:250"`
	StartTime      string `gorm:"size:5"` // HH:MM
	EndTime        string `gorm:"size:5"`
	CostAmount     float64
	CostCurrency   string `gorm:"size:3"`
	LocationName   string
	Address        string
	Lon            float64
	Lat            float64
	Notes          string `gorm:"size:200"`
	Position       int
}
