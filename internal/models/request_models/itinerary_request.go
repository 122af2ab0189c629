package request_models

// Destination identifies where the trip happens. Coordinates are
// [longitude, latitude].
type Destination struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Coordinates []float64 `json:"coordinates"`
}

type Budget struct {
	Planned  float64 `json:"planned"`
	Currency string  `json:"currency"`
}

type Preferences struct {
	Interests           []string `json:"interests"`
	ExcludeTypes        []string `json:"excludeTypes"`
	Accessibility       []string `json:"accessibility"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
}

// GenerateItineraryRequest is the inbound document for AI generation.
// Fields may be partial or mistyped; the normalizer fills defaults and
// clamps the trip length before any model call.
type GenerateItineraryRequest struct {
	Destination Destination `json:"destination"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	TravelStyle string      `json:"travelStyle"`
	Budget      Budget      `json:"budget"`
	Preferences Preferences `json:"preferences"`
}

type SuggestActivitiesRequest struct {
	Location    string      `json:"location"`
	Preferences Preferences `json:"preferences"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ShareItineraryRequest struct {
	IsPublic   *bool    `json:"isPublic"`
	SharedWith []string `json:"sharedWith"`
}
