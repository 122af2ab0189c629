package response_models

// Cost of a single activity. Currency must agree with the request currency.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Location of an activity. Coordinates are [longitude, latitude].
type Location struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
}

type Activity struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Cost        Cost     `json:"cost"`
	Location    Location `json:"location"`
	Notes       string   `json:"notes"`
}

// DayPlan is the validated activity schedule for one calendar date.
// Immutable once it leaves the validator.
type DayPlan struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	Notes      string     `json:"notes"`
}

// BudgetSummary echoes the normalized request budget; Actual is derived by
// the assembler from activity costs, never stored independently.
type BudgetSummary struct {
	Planned  float64 `json:"planned"`
	Actual   float64 `json:"actual"`
	Currency string  `json:"currency"`
}

type GenerationResult struct {
	DayPlans []DayPlan     `json:"dayPlans"`
	Tips     []string      `json:"tips"`
	Budget   BudgetSummary `json:"budget"`
}

type DestinationInsights struct {
	BestTimeToVisit  string `json:"bestTimeToVisit"`
	LocalCustoms     string `json:"localCustoms"`
	Transportation   string `json:"transportation"`
	Safety           string `json:"safety"`
	LocalExperiences string `json:"localExperiences"`
}

type ActivitySuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
	BestTime    string `json:"bestTime"`
}

type ItinerarySummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	TravelStyle string  `json:"travel_style"`
	Planned     float64 `json:"planned_budget"`
	Actual      float64 `json:"actual_budget"`
	Currency    string  `json:"currency"`
	AIGenerated bool    `json:"ai_generated"`
}

type ItineraryDetail struct {
	ItinerarySummary
	IsPublic   bool      `json:"is_public"`
	SharedWith []string  `json:"shared_with"`
	DayPlans   []DayPlan `json:"day_plans"`
	Tips       []string  `json:"tips"`
}
