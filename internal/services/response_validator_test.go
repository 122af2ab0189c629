package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/utils"
)

func validActivity() response_models.Activity {
	return response_models.Activity{
		Type:        "Cultural",
		Title:       "Visit the Louvre",
		Description: "World-famous art museum on the Right Bank of the Seine",
		StartTime:   "09:00",
		EndTime:     "12:00",
		Cost:        response_models.Cost{Amount: 22, Currency: "USD"},
		Location: response_models.Location{
			Name:        "Louvre Museum",
			Address:     "Rue de Rivoli, 75001 Paris, France",
			Coordinates: []float64{2.3376, 48.8606},
		},
		Notes: "Book tickets online",
	}
}

func dayPlansJSON(t *testing.T, plans []response_models.DayPlan) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"dayPlans": plans})
	require.NoError(t, err)
	return string(raw)
}

// requireViolation asserts err is a schema violation whose field and message
// match the given fragments.
func requireViolation(t *testing.T, err error, fieldFragment string) *utils.SchemaValidationError {
	t.Helper()
	require.Error(t, err)
	var violation *utils.SchemaValidationError
	require.ErrorAs(t, err, &violation)
	require.Contains(t, violation.Field, fieldFragment)
	return violation
}

// TestValidateDayPlans_valid verifies that a well-formed two-day response
// for the expected dates passes.
func TestValidateDayPlans_valid(t *testing.T) {
	morning := validActivity()
	afternoon := validActivity()
	afternoon.Type = "Dining"
	afternoon.Title = "Lunch at a bistro"
	afternoon.StartTime = "12:30"
	afternoon.EndTime = "14:00"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{morning, afternoon}},
		{Date: "2026-09-02", Activities: []response_models.Activity{validActivity()}},
	}

	v := NewResponseValidator()
	got, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01", "2026-09-02"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2026-09-01", got[0].Date)
	require.Len(t, got[0].Activities, 2)
}

// TestValidateDayPlans_countMismatch verifies that a reply with the wrong
// number of day plans for its chunk is rejected.
func TestValidateDayPlans_countMismatch(t *testing.T) {
	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{validActivity()}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01", "2026-09-02"})

	violation := requireViolation(t, err, "dayPlans")
	require.Contains(t, violation.Reason, "expected 2 day plans, got 1")
}

// TestValidateDayPlans_wrongDate verifies that a day plan dated outside its
// chunk is rejected even when otherwise valid.
func TestValidateDayPlans_wrongDate(t *testing.T) {
	plans := []response_models.DayPlan{
		{Date: "2026-09-05", Activities: []response_models.Activity{validActivity()}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	requireViolation(t, err, "dayPlans[0].date")
}

// TestValidateDayPlans_endBeforeStart verifies that an inverted time window
// is rejected and the violation names the offending activity index.
func TestValidateDayPlans_endBeforeStart(t *testing.T) {
	bad := validActivity()
	bad.StartTime = "15:00"
	bad.EndTime = "14:00"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{validActivity(), bad}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "dayPlans[0].activities")
	require.Equal(t, 1, violation.Index)
	require.Contains(t, violation.Reason, "must be after")
}

// TestValidateDayPlans_tooLong verifies the eight-hour activity cap.
func TestValidateDayPlans_tooLong(t *testing.T) {
	bad := validActivity()
	bad.StartTime = "08:00"
	bad.EndTime = "16:01"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{bad}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "activities")
	require.Contains(t, violation.Reason, "duration exceeds")
}

// TestValidateDayPlans_currencyMismatch verifies that activity costs in a
// different currency than the trip budget are rejected.
func TestValidateDayPlans_currencyMismatch(t *testing.T) {
	bad := validActivity()
	bad.Cost.Currency = "EUR"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{bad}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "activities")
	require.Contains(t, violation.Reason, "expected USD, got EUR")
}

// TestValidateDayPlans_coordinates verifies both coordinate range checks.
func TestValidateDayPlans_coordinates(t *testing.T) {
	cases := []struct {
		name   string
		coords []float64
		reason string
	}{
		{"longitude out of range", []float64{200, 45}, "longitude"},
		{"latitude out of range", []float64{10, 95}, "latitude"},
		{"wrong arity", []float64{10}, "coordinates"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := validActivity()
			bad.Location.Coordinates = tc.coords

			plans := []response_models.DayPlan{
				{Date: "2026-09-01", Activities: []response_models.Activity{bad}},
			}

			v := NewResponseValidator()
			_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

			violation := requireViolation(t, err, "activities")
			require.Contains(t, violation.Reason, tc.reason)
		})
	}
}

// TestValidateDayPlans_badType verifies the closed activity-type set.
func TestValidateDayPlans_badType(t *testing.T) {
	bad := validActivity()
	bad.Type = "Adventure"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{bad}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "activities")
	require.Contains(t, violation.Reason, "invalid activity type")
}

// TestValidateDayPlans_overlap verifies that overlapping activity windows
// within a day are rejected.
func TestValidateDayPlans_overlap(t *testing.T) {
	first := validActivity() // 09:00-12:00
	second := validActivity()
	second.StartTime = "11:30"
	second.EndTime = "13:00"

	plans := []response_models.DayPlan{
		{Date: "2026-09-01", Activities: []response_models.Activity{first, second}},
	}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "activities")
	require.Equal(t, 1, violation.Index)
	require.Contains(t, violation.Reason, "overlaps")
}

// TestValidateDayPlans_tooManyActivities verifies the per-day activity cap.
func TestValidateDayPlans_tooManyActivities(t *testing.T) {
	activities := make([]response_models.Activity, 9)
	for i := range activities {
		a := validActivity()
		a.StartTime = fmt.Sprintf("%02d:00", 8+i)
		a.EndTime = fmt.Sprintf("%02d:30", 8+i)
		activities[i] = a
	}

	plans := []response_models.DayPlan{{Date: "2026-09-01", Activities: activities}}

	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(dayPlansJSON(t, plans), "USD", []string{"2026-09-01"})

	violation := requireViolation(t, err, "activities")
	require.Contains(t, violation.Reason, "too many activities")
}

// TestValidateDayPlans_typeMismatch verifies that well-formed JSON with a
// mistyped field is a schema violation, not a malformed response.
func TestValidateDayPlans_typeMismatch(t *testing.T) {
	v := NewResponseValidator()
	_, err := v.ValidateDayPlans(`{"dayPlans": "not an array"}`, "USD", []string{"2026-09-01"})

	require.Error(t, err)
	var violation *utils.SchemaValidationError
	require.ErrorAs(t, err, &violation)
}

// TestValidateTips covers the accepted shape and both bounds.
func TestValidateTips(t *testing.T) {
	v := NewResponseValidator()

	tips, err := v.ValidateTips(`["Carry cash for markets", "Validate metro tickets"]`)
	require.NoError(t, err)
	require.Len(t, tips, 2)

	_, err = v.ValidateTips(`[]`)
	requireViolation(t, err, "tips")

	many, _ := json.Marshal(make([]string, 11))
	_, err = v.ValidateTips(string(many))
	requireViolation(t, err, "tips")
}

// TestValidateInsights verifies that all five sections are required.
func TestValidateInsights(t *testing.T) {
	v := NewResponseValidator()

	valid := `{
		"bestTimeToVisit": "April to June",
		"localCustoms": "Greet shopkeepers when entering",
		"transportation": "Metro is fastest, buy a carnet",
		"safety": "Watch for pickpockets near landmarks",
		"localExperiences": "Picnic on the Canal Saint-Martin"
	}`
	insights, err := v.ValidateInsights(valid)
	require.NoError(t, err)
	require.Equal(t, "April to June", insights.BestTimeToVisit)

	missing := `{
		"bestTimeToVisit": "April to June",
		"localCustoms": "Greet shopkeepers",
		"transportation": "Metro",
		"safety": "Stay alert"
	}`
	_, err = v.ValidateInsights(missing)
	requireViolation(t, err, "localExperiences")
}

// TestValidateActivitySuggestions verifies required suggestion fields.
func TestValidateActivitySuggestions(t *testing.T) {
	v := NewResponseValidator()

	valid := `{"activities": [{
		"name": "Seine river cruise",
		"description": "One-hour boat tour past the city's landmarks",
		"duration": "1 hour",
		"cost": "15 USD",
		"bestTime": "Sunset"
	}]}`
	suggestions, err := v.ValidateActivitySuggestions(valid)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	_, err = v.ValidateActivitySuggestions(`{"activities": [{"name": "Cruise"}]}`)
	requireViolation(t, err, "activities")
}
