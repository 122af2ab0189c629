package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wanderwise/internal/models/request_models"
)

// TestDayPlanPrompt verifies the chunk prompt names the destination, the
// chunk position, the per-day budget, and every requested date.
func TestDayPlanPrompt(t *testing.T) {
	p := NewPromptBuilder()

	prompt := p.DayPlanPrompt(ChunkContext{
		Destination: request_models.Destination{City: "Paris", Country: "France"},
		Dates:       []string{"2026-09-01", "2026-09-02"},
		TravelStyle: "cultural",
		Currency:    "USD",
		DailyBudget: 400,
		ChunkIndex:  1,
		TotalChunks: 2,
	})

	require.Contains(t, prompt, "days 1 of 2 in Paris, France")
	require.Contains(t, prompt, "From 2026-09-01 to 2026-09-02")
	require.Contains(t, prompt, "Daily Budget: USD 400")
	require.Contains(t, prompt, "in date order: 2026-09-01, 2026-09-02")
	require.Contains(t, prompt, `"currency": "USD"`)

	// Every accepted activity type is offered to the model.
	for _, at := range ActivityTypes {
		require.Contains(t, prompt, "- "+at)
	}
}

// TestDayPlanPrompt_preferences verifies that caller preferences are
// embedded rather than dropped.
func TestDayPlanPrompt_preferences(t *testing.T) {
	p := NewPromptBuilder()

	prompt := p.DayPlanPrompt(ChunkContext{
		Destination: request_models.Destination{City: "Kyoto", Country: "Japan"},
		Dates:       []string{"2026-09-01"},
		TravelStyle: "balanced",
		Currency:    "USD",
		DailyBudget: 250,
		Preferences: request_models.Preferences{
			Interests:           []string{"temples", "gardens"},
			DietaryRestrictions: []string{"vegetarian"},
		},
		ChunkIndex:  1,
		TotalChunks: 1,
	})

	require.Contains(t, prompt, "temples")
	require.Contains(t, prompt, "vegetarian")
}

// TestTipsPrompt verifies the tips prompt shape.
func TestTipsPrompt(t *testing.T) {
	p := NewPromptBuilder()

	prompt := p.TipsPrompt(request_models.Destination{City: "Rome", Country: "Italy"}, "budget", "EUR", 600)

	require.Contains(t, prompt, "travel tips for Rome, Italy")
	require.Contains(t, prompt, "Budget: EUR 600")
	require.Contains(t, prompt, "JSON array of strings")
}

// TestInsightsPrompt verifies every required section key appears in the
// requested structure.
func TestInsightsPrompt(t *testing.T) {
	p := NewPromptBuilder()

	prompt := p.InsightsPrompt("Tokyo", "Japan")

	require.Contains(t, prompt, "travel insights for Tokyo, Japan")
	for _, key := range insightKeys {
		require.Contains(t, prompt, key)
	}
}

// TestActivitySuggestionsPrompt verifies location and preferences are
// embedded and the reply schema is requested.
func TestActivitySuggestionsPrompt(t *testing.T) {
	p := NewPromptBuilder()

	prompt := p.ActivitySuggestionsPrompt("Lisbon", request_models.Preferences{
		Interests: []string{"seafood"},
	})

	require.Contains(t, prompt, "Suggest activities in Lisbon")
	require.Contains(t, prompt, "seafood")
	require.True(t, strings.Contains(prompt, `"bestTime"`))
}
