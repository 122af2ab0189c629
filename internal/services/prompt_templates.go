package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"wanderwise/internal/models/request_models"
)

// ChunkContext carries everything the day-plan prompt needs for one chunk
// of the trip. Dates are YYYY-MM-DD and cover this chunk only.
type ChunkContext struct {
	Destination request_models.Destination
	Dates       []string
	TravelStyle string
	Currency    string
	DailyBudget float64
	Preferences request_models.Preferences
	ChunkIndex  int
	TotalChunks int
}

// PromptBuilder renders deterministic prompts for the model. Each prompt
// embeds the exact JSON shape expected back, since the validators reject
// anything looser.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (p *PromptBuilder) DayPlanPrompt(c ChunkContext) string {
	prefs := "No specific preferences"
	if raw, err := json.MarshalIndent(c.Preferences, "", "  "); err == nil {
		prefs = string(raw)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a travel itinerary for days %d of %d in %s, %s.\n",
		c.ChunkIndex, c.TotalChunks, c.Destination.City, c.Destination.Country)
	fmt.Fprintf(&b, "Dates: From %s to %s\n", c.Dates[0], c.Dates[len(c.Dates)-1])
	fmt.Fprintf(&b, "Style: %s\n", c.TravelStyle)
	fmt.Fprintf(&b, "Daily Budget: %s %.0f\n", c.Currency, c.DailyBudget)
	fmt.Fprintf(&b, "Preferences: %s\n\n", prefs)

	fmt.Fprintf(&b, `CRITICAL FORMATTING REQUIREMENTS:
1. You MUST return a single JSON object with NO additional text, NO markdown formatting
2. The response MUST be valid JSON that can be parsed directly
3. Every activity MUST include ALL required fields with proper formatting
4. Location coordinates MUST be [longitude, latitude] array with valid numbers
5. Times MUST be in 24-hour format (HH:MM)
6. All text fields MUST be under specified length limits
7. Cost amounts MUST be numbers (not strings)
8. Dates MUST be in YYYY-MM-DD format (e.g., %s)

EXACT Required JSON Structure with EXAMPLE:
{
  "dayPlans": [
    {
      "date": "%s",
      "activities": [
        {
          "type": "Cultural",
          "title": "Visit Senso-ji Temple",
          "description": "Explore Tokyo's oldest Buddhist temple, known for its iconic Kaminarimon Gate",
          "startTime": "09:00",
          "endTime": "11:00",
          "cost": {
            "amount": 0,
            "currency": "%s"
          },
          "location": {
            "name": "Senso-ji Temple",
            "address": "2-3-1 Asakusa, Taito City, Tokyo 111-0032, Japan",
            "coordinates": [139.7968, 35.7141]
          },
          "notes": "Free admission. Consider arriving early to avoid crowds"
        }
      ],
      "notes": "Start the day early to avoid crowds"
    }
  ]
}

COST STRUCTURE REQUIREMENTS:
1. "cost" object MUST contain both "amount" and "currency"
2. "amount" MUST be a number (not a string)
3. For free activities, use "amount": 0
4. "currency" MUST be "%s"
5. Total daily costs should not exceed %.0f %s

LOCATION STRUCTURE REQUIREMENTS:
1. Every location MUST include all three fields: name, address, and coordinates
2. Coordinates MUST be an array of exactly 2 numbers: [longitude, latitude]
3. Longitude must be between -180 and 180
4. Latitude must be between -90 and 90

Activity Types (use one of these exactly):
%s

Activity Guidelines:
1. Return exactly one day plan per requested date, in date order: %s
2. Include 3-4 activities per day
3. Mix different activity types
4. Space activities with realistic timing, no overlapping time windows
5. Keep total daily costs within %.0f %s
6. Use accurate coordinates for real locations
7. Include breaks between activities for travel time
8. For free attractions, explicitly set cost amount to 0

Remember: The response MUST be a valid JSON object with NO additional text or formatting.`,
		c.Dates[0], c.Dates[0], c.Currency, c.Currency, c.DailyBudget, c.Currency,
		bulletList(ActivityTypes), strings.Join(c.Dates, ", "), c.DailyBudget, c.Currency)

	return b.String()
}

func (p *PromptBuilder) TipsPrompt(dest request_models.Destination, travelStyle, currency string, planned float64) string {
	return fmt.Sprintf(`Generate 5-7 practical travel tips for %s, %s.
Consider:
- Travel style: %s
- Budget: %s %.0f

IMPORTANT:
1. Respond with ONLY a JSON array of strings
2. NO markdown, NO formatting
3. Each tip maximum 200 characters
4. Focus on practical, actionable advice

Example format:
[
  "First practical tip",
  "Second practical tip",
  "Third practical tip"
]`, dest.City, dest.Country, travelStyle, currency, planned)
}

func (p *PromptBuilder) InsightsPrompt(city, country string) string {
	return fmt.Sprintf(`Provide travel insights for %s, %s.

IMPORTANT:
1. Respond with ONLY a JSON object
2. NO markdown, NO formatting
3. Each section maximum 200 characters
4. Focus on current, accurate information

Required JSON structure:
{
  "bestTimeToVisit": "When to visit",
  "localCustoms": "Customs and etiquette",
  "transportation": "Getting around",
  "safety": "Safety tips",
  "localExperiences": "Must-try experiences"
}`, city, country)
}

func (p *PromptBuilder) ActivitySuggestionsPrompt(location string, prefs request_models.Preferences) string {
	raw, err := json.Marshal(prefs)
	if err != nil {
		raw = []byte("{}")
	}
	return fmt.Sprintf(`Suggest activities in %s matching these preferences: %s.

IMPORTANT:
1. Respond with ONLY a JSON object
2. NO markdown, NO formatting
3. Keep descriptions under 200 characters
4. Include specific details

Required JSON structure:
{
  "activities": [
    {
      "name": "Activity name",
      "description": "Brief description",
      "duration": "Estimated duration",
      "cost": "Estimated cost",
      "bestTime": "Best time to do this"
    }
  ]
}`, location, raw)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return strings.TrimRight(b.String(), "\n")
}
