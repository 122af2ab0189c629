package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/utils"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 250
	maxNotesLen       = 200
	maxActivities     = 8
	maxTips           = 10
	maxActivityHours  = 8
)

// ActivityTypes is the closed set the model must choose from.
var ActivityTypes = []string{
	"Cultural", "Local", "Relaxation", "Transport",
	"Dining", "Shopping", "Entertainment", "Sightseeing",
}

var activityTypeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ActivityTypes))
	for _, t := range ActivityTypes {
		m[t] = struct{}{}
	}
	return m
}()

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// insightKeys are the required sections of a destination insights object.
var insightKeys = []string{
	"bestTimeToVisit",
	"localCustoms",
	"transportation",
	"safety",
	"localExperiences",
}

// ResponseValidator turns cleaned model JSON into validated domain values.
// Every violation is a *utils.SchemaValidationError naming the field and
// index, which the retry orchestrator treats as terminal.
type ResponseValidator struct{}

func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{}
}

// decode unmarshals cleaned JSON into out. A type mismatch in otherwise
// well-formed JSON is a schema violation, not a malformed response: the
// cleaner already guaranteed syntactic validity.
func decode(clean string, out any, field string) error {
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			f := typeErr.Field
			if f == "" {
				f = field
			}
			return utils.NewValidationError(f, -1, "expected %s, got %s", typeErr.Type.String(), typeErr.Value)
		}
		return utils.NewMalformedError("cleaned response failed to decode", err)
	}
	return nil
}

// ValidateDayPlans checks a day-plan response against the domain schema and
// the chunk it was generated for: the reply must carry exactly
// len(expectedDates) day plans, dated as requested, in order.
func (v *ResponseValidator) ValidateDayPlans(clean, currency string, expectedDates []string) ([]response_models.DayPlan, error) {
	var envelope struct {
		DayPlans []response_models.DayPlan `json:"dayPlans"`
	}
	if err := decode(clean, &envelope, "dayPlans"); err != nil {
		return nil, err
	}

	if envelope.DayPlans == nil {
		return nil, utils.NewValidationError("dayPlans", -1, "missing dayPlans array")
	}
	if len(envelope.DayPlans) == 0 {
		return nil, utils.NewValidationError("dayPlans", -1, "no day plans provided")
	}
	if len(envelope.DayPlans) != len(expectedDates) {
		return nil, utils.NewValidationError("dayPlans", -1,
			"expected %d day plans, got %d", len(expectedDates), len(envelope.DayPlans))
	}

	for i := range envelope.DayPlans {
		if err := v.validateDayPlan(&envelope.DayPlans[i], i, currency, expectedDates[i]); err != nil {
			return nil, err
		}
	}
	return envelope.DayPlans, nil
}

func (v *ResponseValidator) validateDayPlan(dp *response_models.DayPlan, dayIndex int, currency, expectedDate string) error {
	field := fmt.Sprintf("dayPlans[%d]", dayIndex)

	if !dateRe.MatchString(dp.Date) {
		return utils.NewValidationError(field+".date", -1, "invalid date format %q, must be YYYY-MM-DD", dp.Date)
	}
	if _, err := time.Parse("2006-01-02", dp.Date); err != nil {
		return utils.NewValidationError(field+".date", -1, "invalid calendar date %q", dp.Date)
	}
	if expectedDate != "" && dp.Date != expectedDate {
		return utils.NewValidationError(field+".date", -1, "expected date %s, got %s", expectedDate, dp.Date)
	}

	if len(dp.Activities) == 0 {
		return utils.NewValidationError(field+".activities", -1, "no activities provided")
	}
	if len(dp.Activities) > maxActivities {
		return utils.NewValidationError(field+".activities", -1,
			"too many activities: %d, maximum is %d", len(dp.Activities), maxActivities)
	}
	if len(dp.Notes) > maxNotesLen {
		return utils.NewValidationError(field+".notes", -1, "notes exceed %d characters", maxNotesLen)
	}

	for i := range dp.Activities {
		if err := v.validateActivity(&dp.Activities[i], i, currency, field); err != nil {
			return err
		}
	}

	// Activities must be ordered by start time with no overlapping windows:
	// each must start at or after the previous one ends.
	previousEnd := 0
	for i := range dp.Activities {
		start, _ := parseClock(dp.Activities[i].StartTime)
		if start < previousEnd {
			return utils.NewValidationError(field+".activities", i,
				"time window overlaps previous activity (starts %s before previous end)", dp.Activities[i].StartTime)
		}
		previousEnd, _ = parseClock(dp.Activities[i].EndTime)
	}

	return nil
}

func (v *ResponseValidator) validateActivity(a *response_models.Activity, index int, currency, dayField string) error {
	field := dayField + ".activities"

	if strings.TrimSpace(a.Type) == "" {
		return utils.NewValidationError(field, index, "missing activity type")
	}
	if _, ok := activityTypeSet[a.Type]; !ok {
		return utils.NewValidationError(field, index,
			"invalid activity type %q, must be one of: %s", a.Type, strings.Join(ActivityTypes, ", "))
	}

	if strings.TrimSpace(a.Title) == "" {
		return utils.NewValidationError(field, index, "missing title")
	}
	if len(a.Title) > maxTitleLen {
		return utils.NewValidationError(field, index, "title exceeds %d characters", maxTitleLen)
	}
	if len(a.Description) > maxDescriptionLen {
		return utils.NewValidationError(field, index, "description exceeds %d characters", maxDescriptionLen)
	}
	if len(a.Notes) > maxNotesLen {
		return utils.NewValidationError(field, index, "notes exceed %d characters", maxNotesLen)
	}

	if err := v.validateTiming(a.StartTime, a.EndTime, index, field); err != nil {
		return err
	}
	if err := v.validateCost(&a.Cost, index, currency, field); err != nil {
		return err
	}
	return v.validateLocation(&a.Location, index, field)
}

func (v *ResponseValidator) validateTiming(startTime, endTime string, index int, field string) error {
	start, err := parseClock(startTime)
	if err != nil {
		return utils.NewValidationError(field, index, "invalid startTime %q: %v", startTime, err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return utils.NewValidationError(field, index, "invalid endTime %q: %v", endTime, err)
	}

	if end <= start {
		return utils.NewValidationError(field, index, "endTime %s must be after startTime %s", endTime, startTime)
	}
	if end-start > maxActivityHours*60 {
		return utils.NewValidationError(field, index, "duration exceeds %d hours", maxActivityHours)
	}
	return nil
}

func (v *ResponseValidator) validateCost(c *response_models.Cost, index int, currency, field string) error {
	if c.Amount < 0 {
		return utils.NewValidationError(field, index, "cost amount cannot be negative")
	}
	if c.Currency == "" {
		return utils.NewValidationError(field, index, "missing cost currency")
	}
	if c.Currency != currency {
		return utils.NewValidationError(field, index,
			"invalid currency: expected %s, got %s", currency, c.Currency)
	}
	return nil
}

func (v *ResponseValidator) validateLocation(l *response_models.Location, index int, field string) error {
	if strings.TrimSpace(l.Name) == "" {
		return utils.NewValidationError(field, index, "missing location name")
	}
	if strings.TrimSpace(l.Address) == "" {
		return utils.NewValidationError(field, index, "missing location address")
	}
	if len(l.Coordinates) != 2 {
		return utils.NewValidationError(field, index,
			"coordinates must be [longitude, latitude], got %d values", len(l.Coordinates))
	}

	lon, lat := l.Coordinates[0], l.Coordinates[1]
	if lon < -180 || lon > 180 {
		return utils.NewValidationError(field, index, "longitude %g out of range [-180, 180]", lon)
	}
	if lat < -90 || lat > 90 {
		return utils.NewValidationError(field, index, "latitude %g out of range [-90, 90]", lat)
	}
	return nil
}

// ValidateTips checks a tips response: 1-10 strings, each at most 200 chars.
func (v *ResponseValidator) ValidateTips(clean string) ([]string, error) {
	var tips []string
	if err := decode(clean, &tips, "tips"); err != nil {
		return nil, err
	}

	if len(tips) == 0 {
		return nil, utils.NewValidationError("tips", -1, "no tips provided")
	}
	if len(tips) > maxTips {
		return nil, utils.NewValidationError("tips", -1, "too many tips: %d, maximum is %d", len(tips), maxTips)
	}
	for i, tip := range tips {
		if strings.TrimSpace(tip) == "" {
			return nil, utils.NewValidationError("tips", i, "tip is empty")
		}
		if len(tip) > maxNotesLen {
			return nil, utils.NewValidationError("tips", i, "tip exceeds %d characters", maxNotesLen)
		}
	}
	return tips, nil
}

// ValidateInsights checks a destination insights object: all five sections
// present, non-empty, each at most 200 chars.
func (v *ResponseValidator) ValidateInsights(clean string) (*response_models.DestinationInsights, error) {
	var raw map[string]any
	if err := decode(clean, &raw, "insights"); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(insightKeys))
	for _, key := range insightKeys {
		val, ok := raw[key]
		if !ok {
			return nil, utils.NewValidationError(key, -1, "missing insight section")
		}
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, utils.NewValidationError(key, -1, "insight section must be a non-empty string")
		}
		if len(s) > maxNotesLen {
			return nil, utils.NewValidationError(key, -1, "insight section exceeds %d characters", maxNotesLen)
		}
		values[key] = s
	}

	return &response_models.DestinationInsights{
		BestTimeToVisit:  values["bestTimeToVisit"],
		LocalCustoms:     values["localCustoms"],
		Transportation:   values["transportation"],
		Safety:           values["safety"],
		LocalExperiences: values["localExperiences"],
	}, nil
}

// ValidateActivitySuggestions checks a suggestions response.
func (v *ResponseValidator) ValidateActivitySuggestions(clean string) ([]response_models.ActivitySuggestion, error) {
	var envelope struct {
		Activities []response_models.ActivitySuggestion `json:"activities"`
	}
	if err := decode(clean, &envelope, "activities"); err != nil {
		return nil, err
	}

	if len(envelope.Activities) == 0 {
		return nil, utils.NewValidationError("activities", -1, "no activity suggestions provided")
	}
	for i, s := range envelope.Activities {
		if s.Name == "" || s.Description == "" || s.Duration == "" || s.Cost == "" || s.BestTime == "" {
			return nil, utils.NewValidationError("activities", i, "missing required suggestion fields")
		}
		if len(s.Description) > maxNotesLen {
			return nil, utils.NewValidationError("activities", i, "description exceeds %d characters", maxNotesLen)
		}
	}
	return envelope.Activities, nil
}

// parseClock converts strict HH:MM (24h) into minutes since midnight.
func parseClock(value string) (int, error) {
	if !timeRe.MatchString(value) {
		return 0, fmt.Errorf("must be HH:MM")
	}
	hours := int(value[0]-'0')*10 + int(value[1]-'0')
	minutes := int(value[3]-'0')*10 + int(value[4]-'0')
	if hours > 23 {
		return 0, fmt.Errorf("hours must be 0-23")
	}
	if minutes > 59 {
		return 0, fmt.Errorf("minutes must be 0-59")
	}
	return hours*60 + minutes, nil
}
