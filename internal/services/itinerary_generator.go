package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/memcache"
	"wanderwise/pkg/retry"
	"wanderwise/pkg/utils"
)

const (
	maxTripDays = 4
	chunkSize   = 2

	defaultCity        = "Unknown City"
	defaultCountry     = "Unknown Country"
	defaultTravelStyle = "balanced"
	defaultBudget      = 500
	defaultCurrency    = "USD"

	insightsCacheTTL = time.Hour
)

// ItineraryGenerator drives the full generation pipeline: normalize the
// request, schedule it into chunks, prompt the model per chunk with retry,
// clean and validate each reply, then assemble the final result.
type ItineraryGenerator struct {
	client    utils.ModelClient
	prompts   *PromptBuilder
	validator *ResponseValidator
	insights  *memcache.InsightsCache[*response_models.DestinationInsights]
	logger    *zap.Logger
}

func NewItineraryGenerator(client utils.ModelClient, logger *zap.Logger) *ItineraryGenerator {
	return &ItineraryGenerator{
		client:    client,
		prompts:   NewPromptBuilder(),
		validator: NewResponseValidator(),
		insights:  memcache.NewInsightsCache[*response_models.DestinationInsights](insightsCacheTTL),
		logger:    logger,
	}
}

// normalizedRequest is a generation request after defaulting and clamping.
// Dates are concrete days, never more than maxTripDays of them.
type normalizedRequest struct {
	Destination request_models.Destination
	Dates       []string
	TravelStyle string
	Planned     float64
	Currency    string
	Preferences request_models.Preferences
}

func (n *normalizedRequest) StartDate() string { return n.Dates[0] }
func (n *normalizedRequest) EndDate() string   { return n.Dates[len(n.Dates)-1] }

// normalizeRequest fills defaults for anything missing or unusable and
// clamps the trip window. It never rejects: a fully empty request still
// yields a valid one-day trip starting today.
func (g *ItineraryGenerator) normalizeRequest(req *request_models.GenerateItineraryRequest) *normalizedRequest {
	n := &normalizedRequest{
		Destination: req.Destination,
		TravelStyle: strings.TrimSpace(req.TravelStyle),
		Planned:     req.Budget.Planned,
		Currency:    strings.TrimSpace(req.Budget.Currency),
		Preferences: req.Preferences,
	}

	if strings.TrimSpace(n.Destination.City) == "" {
		n.Destination.City = defaultCity
	}
	if strings.TrimSpace(n.Destination.Country) == "" {
		n.Destination.Country = defaultCountry
	}
	if len(n.Destination.Coordinates) != 2 {
		n.Destination.Coordinates = []float64{0, 0}
	}
	if n.TravelStyle == "" {
		n.TravelStyle = defaultTravelStyle
	}
	if n.Planned <= 0 {
		n.Planned = defaultBudget
	}
	if n.Currency == "" {
		n.Currency = defaultCurrency
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || end.Before(start) {
		end = start.AddDate(0, 0, 1)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	if days > maxTripDays {
		days = maxTripDays
	}

	n.Dates = make([]string, days)
	for i := 0; i < days; i++ {
		n.Dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return n
}

// chunkDates splits the trip dates into consecutive chunks of at most
// chunkSize days each.
func chunkDates(dates []string) [][]string {
	var chunks [][]string
	for i := 0; i < len(dates); i += chunkSize {
		end := i + chunkSize
		if end > len(dates) {
			end = len(dates)
		}
		chunks = append(chunks, dates[i:end])
	}
	return chunks
}

// GenerateItinerary runs the whole pipeline for one request. Chunks are
// generated sequentially so each prompt can assume its predecessors
// succeeded; a single chunk exhausting its retries fails the request.
func (g *ItineraryGenerator) GenerateItinerary(ctx context.Context, req *request_models.GenerateItineraryRequest) (*response_models.GenerationResult, *request_models.GenerateItineraryRequest, error) {
	n := g.normalizeRequest(req)
	chunks := chunkDates(n.Dates)
	dailyBudget := math.Floor(n.Planned / float64(len(chunks)))

	g.logger.Info("starting itinerary generation",
		zap.String("city", n.Destination.City),
		zap.String("country", n.Destination.Country),
		zap.Int("days", len(n.Dates)),
		zap.Int("chunks", len(chunks)),
		zap.Float64("daily_budget", dailyBudget),
	)

	var dayPlans []response_models.DayPlan
	chunkActivityTotal := 0
	for i, chunk := range chunks {
		plans, err := g.generateChunk(ctx, n, chunk, i+1, len(chunks), dailyBudget)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		for j := range plans {
			chunkActivityTotal += len(plans[j].Activities)
		}
		dayPlans = append(dayPlans, plans...)
	}

	tips, err := g.generateTips(ctx, n)
	if err != nil {
		return nil, nil, fmt.Errorf("tips: %w", err)
	}

	result, err := g.assemble(n, dayPlans, tips, chunkActivityTotal)
	if err != nil {
		return nil, nil, err
	}

	normalized := &request_models.GenerateItineraryRequest{
		Destination: n.Destination,
		StartDate:   n.StartDate(),
		EndDate:     n.EndDate(),
		TravelStyle: n.TravelStyle,
		Budget:      request_models.Budget{Planned: n.Planned, Currency: n.Currency},
		Preferences: n.Preferences,
	}
	return result, normalized, nil
}

func (g *ItineraryGenerator) generateChunk(ctx context.Context, n *normalizedRequest, dates []string, chunkIndex, totalChunks int, dailyBudget float64) ([]response_models.DayPlan, error) {
	prompt := g.prompts.DayPlanPrompt(ChunkContext{
		Destination: n.Destination,
		Dates:       dates,
		TravelStyle: n.TravelStyle,
		Currency:    n.Currency,
		DailyBudget: dailyBudget,
		Preferences: n.Preferences,
		ChunkIndex:  chunkIndex,
		TotalChunks: totalChunks,
	})

	cfg := retry.DefaultConfig()
	cfg.OnRetry = func(err error, attempt int, delay time.Duration) {
		g.logger.Warn("retrying day plan generation",
			zap.Int("chunk", chunkIndex),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	var plans []response_models.DayPlan
	err := retry.Do(ctx, g.logger, cfg, func(ctx context.Context) error {
		raw, err := g.client.Invoke(ctx, prompt)
		if err != nil {
			return err
		}
		clean, err := utils.ExtractJSON(raw)
		if err != nil {
			return err
		}
		plans, err = g.validator.ValidateDayPlans(clean, n.Currency, dates)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (g *ItineraryGenerator) generateTips(ctx context.Context, n *normalizedRequest) ([]string, error) {
	prompt := g.prompts.TipsPrompt(n.Destination, n.TravelStyle, n.Currency, n.Planned)

	cfg := retry.AuxiliaryConfig()
	cfg.OnRetry = func(err error, attempt int, delay time.Duration) {
		g.logger.Warn("retrying tips generation",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	var tips []string
	err := retry.Do(ctx, g.logger, cfg, func(ctx context.Context) error {
		raw, err := g.client.Invoke(ctx, prompt)
		if err != nil {
			return err
		}
		clean, err := utils.ExtractJSON(raw)
		if err != nil {
			return err
		}
		tips, err = g.validator.ValidateTips(clean)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tips, nil
}

// assemble joins per-chunk day plans into the final result and cross-checks
// the merge: the assembled plan must carry exactly the normalized dates in
// ascending order, and its activity count must agree with the total the
// chunk loop accumulated as each chunk arrived. Disagreement means a chunk
// was lost or duplicated in the merge.
func (g *ItineraryGenerator) assemble(n *normalizedRequest, dayPlans []response_models.DayPlan, tips []string, chunkActivityTotal int) (*response_models.GenerationResult, error) {
	if len(dayPlans) != len(n.Dates) {
		return nil, &utils.AssemblyInconsistencyError{
			Expected: fmt.Sprintf("%d day plans", len(n.Dates)),
			Actual:   fmt.Sprintf("%d day plans", len(dayPlans)),
		}
	}

	recount := 0
	actual := 0.0
	for i := range dayPlans {
		if dayPlans[i].Date != n.Dates[i] {
			return nil, &utils.AssemblyInconsistencyError{
				Expected: fmt.Sprintf("date %s at position %d", n.Dates[i], i),
				Actual:   dayPlans[i].Date,
			}
		}
		recount += len(dayPlans[i].Activities)
		for _, a := range dayPlans[i].Activities {
			actual += a.Cost.Amount
		}
	}
	if recount != chunkActivityTotal {
		return nil, &utils.AssemblyInconsistencyError{
			Expected: fmt.Sprintf("%d activities", chunkActivityTotal),
			Actual:   fmt.Sprintf("%d activities", recount),
		}
	}

	return &response_models.GenerationResult{
		DayPlans: dayPlans,
		Tips:     dedupTips(tips),
		Budget: response_models.BudgetSummary{
			Planned:  n.Planned,
			Actual:   actual,
			Currency: n.Currency,
		},
	}, nil
}

// dedupTips drops duplicate tips, preserving order, and caps the list.
func dedupTips(tips []string) []string {
	seen := make(map[string]struct{}, len(tips))
	out := make([]string, 0, len(tips))
	for _, t := range tips {
		key := strings.ToLower(strings.TrimSpace(t))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if len(out) == maxTips {
			break
		}
	}
	return out
}

// GetDestinationInsights returns cached insights when fresh, otherwise asks
// the model and caches the validated result for an hour.
func (g *ItineraryGenerator) GetDestinationInsights(ctx context.Context, city, country string) (*response_models.DestinationInsights, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" || country == "" {
		return nil, utils.ErrInvalidInput
	}

	key := strings.ToLower(city + "," + country)
	if cached, ok := g.insights.Get(key); ok {
		g.logger.Debug("insights cache hit", zap.String("key", key))
		return cached, nil
	}

	prompt := g.prompts.InsightsPrompt(city, country)

	var insights *response_models.DestinationInsights
	err := retry.Do(ctx, g.logger, retry.AuxiliaryConfig(), func(ctx context.Context) error {
		raw, err := g.client.Invoke(ctx, prompt)
		if err != nil {
			return err
		}
		clean, err := utils.ExtractJSON(raw)
		if err != nil {
			return err
		}
		insights, err = g.validator.ValidateInsights(clean)
		return err
	})
	if err != nil {
		return nil, err
	}

	g.insights.Set(key, insights)
	return insights, nil
}

// SuggestActivities asks the model for free-form activity suggestions
// matching the caller's preferences.
func (g *ItineraryGenerator) SuggestActivities(ctx context.Context, req *request_models.SuggestActivitiesRequest) ([]response_models.ActivitySuggestion, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, utils.ErrInvalidInput
	}

	prompt := g.prompts.ActivitySuggestionsPrompt(location, req.Preferences)

	var suggestions []response_models.ActivitySuggestion
	err := retry.Do(ctx, g.logger, retry.AuxiliaryConfig(), func(ctx context.Context) error {
		raw, err := g.client.Invoke(ctx, prompt)
		if err != nil {
			return err
		}
		clean, err := utils.ExtractJSON(raw)
		if err != nil {
			return err
		}
		suggestions, err = g.validator.ValidateActivitySuggestions(clean)
		return err
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}
