package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/utils"
)

type AIController struct {
	generator        *services.ItineraryGenerator
	itineraryService services.ItineraryServiceInterface
}

func NewAIController(generator *services.ItineraryGenerator, itineraryService services.ItineraryServiceInterface) *AIController {
	return &AIController{
		generator:        generator,
		itineraryService: itineraryService,
	}
}

// GenerateItinerary godoc
// @Summary Generate a travel itinerary
// @Description Generate a full AI-planned itinerary for the given destination and dates, persist it as a draft, and return it
// @Tags AI
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Destination, dates, budget, preferences"
// @Success 200 {object} response_models.ItineraryDetail
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/generate-itinerary [post]
func (a *AIController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userId := c.GetString("user_id")

	result, normalized, err := a.generator.GenerateItinerary(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	detail, err := a.itineraryService.SaveGenerated(c.Request.Context(), userId, normalized, result)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Itinerary generated successfully")
}

// GetDestinationInsights godoc
// @Summary Get destination insights
// @Description Fetch AI-generated travel insights for a city, cached for one hour
// @Tags AI
// @Produce json
// @Param city query string true "City name"
// @Param country query string true "Country name"
// @Success 200 {object} response_models.DestinationInsights
// @Router /ai/insights [get]
func (a *AIController) GetDestinationInsights(c *gin.Context) {
	city := c.Query("city")
	country := c.Query("country")
	if city == "" || country == "" {
		utils.RespondError(c, http.StatusBadRequest, "city and country are required")
		return
	}

	insights, err := a.generator.GetDestinationInsights(c.Request.Context(), city, country)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "Insights fetched successfully")
}

// SuggestActivities godoc
// @Summary Suggest activities
// @Description Suggest activities in a location matching the caller's preferences
// @Tags AI
// @Accept json
// @Produce json
// @Param request body request_models.SuggestActivitiesRequest true "Location and preferences"
// @Success 200 {array} response_models.ActivitySuggestion
// @Router /ai/suggest-activities [post]
func (a *AIController) SuggestActivities(c *gin.Context) {
	var req request_models.SuggestActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}

	suggestions, err := a.generator.SuggestActivities(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Activity suggestions fetched successfully")
}
