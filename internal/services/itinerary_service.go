package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	dbm "wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/utils"
)

type ItineraryServiceInterface interface {
	SaveGenerated(ctx context.Context, userId string, req *request_models.GenerateItineraryRequest, result *response_models.GenerationResult) (*response_models.ItineraryDetail, error)
	GetListOfItinerariesByUserId(ctx context.Context, page int, pagesize int, userId string) ([]response_models.ItinerarySummary, error)
	GetItineraryById(ctx context.Context, userId string, itineraryId string) (*response_models.ItineraryDetail, error)
	UpdateStatus(ctx context.Context, userId string, itineraryId string, status string) error
	ShareItinerary(ctx context.Context, userId string, itineraryId string, req *request_models.ShareItineraryRequest) error
	DeleteItinerary(ctx context.Context, userId string, itineraryId string) error
}

type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
	logger        *zap.Logger
}

func NewItineraryService(itineraryRepo repositories.ItineraryRepository, logger *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		logger:        logger,
	}
}

// SaveGenerated converts a validated generation result into relational rows
// and stores them. New itineraries start as drafts.
func (s *ItineraryService) SaveGenerated(ctx context.Context, userId string, req *request_models.GenerateItineraryRequest, result *response_models.GenerationResult) (*response_models.ItineraryDetail, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	prefs, err := json.Marshal(req.Preferences)
	if err != nil {
		prefs = []byte("{}")
	}

	var lon, lat float64
	if len(req.Destination.Coordinates) == 2 {
		lon, lat = req.Destination.Coordinates[0], req.Destination.Coordinates[1]
	}

	itinerary := &dbm.Itinerary{
		UserID:        userId,
		Title:         fmt.Sprintf("%s Trip", req.Destination.City),
		City:          req.Destination.City,
		Country:       req.Destination.Country,
		DestLon:       lon,
		DestLat:       lat,
		StartDate:     startDate,
		EndDate:       endDate,
		TravelStyle:   req.TravelStyle,
		PlannedBudget: result.Budget.Planned,
		ActualBudget:  result.Budget.Actual,
		Currency:      result.Budget.Currency,
		Status:        dbm.StatusDraft,
		AIGenerated:   true,
		Tips:          result.Tips,
		Preferences:   datatypes.JSON(prefs),
		Days:          make([]dbm.ItineraryDay, 0, len(result.DayPlans)),
	}

	for i, dp := range result.DayPlans {
		date, err := time.Parse("2006-01-02", dp.Date)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}

		day := dbm.ItineraryDay{
			Date:       date,
			DayNumber:  i + 1,
			Notes:      dp.Notes,
			Activities: make([]dbm.ItineraryActivity, 0, len(dp.Activities)),
		}
		for pos, a := range dp.Activities {
			var aLon, aLat float64
			if len(a.Location.Coordinates) == 2 {
				aLon, aLat = a.Location.Coordinates[0], a.Location.Coordinates[1]
			}
			day.Activities = append(day.Activities, dbm.ItineraryActivity{
				ActivityType: a.Type,
				Title:        a.Title,
				Description:  a.Description,
				StartTime:    a.StartTime,
				EndTime:      a.EndTime,
				CostAmount:   a.Cost.Amount,
				CostCurrency: a.Cost.Currency,
				LocationName: a.Location.Name,
				Address:      a.Location.Address,
				Lon:          aLon,
				Lat:          aLat,
				Notes:        a.Notes,
				Position:     pos,
			})
		}
		itinerary.Days = append(itinerary.Days, day)
	}

	if err := s.itineraryRepo.CreateItinerary(ctx, itinerary); err != nil {
		s.logger.Error("failed to persist itinerary",
			zap.String("user_id", userId),
			zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return toDetail(itinerary), nil
}

func (s *ItineraryService) GetListOfItinerariesByUserId(ctx context.Context, page, pagesize int, userId string) ([]response_models.ItinerarySummary, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pagesize < 1 || pagesize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	itineraries, err := s.itineraryRepo.GetListOfItinerariesByUserId(ctx, page, pagesize, userId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItinerarySummary, 0, len(itineraries))
	for i := range itineraries {
		out = append(out, toSummary(&itineraries[i]))
	}
	return out, nil
}

func (s *ItineraryService) GetItineraryById(ctx context.Context, userId string, itineraryId string) (*response_models.ItineraryDetail, error) {
	itinerary, err := s.fetchOwned(ctx, userId, itineraryId, true)
	if err != nil {
		return nil, err
	}
	return toDetail(itinerary), nil
}

func (s *ItineraryService) UpdateStatus(ctx context.Context, userId string, itineraryId string, status string) error {
	if !dbm.ValidStatus(status) {
		return utils.ErrInvalidInput
	}
	if _, err := s.fetchOwned(ctx, userId, itineraryId, false); err != nil {
		return err
	}
	if err := s.itineraryRepo.UpdateStatus(ctx, itineraryId, dbm.ItineraryStatus(status)); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ItineraryService) ShareItinerary(ctx context.Context, userId string, itineraryId string, req *request_models.ShareItineraryRequest) error {
	if _, err := s.fetchOwned(ctx, userId, itineraryId, false); err != nil {
		return err
	}
	if err := s.itineraryRepo.UpdateSharing(ctx, itineraryId, req.IsPublic, req.SharedWith); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ItineraryService) DeleteItinerary(ctx context.Context, userId string, itineraryId string) error {
	if _, err := s.fetchOwned(ctx, userId, itineraryId, false); err != nil {
		return err
	}
	if err := s.itineraryRepo.DeleteItinerary(ctx, itineraryId); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// fetchOwned loads an itinerary and enforces access: owners always pass;
// when allowShared, public itineraries and explicit shares pass too.
func (s *ItineraryService) fetchOwned(ctx context.Context, userId string, itineraryId string, allowShared bool) (*dbm.Itinerary, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, itineraryId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	if itinerary.UserID == userId {
		return itinerary, nil
	}
	if allowShared {
		if itinerary.IsPublic {
			return itinerary, nil
		}
		for _, shared := range itinerary.SharedWith {
			if shared == userId {
				return itinerary, nil
			}
		}
	}
	return nil, utils.ErrForbidden
}

func toSummary(it *dbm.Itinerary) response_models.ItinerarySummary {
	return response_models.ItinerarySummary{
		ID:          it.ID.String(),
		Title:       it.Title,
		City:        it.City,
		Country:     it.Country,
		StartDate:   it.StartDate.Format("2006-01-02"),
		EndDate:     it.EndDate.Format("2006-01-02"),
		Status:      string(it.Status),
		TravelStyle: it.TravelStyle,
		Planned:     it.PlannedBudget,
		Actual:      it.ActualBudget,
		Currency:    it.Currency,
		AIGenerated: it.AIGenerated,
	}
}

func toDetail(it *dbm.Itinerary) *response_models.ItineraryDetail {
	detail := &response_models.ItineraryDetail{
		ItinerarySummary: toSummary(it),
		IsPublic:         it.IsPublic,
		SharedWith:       it.SharedWith,
		Tips:             it.Tips,
		DayPlans:         make([]response_models.DayPlan, 0, len(it.Days)),
	}

	for _, day := range it.Days {
		dp := response_models.DayPlan{
			Date:       day.Date.Format("2006-01-02"),
			Notes:      day.Notes,
			Activities: make([]response_models.Activity, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			dp.Activities = append(dp.Activities, response_models.Activity{
				Type:        a.ActivityType,
				Title:       a.Title,
				Description: a.Description,
				StartTime:   a.StartTime,
				EndTime:     a.EndTime,
				Cost: response_models.Cost{
					Amount:   a.CostAmount,
					Currency: a.CostCurrency,
				},
				Location: response_models.Location{
					Name:        a.LocationName,
					Address:     a.Address,
					Coordinates: []float64{a.Lon, a.Lat},
				},
				Notes: a.Notes,
			})
		}
		detail.DayPlans = append(detail.DayPlans, dp)
	}
	return detail
}
