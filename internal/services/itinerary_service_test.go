package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/utils"
)

// fakeItineraryRepo is an in-memory ItineraryRepository.
type fakeItineraryRepo struct {
	items map[string]*dbm.Itinerary
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{items: make(map[string]*dbm.Itinerary)}
}

func (f *fakeItineraryRepo) CreateItinerary(ctx context.Context, it *dbm.Itinerary) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	f.items[it.ID.String()] = it
	return nil
}

func (f *fakeItineraryRepo) GetItineraryById(ctx context.Context, id string) (*dbm.Itinerary, error) {
	return f.items[id], nil
}

func (f *fakeItineraryRepo) GetListOfItinerariesByUserId(ctx context.Context, page, pagesize int, userId string) ([]dbm.Itinerary, error) {
	var out []dbm.Itinerary
	for _, it := range f.items {
		if it.UserID == userId {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeItineraryRepo) UpdateStatus(ctx context.Context, id string, status dbm.ItineraryStatus) error {
	if it, ok := f.items[id]; ok {
		it.Status = status
	}
	return nil
}

func (f *fakeItineraryRepo) UpdateSharing(ctx context.Context, id string, isPublic *bool, sharedWith []string) error {
	if it, ok := f.items[id]; ok {
		if isPublic != nil {
			it.IsPublic = *isPublic
		}
		if sharedWith != nil {
			it.SharedWith = sharedWith
		}
	}
	return nil
}

func (f *fakeItineraryRepo) DeleteItinerary(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func sampleGeneration() (*request_models.GenerateItineraryRequest, *response_models.GenerationResult) {
	req := &request_models.GenerateItineraryRequest{
		Destination: request_models.Destination{
			City:        "Paris",
			Country:     "France",
			Coordinates: []float64{2.3522, 48.8566},
		},
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-02",
		TravelStyle: "cultural",
		Budget:      request_models.Budget{Planned: 400, Currency: "USD"},
	}
	result := &response_models.GenerationResult{
		DayPlans: []response_models.DayPlan{
			{
				Date: "2026-09-01",
				Activities: []response_models.Activity{{
					Type:        "Sightseeing",
					Title:       "Eiffel Tower",
					Description: "Iconic iron tower with city views",
					StartTime:   "09:00",
					EndTime:     "11:00",
					Cost:        response_models.Cost{Amount: 30, Currency: "USD"},
					Location: response_models.Location{
						Name:        "Eiffel Tower",
						Address:     "Champ de Mars, Paris",
						Coordinates: []float64{2.2945, 48.8584},
					},
				}},
			},
			{
				Date: "2026-09-02",
				Activities: []response_models.Activity{{
					Type:        "Dining",
					Title:       "Bistro lunch",
					Description: "Classic French lunch",
					StartTime:   "12:00",
					EndTime:     "13:30",
					Cost:        response_models.Cost{Amount: 45, Currency: "USD"},
					Location: response_models.Location{
						Name:        "Le Petit Bistro",
						Address:     "12 Rue de la Paix, Paris",
						Coordinates: []float64{2.3316, 48.8693},
					},
				}},
			},
		},
		Tips: []string{"Validate metro tickets"},
		Budget: response_models.BudgetSummary{
			Planned:  400,
			Actual:   75,
			Currency: "USD",
		},
	}
	return req, result
}

// TestSaveGenerated verifies the generated result round-trips through the
// relational form: title derivation, draft status, day and activity order.
func TestSaveGenerated(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewItineraryService(repo, zap.NewNop())

	req, result := sampleGeneration()
	detail, err := svc.SaveGenerated(context.Background(), "user-1", req, result)

	require.NoError(t, err)
	require.Equal(t, "Paris Trip", detail.Title)
	require.Equal(t, string(dbm.StatusDraft), detail.Status)
	require.True(t, detail.AIGenerated)
	require.Equal(t, 400.0, detail.Planned)
	require.Equal(t, 75.0, detail.Actual)
	require.Len(t, detail.DayPlans, 2)
	require.Equal(t, "2026-09-01", detail.DayPlans[0].Date)
	require.Equal(t, "Eiffel Tower", detail.DayPlans[0].Activities[0].Title)
	require.Equal(t, []float64{2.2945, 48.8584}, detail.DayPlans[0].Activities[0].Location.Coordinates)
}

// TestGetItineraryById_access verifies owner, shared, public, and forbidden
// access paths.
func TestGetItineraryById_access(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewItineraryService(repo, zap.NewNop())

	req, result := sampleGeneration()
	detail, err := svc.SaveGenerated(context.Background(), "owner", req, result)
	require.NoError(t, err)

	// Owner reads fine.
	_, err = svc.GetItineraryById(context.Background(), "owner", detail.ID)
	require.NoError(t, err)

	// Stranger is forbidden.
	_, err = svc.GetItineraryById(context.Background(), "stranger", detail.ID)
	require.ErrorIs(t, err, utils.ErrForbidden)

	// Explicit share grants read access.
	err = svc.ShareItinerary(context.Background(), "owner", detail.ID, &request_models.ShareItineraryRequest{
		SharedWith: []string{"friend"},
	})
	require.NoError(t, err)
	_, err = svc.GetItineraryById(context.Background(), "friend", detail.ID)
	require.NoError(t, err)

	// Public read for anyone.
	public := true
	err = svc.ShareItinerary(context.Background(), "owner", detail.ID, &request_models.ShareItineraryRequest{
		IsPublic: &public,
	})
	require.NoError(t, err)
	_, err = svc.GetItineraryById(context.Background(), "stranger", detail.ID)
	require.NoError(t, err)

	// Unknown ID is not found.
	_, err = svc.GetItineraryById(context.Background(), "owner", uuid.NewString())
	require.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

// TestUpdateStatus verifies lifecycle transitions and rejection of unknown
// states.
func TestUpdateStatus(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewItineraryService(repo, zap.NewNop())

	req, result := sampleGeneration()
	detail, err := svc.SaveGenerated(context.Background(), "owner", req, result)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), "owner", detail.ID, "confirmed"))

	got, err := svc.GetItineraryById(context.Background(), "owner", detail.ID)
	require.NoError(t, err)
	require.Equal(t, "confirmed", got.Status)

	err = svc.UpdateStatus(context.Background(), "owner", detail.ID, "archived")
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	// Non-owners cannot change status, even on shared itineraries.
	err = svc.UpdateStatus(context.Background(), "stranger", detail.ID, "completed")
	require.ErrorIs(t, err, utils.ErrForbidden)
}

// TestDeleteItinerary verifies owner-only deletion.
func TestDeleteItinerary(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewItineraryService(repo, zap.NewNop())

	req, result := sampleGeneration()
	detail, err := svc.SaveGenerated(context.Background(), "owner", req, result)
	require.NoError(t, err)

	err = svc.DeleteItinerary(context.Background(), "stranger", detail.ID)
	require.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, svc.DeleteItinerary(context.Background(), "owner", detail.ID))

	_, err = svc.GetItineraryById(context.Background(), "owner", detail.ID)
	require.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

// TestGetListOfItinerariesByUserId_pagination verifies the page guards.
func TestGetListOfItinerariesByUserId_pagination(t *testing.T) {
	svc := NewItineraryService(newFakeItineraryRepo(), zap.NewNop())

	_, err := svc.GetListOfItinerariesByUserId(context.Background(), 0, 10, "u")
	require.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.GetListOfItinerariesByUserId(context.Background(), 1, 500, "u")
	require.ErrorIs(t, err, utils.ErrInvalidPageSize)

	out, err := svc.GetListOfItinerariesByUserId(context.Background(), 1, 10, "u")
	require.NoError(t, err)
	require.Empty(t, out)
}
