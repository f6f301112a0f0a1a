// internal/workers/matching/recommend-opportunities/handler_test.go
package recommendopportunities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftout-matching/internal/common/logger"
	"liftout-matching/internal/matching"
	"liftout-matching/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeTeamStore struct {
	byID map[string]*models.Team
}

func (f *fakeTeamStore) GetByID(_ context.Context, id string) (*models.Team, error) {
	return f.byID[id], nil
}

func (f *fakeTeamStore) SearchAvailable(_ context.Context) ([]models.Team, error) {
	return nil, nil
}

func (f *fakeTeamStore) Featured(_ context.Context, _ int) ([]models.Team, error) {
	return nil, nil
}

type fakeOpportunityStore struct {
	pool    []models.Opportunity
	poolErr error
}

func (f *fakeOpportunityStore) GetByID(_ context.Context, _ string) (*models.Opportunity, error) {
	return nil, nil
}

func (f *fakeOpportunityStore) SearchActive(_ context.Context) ([]models.Opportunity, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	return f.pool, nil
}

func (f *fakeOpportunityStore) ByCompany(_ context.Context, _ string, _ int) ([]models.Opportunity, error) {
	return nil, nil
}

func createTestHandler(t *testing.T, teams *fakeTeamStore, opps *fakeOpportunityStore) *Handler {
	log := logger.NewTestLogger(t)
	service := matching.NewService(teams, opps, log)
	return NewHandler(LoadConfig(), service, log)
}

func createTestTeam(id string) *models.Team {
	return &models.Team{
		ID:              id,
		Name:            "Team " + id,
		Size:            4,
		Industry:        []string{"Financial Services"},
		Specializations: []string{"Python"},
		Dynamics: models.TeamDynamics{
			YearsWorkingTogether: 4,
			CohesionScore:        9,
		},
		Location:     models.TeamLocation{Primary: "New York", Remote: true},
		Availability: models.TeamAvailability{Status: models.AvailabilityAvailable},
		Verification: models.TeamVerification{Status: models.VerificationVerified},
	}
}

func createTestOpportunity(id string) models.Opportunity {
	return models.Opportunity{
		ID:           id,
		CompanyID:    "company-001",
		Title:        "Opportunity " + id,
		Industry:     []string{"Financial Services"},
		Skills:       []string{"python"},
		Location:     "New York",
		RemotePolicy: models.RemotePolicyRemote,
		Status:       models.OpportunityStatusActive,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_ReturnsRecommendations(t *testing.T) {
	teams := &fakeTeamStore{byID: map[string]*models.Team{
		"team-001": createTestTeam("team-001"),
	}}
	opps := &fakeOpportunityStore{pool: []models.Opportunity{
		createTestOpportunity("opp-001"),
		createTestOpportunity("opp-002"),
	}}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{TeamID: "team-001"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalOpportunities)
	assert.NotEmpty(t, output.GeneratedAt)
}

func TestExecute_DegradesToEmptyOnFailure(t *testing.T) {
	teams := &fakeTeamStore{byID: map[string]*models.Team{}}
	opps := &fakeOpportunityStore{poolErr: errors.New("search unavailable")}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{TeamID: "team-unknown"})

	require.NoError(t, err)
	assert.Equal(t, 0, output.TotalOpportunities)
	assert.NotNil(t, output.Opportunities)
}

func TestExecute_AppliesLimit(t *testing.T) {
	teams := &fakeTeamStore{byID: map[string]*models.Team{
		"team-001": createTestTeam("team-001"),
	}}
	opps := &fakeOpportunityStore{pool: []models.Opportunity{
		createTestOpportunity("opp-001"),
		createTestOpportunity("opp-002"),
		createTestOpportunity("opp-003"),
	}}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{TeamID: "team-001", Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalOpportunities)
}

func TestExecute_MissingTeamID(t *testing.T) {
	handler := createTestHandler(t, &fakeTeamStore{}, &fakeOpportunityStore{})

	_, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "INVALID_INPUT_FORMAT", handler.mapErrorToCode(err))
	assert.Equal(t, int32(0), handler.getRetryCount(err))
}
