// internal/workers/matching/recommend-teams/handler_test.go
package recommendteams

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
	pool     []models.Team
	featured []models.Team
}

func (f *fakeTeamStore) GetByID(_ context.Context, _ string) (*models.Team, error) {
	return nil, nil
}

func (f *fakeTeamStore) SearchAvailable(_ context.Context) ([]models.Team, error) {
	return f.pool, nil
}

func (f *fakeTeamStore) Featured(_ context.Context, limit int) ([]models.Team, error) {
	if limit > 0 && len(f.featured) > limit {
		return f.featured[:limit], nil
	}
	return f.featured, nil
}

type fakeOpportunityStore struct {
	byCompany    []models.Opportunity
	byCompanyErr error
	byID         map[string]*models.Opportunity
}

func (f *fakeOpportunityStore) GetByID(_ context.Context, id string) (*models.Opportunity, error) {
	return f.byID[id], nil
}

func (f *fakeOpportunityStore) SearchActive(_ context.Context) ([]models.Opportunity, error) {
	return nil, nil
}

func (f *fakeOpportunityStore) ByCompany(_ context.Context, _ string, limit int) ([]models.Opportunity, error) {
	if f.byCompanyErr != nil {
		return nil, f.byCompanyErr
	}
	if limit > 0 && len(f.byCompany) > limit {
		return f.byCompany[:limit], nil
	}
	return f.byCompany, nil
}

func createTestHandler(t *testing.T, teams *fakeTeamStore, opps *fakeOpportunityStore) *Handler {
	log := logger.NewTestLogger(t)
	service := matching.NewService(teams, opps, log)
	return NewHandler(LoadConfig(), service, log)
}

func createTestTeam(id string) models.Team {
	return models.Team{
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

func createTestOpportunity(id string) *models.Opportunity {
	return &models.Opportunity{
		ID:           id,
		CompanyID:    "company-001",
		Title:        "Quant Team Buildout",
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

func TestExecute_ScoredRecommendations(t *testing.T) {
	teams := &fakeTeamStore{pool: []models.Team{
		createTestTeam("team-001"),
		createTestTeam("team-002"),
	}}
	opps := &fakeOpportunityStore{
		byCompany: []models.Opportunity{*createTestOpportunity("opp-001")},
		byID:      map[string]*models.Opportunity{"opp-001": createTestOpportunity("opp-001")},
	}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{CompanyUserID: "company-001"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalTeams)
	assert.NotEmpty(t, output.GeneratedAt)
}

func TestExecute_FallsBackToFeaturedWhenNoOpportunities(t *testing.T) {
	teams := &fakeTeamStore{featured: []models.Team{
		createTestTeam("team-featured"),
	}}
	handler := createTestHandler(t, teams, &fakeOpportunityStore{})

	output, err := handler.Execute(context.Background(), &Input{CompanyUserID: "company-001"})

	require.NoError(t, err)
	require.Equal(t, 1, output.TotalTeams)
	assert.Equal(t, "team-featured", output.Teams[0].ID)
}

func TestExecute_FallsBackToFeaturedOnLookupFailure(t *testing.T) {
	teams := &fakeTeamStore{featured: []models.Team{
		createTestTeam("team-featured"),
	}}
	opps := &fakeOpportunityStore{byCompanyErr: errors.New("connection refused")}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{CompanyUserID: "company-001"})

	require.NoError(t, err)
	require.Equal(t, 1, output.TotalTeams)
	assert.Equal(t, "team-featured", output.Teams[0].ID)
}

func TestExecute_AppliesLimit(t *testing.T) {
	teams := &fakeTeamStore{pool: []models.Team{
		createTestTeam("team-001"),
		createTestTeam("team-002"),
		createTestTeam("team-003"),
	}}
	opps := &fakeOpportunityStore{
		byCompany: []models.Opportunity{*createTestOpportunity("opp-001")},
		byID:      map[string]*models.Opportunity{"opp-001": createTestOpportunity("opp-001")},
	}
	handler := createTestHandler(t, teams, opps)

	output, err := handler.Execute(context.Background(), &Input{CompanyUserID: "company-001", Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalTeams)
}

func TestExecute_MissingCompanyUserID(t *testing.T) {
	handler := createTestHandler(t, &fakeTeamStore{}, &fakeOpportunityStore{})

	_, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "INVALID_INPUT_FORMAT", handler.mapErrorToCode(err))
	assert.Equal(t, int32(0), handler.getRetryCount(err))
}
