// internal/matching/service.go
package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"liftout-matching/internal/common/logger"
	"liftout-matching/internal/common/metrics"
	"liftout-matching/internal/models"
)

var (
	ErrTeamNotFound        = errors.New("TEAM_NOT_FOUND")
	ErrOpportunityNotFound = errors.New("OPPORTUNITY_NOT_FOUND")
	ErrMatchSearchFailed   = errors.New("MATCH_SEARCH_FAILED")
)

// recommendMinScore is the floor applied to recommendation listings so the
// dashboard never surfaces poor matches there.
const recommendMinScore = 60

const (
	directionTeams         = "teams_for_opportunity"
	directionOpportunities = "opportunities_for_team"
)

// TeamStore is the read-only team collaborator. GetByID returns (nil, nil)
// when the id does not resolve.
type TeamStore interface {
	GetByID(ctx context.Context, id string) (*models.Team, error)
	// SearchAvailable returns the candidate pool, pre-filtered at the data
	// layer to verified teams open to opportunities.
	SearchAvailable(ctx context.Context) ([]models.Team, error)
	// Featured returns the popularity-ordered generic listing.
	Featured(ctx context.Context, limit int) ([]models.Team, error)
}

// OpportunityStore is the read-only opportunity collaborator. GetByID returns
// (nil, nil) when the id does not resolve.
type OpportunityStore interface {
	GetByID(ctx context.Context, id string) (*models.Opportunity, error)
	// SearchActive returns the candidate pool, pre-filtered to active postings.
	SearchActive(ctx context.Context) ([]models.Opportunity, error)
	// ByCompany returns the company's most recent opportunities, newest first.
	ByCompany(ctx context.Context, companyID string, limit int) ([]models.Opportunity, error)
}

// Service ranks teams against opportunities and vice versa. Stateless apart
// from its collaborators; safe for concurrent use.
type Service struct {
	teams         TeamStore
	opportunities OpportunityStore
	logger        logger.Logger
	tracer        trace.Tracer
}

func NewService(teams TeamStore, opportunities OpportunityStore, log logger.Logger) *Service {
	return &Service{
		teams:         teams,
		opportunities: opportunities,
		logger:        log.WithFields(map[string]interface{}{"component": "matching"}),
		tracer:        otel.Tracer("liftout-matching/matching"),
	}
}

// FindTeamsForOpportunity scores every available, verified team against the
// opportunity, applies the caller filters and returns matches sorted by total
// score descending. Ties keep the pool-fetch order (stable sort).
func (s *Service) FindTeamsForOpportunity(ctx context.Context, opportunityID string, filters *models.MatchingFilters) ([]models.TeamOpportunityMatch, error) {
	ctx, span := s.tracer.Start(ctx, "matching.FindTeamsForOpportunity",
		trace.WithAttributes(attribute.String("opportunity.id", opportunityID)))
	defer span.End()

	start := time.Now()

	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve opportunity: %v", ErrMatchSearchFailed, err)
	}
	if opp == nil {
		return nil, fmt.Errorf("%w: %s", ErrOpportunityNotFound, opportunityID)
	}

	pool, err := s.teams.SearchAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch team pool: %v", ErrMatchSearchFailed, err)
	}

	matches := make([]models.TeamOpportunityMatch, 0, len(pool))
	for _, team := range pool {
		m := NewMatch(team, *opp)
		s.recordScored(directionTeams, &m)
		if !acceptTeamMatch(&m, filters) {
			continue
		}
		matches = append(matches, m)
	}

	matches = sortAndTruncate(matches, filters)

	s.logger.Info("team search completed", map[string]interface{}{
		"opportunityId": opportunityID,
		"poolSize":      len(pool),
		"matches":       len(matches),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	return matches, nil
}

// FindOpportunitiesForTeam is the symmetric entry point: the team is the
// anchor and active opportunities are the candidate pool.
func (s *Service) FindOpportunitiesForTeam(ctx context.Context, teamID string, filters *models.MatchingFilters) ([]models.TeamOpportunityMatch, error) {
	ctx, span := s.tracer.Start(ctx, "matching.FindOpportunitiesForTeam",
		trace.WithAttributes(attribute.String("team.id", teamID)))
	defer span.End()

	start := time.Now()

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve team: %v", ErrMatchSearchFailed, err)
	}
	if team == nil {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	pool, err := s.opportunities.SearchActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch opportunity pool: %v", ErrMatchSearchFailed, err)
	}

	matches := make([]models.TeamOpportunityMatch, 0, len(pool))
	for _, opp := range pool {
		m := NewMatch(*team, opp)
		s.recordScored(directionOpportunities, &m)
		if !acceptOpportunityMatch(&m, filters) {
			continue
		}
		matches = append(matches, m)
	}

	matches = sortAndTruncate(matches, filters)

	s.logger.Info("opportunity search completed", map[string]interface{}{
		"teamId":     teamID,
		"poolSize":   len(pool),
		"matches":    len(matches),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return matches, nil
}

// RecommendTeamsForCompany anchors on the company's most recent opportunity.
// With no opportunities, or on any scoring failure, it degrades to the
// featured listing instead of propagating an error.
func (s *Service) RecommendTeamsForCompany(ctx context.Context, companyUserID string, limit int) ([]models.Team, error) {
	ctx, span := s.tracer.Start(ctx, "matching.RecommendTeamsForCompany")
	defer span.End()

	opps, err := s.opportunities.ByCompany(ctx, companyUserID, 1)
	if err != nil {
		s.logger.Warn("company opportunity lookup failed, serving featured teams", map[string]interface{}{
			"companyUserId": companyUserID,
			"error":         err.Error(),
		})
		return s.featuredTeams(ctx, limit), nil
	}
	if len(opps) == 0 {
		return s.featuredTeams(ctx, limit), nil
	}

	matches, err := s.FindTeamsForOpportunity(ctx, opps[0].ID, &models.MatchingFilters{
		MinScore:   recommendMinScore,
		MaxResults: limit,
	})
	if err != nil {
		s.logger.Warn("recommendation scoring failed, serving featured teams", map[string]interface{}{
			"companyUserId": companyUserID,
			"error":         err.Error(),
		})
		return s.featuredTeams(ctx, limit), nil
	}

	teams := make([]models.Team, 0, len(matches))
	for _, m := range matches {
		teams = append(teams, m.Team)
	}
	return teams, nil
}

// RecommendOpportunitiesForTeam anchors on the team itself. On failure it
// returns an empty list; there is no featured-opportunities listing to fall
// back to.
func (s *Service) RecommendOpportunitiesForTeam(ctx context.Context, teamID string, limit int) ([]models.Opportunity, error) {
	ctx, span := s.tracer.Start(ctx, "matching.RecommendOpportunitiesForTeam")
	defer span.End()

	matches, err := s.FindOpportunitiesForTeam(ctx, teamID, &models.MatchingFilters{
		MinScore:   recommendMinScore,
		MaxResults: limit,
	})
	if err != nil {
		s.logger.Warn("opportunity recommendation failed", map[string]interface{}{
			"teamId": teamID,
			"error":  err.Error(),
		})
		return []models.Opportunity{}, nil
	}

	opps := make([]models.Opportunity, 0, len(matches))
	for _, m := range matches {
		opps = append(opps, m.Opportunity)
	}
	return opps, nil
}

func (s *Service) featuredTeams(ctx context.Context, limit int) []models.Team {
	teams, err := s.teams.Featured(ctx, limit)
	if err != nil {
		s.logger.Warn("featured teams fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.Team{}
	}
	return teams
}

func (s *Service) recordScored(direction string, m *models.TeamOpportunityMatch) {
	metrics.MatchesScored.WithLabelValues(direction).Inc()
	metrics.MatchScoreTotals.WithLabelValues(direction).Observe(float64(m.Score.Total))
	metrics.MatchRecommendations.WithLabelValues(direction, m.Recommendation).Inc()
}

func acceptTeamMatch(m *models.TeamOpportunityMatch, filters *models.MatchingFilters) bool {
	if filters == nil {
		return true
	}
	if m.Score.Total < filters.MinScore {
		return false
	}
	if r := filters.TeamSizeRange; r != nil {
		if m.Team.Size < r.Min || m.Team.Size > r.Max {
			return false
		}
	}
	if r := filters.CompensationRange; r != nil {
		// Only teams with published expectations can fail the overlap check.
		if expected := m.Team.CompensationExpectations.TotalTeamValue; expected != nil {
			if expected.Max < r.Min || expected.Min > r.Max {
				return false
			}
		}
	}
	return true
}

func acceptOpportunityMatch(m *models.TeamOpportunityMatch, filters *models.MatchingFilters) bool {
	if filters == nil {
		return true
	}
	if m.Score.Total < filters.MinScore {
		return false
	}
	if len(filters.IndustryPreference) > 0 && !industriesIntersect(m.Opportunity.Industry, filters.IndustryPreference) {
		return false
	}
	return true
}

func industriesIntersect(industries, preferences []string) bool {
	for _, industry := range industries {
		for _, pref := range preferences {
			if strings.EqualFold(industry, pref) {
				return true
			}
		}
	}
	return false
}

// sortAndTruncate sorts descending by total score and applies MaxResults.
// The sort is stable so tied scores keep the order the pool was fetched in.
func sortAndTruncate(matches []models.TeamOpportunityMatch, filters *models.MatchingFilters) []models.TeamOpportunityMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score.Total > matches[j].Score.Total
	})
	if filters != nil && filters.MaxResults > 0 && len(matches) > filters.MaxResults {
		matches = matches[:filters.MaxResults]
	}
	return matches
}
