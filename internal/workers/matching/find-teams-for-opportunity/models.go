// internal/workers/matching/find-teams-for-opportunity/models.go
package findteamsforopportunity

import "liftout-matching/internal/models"

type Input struct {
	OpportunityID string                  `json:"opportunityId"`
	Filters       *models.MatchingFilters `json:"filters,omitempty"`
}

type Output struct {
	Matches      []models.TeamOpportunityMatch `json:"matches"`
	TotalMatches int                           `json:"totalMatches"`
	SearchedAt   string                        `json:"searchedAt"` // ISO 8601
}
