// internal/workers/matching/find-opportunities-for-team/models.go
package findopportunitiesforteam

import "liftout-matching/internal/models"

type Input struct {
	TeamID  string                  `json:"teamId"`
	Filters *models.MatchingFilters `json:"filters,omitempty"`
}

type Output struct {
	Matches      []models.TeamOpportunityMatch `json:"matches"`
	TotalMatches int                           `json:"totalMatches"`
	SearchedAt   string                        `json:"searchedAt"` // ISO 8601
}
