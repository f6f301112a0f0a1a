// internal/workers/matching/recommend-opportunities/models.go
package recommendopportunities

import "liftout-matching/internal/models"

type Input struct {
	TeamID string `json:"teamId"`
	Limit  int    `json:"limit,omitempty"`
}

type Output struct {
	Opportunities      []models.Opportunity `json:"opportunities"`
	TotalOpportunities int                  `json:"totalOpportunities"`
	GeneratedAt        string               `json:"generatedAt"` // ISO 8601
}
