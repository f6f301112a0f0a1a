// internal/workers/matching/recommend-teams/models.go
package recommendteams

import "liftout-matching/internal/models"

type Input struct {
	CompanyUserID string `json:"companyUserId"`
	Limit         int    `json:"limit,omitempty"`
}

type Output struct {
	Teams       []models.Team `json:"teams"`
	TotalTeams  int           `json:"totalTeams"`
	GeneratedAt string        `json:"generatedAt"` // ISO 8601
}
