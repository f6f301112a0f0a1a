// internal/models/match.go
package models

// Per-dimension maxima. They sum to exactly 100 so the total is a percentage.
const (
	MaxSkillsMatch       = 25
	MaxIndustryMatch     = 20
	MaxExperienceMatch   = 15
	MaxLocationMatch     = 10
	MaxCompensationMatch = 15
	MaxCultureMatch      = 10
	MaxAvailabilityMatch = 5
)

// Recommendation tiers derived from the total score.
const (
	RecommendationExcellent = "excellent"
	RecommendationGood      = "good"
	RecommendationFair      = "fair"
	RecommendationPoor      = "poor"
)

// ScoreBreakdown holds the seven independently bounded sub-scores.
type ScoreBreakdown struct {
	SkillsMatch       int `json:"skillsMatch"`
	IndustryMatch     int `json:"industryMatch"`
	ExperienceMatch   int `json:"experienceMatch"`
	LocationMatch     int `json:"locationMatch"`
	CompensationMatch int `json:"compensationMatch"`
	CultureMatch      int `json:"cultureMatch"`
	AvailabilityMatch int `json:"availabilityMatch"`
}

// Sum returns the plain integer sum of the sub-scores.
func (b ScoreBreakdown) Sum() int {
	return b.SkillsMatch + b.IndustryMatch + b.ExperienceMatch + b.LocationMatch +
		b.CompensationMatch + b.CultureMatch + b.AvailabilityMatch
}

// MatchScore is the ephemeral result of scoring one team against one
// opportunity. Never persisted; recomputed on every search.
type MatchScore struct {
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reasoning []string       `json:"reasoning"`
}

// TeamOpportunityMatch is one ranked entry of a search result. It has no
// identity beyond the (team, opportunity) pair.
type TeamOpportunityMatch struct {
	Team              Team        `json:"team"`
	Opportunity       Opportunity `json:"opportunity"`
	Score             MatchScore  `json:"score"`
	Recommendation    string      `json:"recommendation"`
	KeyStrengths      []string    `json:"keyStrengths"`
	PotentialConcerns []string    `json:"potentialConcerns"`
}

// MatchingFilters narrows a ranked result set. Zero values mean "no filter".
// LocationPreference and CompensationRange.Currency are accepted for wire
// compatibility with dashboard payloads but are not consulted by the matcher.
type MatchingFilters struct {
	MinScore           int                `json:"minScore,omitempty"`
	MaxResults         int                `json:"maxResults,omitempty"`
	IndustryPreference []string           `json:"industryPreference,omitempty"`
	LocationPreference []string           `json:"locationPreference,omitempty"`
	TeamSizeRange      *IntRange          `json:"teamSizeRange,omitempty"`
	CompensationRange  *CompensationRange `json:"compensationRange,omitempty"`
}

type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type CompensationRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}
