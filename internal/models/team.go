// internal/models/team.go
package models

// Work arrangement preferences declared by a team.
const (
	WorkArrangementRemote   = "remote"
	WorkArrangementHybrid   = "hybrid"
	WorkArrangementOnsite   = "onsite"
	WorkArrangementFlexible = "flexible"
)

// Availability statuses a team can be in.
const (
	AvailabilityAvailable    = "available"
	AvailabilitySelective    = "selective"
	AvailabilityNotAvailable = "not_available"
)

// VerificationVerified is the only verification status the matcher treats as trusted.
const VerificationVerified = "verified"

// Team is a pre-existing group of professionals represented as one matchable entity.
// Read-only to the matching core; owned by the profile service.
type Team struct {
	ID                       string                   `json:"id"`
	Name                     string                   `json:"name"`
	Size                     int                      `json:"size"`
	Industry                 []string                 `json:"industry"`
	Specializations          []string                 `json:"specializations"`
	Dynamics                 TeamDynamics             `json:"dynamics"`
	Location                 TeamLocation             `json:"location"`
	CompensationExpectations CompensationExpectations `json:"compensationExpectations"`
	Values                   []string                 `json:"values"`
	Availability             TeamAvailability         `json:"availability"`
	Verification             TeamVerification         `json:"verification"`
	LiftoutHistory           LiftoutHistory           `json:"liftoutHistory"`
	PerformanceMetrics       PerformanceMetrics       `json:"performanceMetrics"`
	ProfileViews             int                      `json:"profileViews"`
	CreatedAt                string                   `json:"createdAt"`
	UpdatedAt                string                   `json:"updatedAt"`
}

type TeamDynamics struct {
	YearsWorkingTogether     float64 `json:"yearsWorkingTogether"`
	CohesionScore            float64 `json:"cohesionScore"`
	PreferredWorkArrangement string  `json:"preferredWorkArrangement"`
}

type TeamLocation struct {
	Primary string `json:"primary"`
	Remote  bool   `json:"remote"`
}

// CompensationExpectations carries the expected total value for the whole team.
// TotalTeamValue is nil when the team has not published expectations.
type CompensationExpectations struct {
	TotalTeamValue *MoneyRange `json:"totalTeamValue,omitempty"`
}

type MoneyRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TeamAvailability struct {
	Status        string `json:"status"`
	AvailableFrom string `json:"availableFrom,omitempty"`
}

type TeamVerification struct {
	Status     string `json:"status"`
	VerifiedAt string `json:"verifiedAt,omitempty"`
}

type LiftoutHistory struct {
	PreviousLiftouts       []PreviousLiftout      `json:"previousLiftouts"`
	NonCompeteRestrictions NonCompeteRestrictions `json:"nonCompeteRestrictions"`
}

type PreviousLiftout struct {
	CompanyName string `json:"companyName"`
	Year        int    `json:"year"`
	TeamSize    int    `json:"teamSize"`
}

type NonCompeteRestrictions struct {
	HasRestrictions bool   `json:"hasRestrictions"`
	ExpiresAt       string `json:"expiresAt,omitempty"`
}

type PerformanceMetrics struct {
	SuccessRate       float64 `json:"successRate"`
	CompletedLiftouts int     `json:"completedLiftouts"`
}
