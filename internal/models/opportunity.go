// internal/models/opportunity.go
package models

// Remote policies a company can declare on an opportunity.
const (
	RemotePolicyRemote = "remote"
	RemotePolicyHybrid = "hybrid"
	RemotePolicyOnsite = "onsite"
)

// Opportunity statuses. Only active opportunities enter the candidate pool.
const (
	OpportunityStatusActive = "active"
	OpportunityStatusDraft  = "draft"
	OpportunityStatusClosed = "closed"
)

// Opportunity is a company's posted request for an intact team.
// Read-only to the matching core; owned by the opportunity service.
type Opportunity struct {
	ID           string                   `json:"id"`
	CompanyID    string                   `json:"companyId"`
	Title        string                   `json:"title"`
	Industry     []string                 `json:"industry"`
	Skills       []string                 `json:"skills"`
	Location     string                   `json:"location"`
	RemotePolicy string                   `json:"remotePolicy"`
	Compensation *OpportunityCompensation `json:"compensation,omitempty"`
	Culture      OpportunityCulture       `json:"culture"`
	Status       string                   `json:"status"`
	CreatedAt    string                   `json:"createdAt"`
	UpdatedAt    string                   `json:"updatedAt"`
}

// OpportunityCompensation is the posted budget. Total is the budget for the
// whole team; Max is per member and is multiplied by team size when Total is
// absent. Nil means the posting carries no compensation data at all.
type OpportunityCompensation struct {
	Total    float64 `json:"total,omitempty"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type OpportunityCulture struct {
	Values []string `json:"values,omitempty"`
}
