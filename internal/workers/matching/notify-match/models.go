// internal/workers/matching/notify-match/models.go
package notifymatch

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "team" or "company"
	NotificationType string                 `json:"notificationType"`
	TeamID           string                 `json:"teamId,omitempty"`
	OpportunityID    string                 `json:"opportunityId,omitempty"`
	MatchScore       int                    `json:"matchScore,omitempty"`
	Recommendation   string                 `json:"recommendation,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeMatchFound           = "match_found"
	TypeRecommendationDigest = "recommendation_digest"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeTeam    = "team"
	RecipientTypeCompany = "company"
)
