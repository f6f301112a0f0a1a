// internal/workers/matching/notify-match/handler_test.go
package notifymatch

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"liftout-matching/internal/common/logger"
	"liftout-matching/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, input)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, input)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "noreply@liftout.com",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}

func createTestInput(notificationType string) *Input {
	return &Input{
		RecipientID:      "team-001",
		RecipientType:    RecipientTypeTeam,
		NotificationType: notificationType,
		TeamID:           "team-001",
		OpportunityID:    "opp-001",
		MatchScore:       92,
		Recommendation:   models.RecommendationExcellent,
		Metadata: map[string]interface{}{
			"companyName": "Meridian Capital",
		},
	}
}

func createTestHandler(t *testing.T, db *sql.DB, mockSES SESService, mockSNS SNSService) *Handler {
	return &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      logger.NewTestLogger(t),
		sesClient:   mockSES,
		snsClient:   mockSNS,
		templateMap: loadTemplates(),
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		emailEnabled   bool
		smsEnabled     bool
		recommendation string
		priority       string
		wantStatus     string
	}{
		{
			name:           "email and SMS for excellent match",
			emailEnabled:   true,
			smsEnabled:     true,
			recommendation: models.RecommendationExcellent,
			wantStatus:     StatusSent,
		},
		{
			name:           "email only for good match",
			emailEnabled:   true,
			smsEnabled:     true,
			recommendation: models.RecommendationGood,
			wantStatus:     StatusSent,
		},
		{
			name:           "SMS for high priority regardless of tier",
			emailEnabled:   false,
			smsEnabled:     true,
			recommendation: models.RecommendationFair,
			priority:       "high",
			wantStatus:     StatusSent,
		},
		{
			name:           "nothing sent for routine fair match",
			emailEnabled:   false,
			smsEnabled:     true,
			recommendation: models.RecommendationFair,
			wantStatus:     StatusDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT email, phone FROM team_contacts WHERE team_id = \$1`).
				WithArgs("team-001").
				WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
					AddRow("lead@team.com", "+1234567890"))

			smsSent := false
			mockSES := &MockSESService{
				SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
					assert.Equal(t, "lead@team.com", params.Destination.ToAddresses[0])
					assert.Equal(t, "noreply@liftout.com", *params.Source)
					return &ses.SendEmailOutput{}, nil
				},
			}
			mockSNS := &MockSNSService{
				PublishFunc: func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
					smsSent = true
					assert.Equal(t, "+1234567890", *params.PhoneNumber)
					return &sns.PublishOutput{}, nil
				},
			}

			handler := createTestHandler(t, db, mockSES, mockSNS)
			handler.config.EmailEnabled = tt.emailEnabled
			handler.config.SMSEnabled = tt.smsEnabled

			input := createTestInput(TypeMatchFound)
			input.Recommendation = tt.recommendation
			input.Priority = tt.priority

			output, err := handler.Execute(context.Background(), input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.wantStatus, output.Status)
			if tt.wantStatus == StatusSent {
				assert.NotEmpty(t, output.NotificationID)
				assert.NotEmpty(t, output.SentAt)
			}
			if tt.wantStatus == StatusDisabled {
				assert.False(t, smsSent)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_RecipientNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM team_contacts WHERE team_id = \$1`).
		WithArgs("team-001").
		WillReturnError(sql.ErrNoRows)

	handler := createTestHandler(t, db, &MockSESService{}, &MockSNSService{})

	output, err := handler.Execute(context.Background(), createTestInput(TypeMatchFound))

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.NotEmpty(t, output.NotificationID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM team_contacts WHERE team_id = \$1`).
		WithArgs("team-001").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
			AddRow("lead@team.com", "+1234567890"))

	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			return nil, errors.New("SES service unavailable")
		},
	}
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{}, nil
		},
	}

	handler := createTestHandler(t, db, mockSES, mockSNS)

	output, err := handler.Execute(context.Background(), createTestInput(TypeMatchFound))

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusFailed, output.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_TemplateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM team_contacts WHERE team_id = \$1`).
		WithArgs("team-001").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
			AddRow("lead@team.com", "+1234567890"))

	handler := createTestHandler(t, db, &MockSESService{}, &MockSNSService{})

	output, err := handler.Execute(context.Background(), createTestInput("unknown_template_type"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
	assert.Nil(t, output)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Unit Tests
// ==========================

func TestHandler_GetRecipientContact(t *testing.T) {
	tests := []struct {
		name          string
		recipientType string
		query         string
		expectedEmail string
		expectedPhone string
		expectError   bool
		errorContains string
	}{
		{
			name:          "team recipient",
			recipientType: RecipientTypeTeam,
			query:         `SELECT email, phone FROM team_contacts WHERE team_id = \$1`,
			expectedEmail: "lead@team.com",
			expectedPhone: "+1234567890",
		},
		{
			name:          "company recipient",
			recipientType: RecipientTypeCompany,
			query:         `SELECT email, phone FROM company_users WHERE id = \$1`,
			expectedEmail: "hiring@company.com",
			expectedPhone: "+1987654321",
		},
		{
			name:          "invalid recipient type",
			recipientType: "invalid",
			expectError:   true,
			errorContains: "invalid recipient type",
		},
		{
			name:          "recipient not found",
			recipientType: RecipientTypeTeam,
			query:         `SELECT email, phone FROM team_contacts WHERE team_id = \$1`,
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			handler := &Handler{db: db, logger: logger.NewTestLogger(t)}

			if !tt.expectError || tt.recipientType == "invalid" {
				if tt.recipientType != "invalid" {
					mock.ExpectQuery(tt.query).
						WithArgs("recipient-001").
						WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
							AddRow(tt.expectedEmail, tt.expectedPhone))
				}
			} else {
				mock.ExpectQuery(tt.query).
					WithArgs("recipient-001").
					WillReturnError(sql.ErrNoRows)
			}

			email, phone, err := handler.getRecipientContact("recipient-001", tt.recipientType)

			if tt.expectError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEmail, email)
				assert.Equal(t, tt.expectedPhone, phone)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_RenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "simple replacement",
			template: "Team {{teamId}} matched opportunity {{opportunityId}}.",
			data: map[string]interface{}{
				"teamId":        "team-001",
				"opportunityId": "opp-001",
			},
			expected: "Team team-001 matched opportunity opp-001.",
		},
		{
			name:     "integer value",
			template: "Match scored {{matchScore}}/100.",
			data: map[string]interface{}{
				"matchScore": 85,
			},
			expected: "Match scored 85/100.",
		},
		{
			name:     "no replacements",
			template: "Static message without placeholders.",
			data:     map[string]interface{}{},
			expected: "Static message without placeholders.",
		},
		{
			name:     "missing placeholder",
			template: "Hello {{name}}, your {{missing}} is here.",
			data: map[string]interface{}{
				"name": "Jordan",
			},
			expected: "Hello Jordan, your  is here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderTemplate(tt.template, tt.data)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHandler_LoadTemplates(t *testing.T) {
	templates := loadTemplates()

	matchFound, exists := templates[TypeMatchFound]
	assert.True(t, exists)
	assert.Equal(t, "New Liftout Match Found", matchFound["subject"])
	assert.Contains(t, matchFound["body"], "{{matchScore}}")

	digest, exists := templates[TypeRecommendationDigest]
	assert.True(t, exists)
	assert.Contains(t, digest["body"], "recommendations")
}

// ==========================
// Integration Test
// ==========================

func TestHandler_FullWorkflow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM company_users WHERE id = \$1`).
		WithArgs("company-user-001").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
			AddRow("hiring@meridian.com", "+15551234567"))

	emailSent := false
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			emailSent = true
			assert.Equal(t, "hiring@meridian.com", params.Destination.ToAddresses[0])
			assert.Contains(t, *params.Message.Subject.Data, "New Liftout Match Found")
			assert.Contains(t, *params.Message.Body.Text.Data, "92/100")
			return &ses.SendEmailOutput{}, nil
		},
	}

	smsSent := false
	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
			smsSent = true
			assert.Equal(t, "+15551234567", *params.PhoneNumber)
			return &sns.PublishOutput{}, nil
		},
	}

	handler := createTestHandler(t, db, mockSES, mockSNS)

	input := createTestInput(TypeMatchFound)
	input.RecipientID = "company-user-001"
	input.RecipientType = RecipientTypeCompany

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusSent, output.Status)
	assert.True(t, emailSent)
	assert.True(t, smsSent)

	_, err = time.Parse(time.RFC3339, output.SentAt)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
