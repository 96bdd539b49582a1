package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goia/careers-os/internal/mailer"
	"github.com/goia/careers-os/internal/mailtmpl"
	"github.com/goia/careers-os/internal/models"
)

// MockApplicationStore is a mock for ApplicationStore
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) GetWithJob(ctx context.Context, id uuid.UUID) (*models.ApplicationWithJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationWithJob), args.Error(1)
}

// MockNotificationStore is a mock for NotificationStore
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, n *models.NotificationLog) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockSender records sends without hitting the network.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock for EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEmailSent(ctx context.Context, applicationID uuid.UUID, outcome models.OutcomeType, emailID string) error {
	args := m.Called(ctx, applicationID, outcome, emailID)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func testApplication(id uuid.UUID, jobTitle *string) *models.ApplicationWithJob {
	return &models.ApplicationWithJob{
		JobApplication: models.JobApplication{
			ID:       id,
			JobID:    uuid.New(),
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Status:   models.StatusPending,
		},
		JobTitle: jobTitle,
	}
}

func newTestService(apps ApplicationStore, notifications NotificationStore, sender mailer.Sender, events EventPublisher) *Service {
	return NewService(
		apps,
		notifications,
		mailtmpl.NewResolver(nil),
		sender,
		events,
		"Goia Careers <careers@goia.app>",
		RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond},
	)
}

func TestSendOutcomeEmail_Accepted(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "jane@example.com" &&
			msg.From == "Goia Careers <careers@goia.app>" &&
			msg.Subject == "Congratulations! Your application for Backend Engineer has been accepted"
	})).Return("email-123", nil)

	notifications := new(MockNotificationStore)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.NotificationLog) bool {
		return n.ApplicationID == appID &&
			n.OutcomeType == models.OutcomeAccepted &&
			n.Recipient == "jane@example.com" &&
			n.Success &&
			n.EmailID != nil && *n.EmailID == "email-123"
	})).Return(nil)

	svc := newTestService(apps, notifications, sender, nil)
	result, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	require.NoError(t, err)
	assert.Equal(t, "email-123", result.EmailID)
	sender.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestSendOutcomeEmail_BodyHasMergedValues(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	var sentMsg mailer.Message
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sentMsg = args.Get(1).(mailer.Message)
	}).Return("email-123", nil)

	svc := newTestService(apps, nil, sender, nil)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	require.NoError(t, err)
	assert.Contains(t, sentMsg.HTML, "Congratulations, Jane Doe!")
	assert.Contains(t, sentMsg.HTML, "Backend Engineer")
	assert.NotContains(t, sentMsg.HTML, "{applicantName}")
	assert.NotContains(t, sentMsg.HTML, "{jobTitle}")
}

func TestSendOutcomeEmail_JobTitleFallback(t *testing.T) {
	tests := []struct {
		name     string
		jobTitle *string
	}{
		{name: "nil job title", jobTitle: nil},
		{name: "empty job title", jobTitle: strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appID := uuid.New()
			apps := new(MockApplicationStore)
			apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, tt.jobTitle), nil)

			sender := new(MockSender)
			sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
				return msg.Subject == "Congratulations! Your application for the position has been accepted"
			})).Return("email-1", nil)

			svc := newTestService(apps, nil, sender, nil)
			_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

			require.NoError(t, err)
			sender.AssertExpectations(t)
		})
	}
}

func TestSendOutcomeEmail_ApplicationNotFound(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(nil, nil)

	sender := new(MockSender)

	svc := newTestService(apps, nil, sender, nil)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	assert.ErrorIs(t, err, ErrApplicationNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendOutcomeEmail_NilSender(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	svc := newTestService(apps, nil, nil, nil)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	assert.ErrorIs(t, err, ErrEmailServiceUnavailable)
}

func TestSendOutcomeEmail_NotFoundWinsOverNilSender(t *testing.T) {
	// with email unconfigured, a missing application still reports 404 semantics
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(nil, nil)

	svc := newTestService(apps, nil, nil, nil)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeRejected)

	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestSendOutcomeEmail_InvalidOutcome(t *testing.T) {
	apps := new(MockApplicationStore)
	svc := newTestService(apps, nil, new(MockSender), nil)

	_, err := svc.SendOutcomeEmail(context.Background(), uuid.New(), models.OutcomeType("celebrated"))

	assert.ErrorIs(t, err, ErrInvalidOutcome)
	apps.AssertNotCalled(t, "GetWithJob", mock.Anything, mock.Anything)
}

func TestSendOutcomeEmail_RetriesThenSucceeds(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Twice()
	sender.On("Send", mock.Anything, mock.Anything).Return("email-ok", nil).Once()

	svc := newTestService(apps, nil, sender, nil)
	result, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	require.NoError(t, err)
	assert.Equal(t, "email-ok", result.EmailID)
	sender.AssertNumberOfCalls(t, "Send", 3)
}

func TestSendOutcomeEmail_RetryExhaustion(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("smtp down"))

	notifications := new(MockNotificationStore)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.NotificationLog) bool {
		return !n.Success && n.ErrorMessage != nil && *n.ErrorMessage == "smtp down"
	})).Return(nil)

	svc := newTestService(apps, notifications, sender, nil)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "smtp down")
	// first attempt plus MaxRetries
	sender.AssertNumberOfCalls(t, "Send", 3)
	notifications.AssertExpectations(t)
}

func TestSendOutcomeEmail_LogWriteFailureDoesNotFailSend(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("email-123", nil)

	notifications := new(MockNotificationStore)
	notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	svc := newTestService(apps, notifications, sender, nil)
	result, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	require.NoError(t, err)
	assert.Equal(t, "email-123", result.EmailID)
}

func TestSendOutcomeEmail_PublishesEvent(t *testing.T) {
	appID := uuid.New()
	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, appID).Return(testApplication(appID, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("email-123", nil)

	events := new(MockEventPublisher)
	events.On("PublishEmailSent", mock.Anything, appID, models.OutcomeAccepted, "email-123").Return(nil)

	svc := newTestService(apps, nil, sender, events)
	_, err := svc.SendOutcomeEmail(context.Background(), appID, models.OutcomeAccepted)

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestSendBatch_PartialFailure(t *testing.T) {
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()

	apps := new(MockApplicationStore)
	apps.On("GetWithJob", mock.Anything, id1).Return(testApplication(id1, strPtr("Backend Engineer")), nil)
	apps.On("GetWithJob", mock.Anything, id2).Return(nil, nil) // deleted mid-flight
	apps.On("GetWithJob", mock.Anything, id3).Return(testApplication(id3, strPtr("Backend Engineer")), nil)

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("email-a", nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return("email-b", nil).Once()

	svc := newTestService(apps, nil, sender, nil)
	result := svc.SendBatch(context.Background(), []uuid.UUID{id1, id2, id3}, models.OutcomeRejected)

	require.Len(t, result.Sent, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, id1, result.Sent[0].ApplicationID)
	assert.Equal(t, id3, result.Sent[1].ApplicationID)
	assert.Equal(t, id2, result.Failed[0].ApplicationID)
	assert.Contains(t, result.Failed[0].Error, "application not found")
}

func TestSendBatch_EmptyListsNotNil(t *testing.T) {
	svc := newTestService(new(MockApplicationStore), nil, new(MockSender), nil)
	result := svc.SendBatch(context.Background(), nil, models.OutcomeAccepted)

	assert.NotNil(t, result.Sent)
	assert.NotNil(t, result.Failed)
	assert.Empty(t, result.Sent)
	assert.Empty(t, result.Failed)
}
