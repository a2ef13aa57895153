package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/domain/user"
	"github.com/subwatch/subwatch/internal/email"
	"github.com/subwatch/subwatch/internal/testutil"
	"github.com/subwatch/subwatch/internal/types"
)

type ScanServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ScanService
	params  ServiceParams
	email   *testutil.FakeEmailTransport
}

func TestScanService(t *testing.T) {
	suite.Run(t, new(ScanServiceSuite))
}

func (s *ScanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.email = testutil.NewFakeEmailTransport()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		SubRepo:      s.GetStores().SubscriptionRepo,
		ReminderRepo: s.GetStores().ReminderRepo,
		UserRepo:     s.GetStores().UserRepo,
		EmailService: email.NewEmail(s.email, s.GetLogger()),
	}
	s.service = NewScanService(s.params, NewReminderService(s.params))
}

func (s *ScanServiceSuite) addUser(id string, emailEnabled bool) *user.User {
	u := &user.User{
		ID:                        id,
		Email:                     id + "@example.test",
		Name:                      id,
		ReminderDaysThreshold:     3,
		EmailNotificationsEnabled: emailEnabled,
		BaseModel:                 types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

// addSubscription anchors a yearly subscription so its next renewal lands the
// given number of days after today.
func (s *ScanServiceSuite) addSubscription(userID string, daysOut int) *subscription.Subscription {
	today := types.CivilToday(time.UTC)
	sub := &subscription.Subscription{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		UserID:    userID,
		Name:      "Netflix",
		Price:     decimal.NewFromInt(649),
		Cadence:   types.BILLING_CADENCE_YEARLY,
		StartDate: today.AddDate(-1, 0, daysOut),
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *ScanServiceSuite) TestScanCreatesAndEmails() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.UsersChecked)
	s.Equal(1, stats.SubscriptionsChecked)
	s.Equal(1, stats.NotificationsCreated)
	s.Equal(1, stats.EmailsSent)
	s.Equal(0, stats.Errors)
	s.False(stats.Partial)
	s.Len(s.email.Sent(), 1)

	reminders, err := s.GetStores().ReminderRepo.List(s.GetContext(), "user_a", true)
	s.NoError(err)
	s.Require().Len(reminders, 1)
	s.True(reminders[0].EmailSent)
	s.NotNil(reminders[0].EmailSentAt)
}

func (s *ScanServiceSuite) TestScanEmailsOnRenewalDay() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 0)

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.NotificationsCreated)
	s.Equal(1, stats.EmailsSent)

	sent := s.email.Sent()
	s.Require().Len(sent, 1)
	s.Equal("Netflix renews today", sent[0].Subject)
}

func (s *ScanServiceSuite) TestScanIsIdempotent() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)

	_, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.SubscriptionsChecked)
	s.Equal(0, stats.NotificationsCreated, "the same window never creates twice")
	s.Equal(0, stats.EmailsSent, "the email-sent flag blocks a second send")
	s.Len(s.email.Sent(), 1)
}

func (s *ScanServiceSuite) TestScanStatsInvariants() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)  // due
	s.addSubscription("user_a", 30) // not due
	s.addUser("user_b", true)
	s.addSubscription("user_b", 1) // due
	s.addUser("user_c", true)      // no subscriptions

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(3, stats.UsersChecked)
	s.Equal(3, stats.SubscriptionsChecked)
	s.LessOrEqual(stats.NotificationsCreated, stats.SubscriptionsChecked)
	s.LessOrEqual(stats.EmailsSent, stats.NotificationsCreated)
	s.Equal(2, stats.NotificationsCreated)
	s.Equal(2, stats.EmailsSent)
}

func (s *ScanServiceSuite) TestDisabledTransportIsNotAnError() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)
	s.email.SetEnabled(false)

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.NotificationsCreated)
	s.Equal(0, stats.EmailsSent)
	s.Equal(0, stats.Errors, "an unconfigured transport is a recognized outcome")

	// once the transport comes back the same window retries the send
	s.email.SetEnabled(true)
	stats, err = s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.EmailsSent)
	s.Len(s.email.Sent(), 1)
}

func (s *ScanServiceSuite) TestOptedOutUserGetsRecordButNoEmail() {
	s.addUser("user_a", false)
	s.addSubscription("user_a", 2)

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.NotificationsCreated)
	s.Equal(0, stats.EmailsSent)
	s.Empty(s.email.Sent())
}

func (s *ScanServiceSuite) TestEmailFailureCountedAndRetriedNextRun() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)
	s.email.FailNext()

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.NotificationsCreated)
	s.Equal(0, stats.EmailsSent)
	s.Equal(1, stats.Errors)

	stats, err = s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.Equal(1, stats.EmailsSent)
	s.Equal(0, stats.Errors)
}

func (s *ScanServiceSuite) TestBudgetExceededReturnsPartial() {
	s.addUser("user_a", true)
	s.addSubscription("user_a", 2)
	s.GetConfig().Reminder.ScanBudget = 0

	stats, err := s.service.ScanAll(s.GetContext())
	s.NoError(err)
	s.True(stats.Partial)
	s.Equal(0, stats.UsersChecked, "budget is checked before each step")
	s.Equal(0, stats.Errors)
}
