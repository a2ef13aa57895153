package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/domain/user"
	"github.com/subwatch/subwatch/internal/email"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/testutil"
	"github.com/subwatch/subwatch/internal/types"
)

func civil(s string) time.Time {
	d, err := types.ParseCivilDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type ReminderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReminderService
	params  ServiceParams
	email   *testutil.FakeEmailTransport
}

func TestReminderService(t *testing.T) {
	suite.Run(t, new(ReminderServiceSuite))
}

func (s *ReminderServiceSuite) SetupTest() {
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
	s.service = NewReminderService(s.params)
}

func (s *ReminderServiceSuite) newUser() *user.User {
	u := &user.User{
		ID:                        "user_test",
		Email:                     "sam@example.test",
		Name:                      "Sam",
		ReminderDaysThreshold:     3,
		EmailNotificationsEnabled: true,
		BaseModel:                 types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

func (s *ReminderServiceSuite) newSubscription(startDate string) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		UserID:    "user_test",
		Name:      "Netflix",
		Price:     decimal.NewFromInt(649),
		Cadence:   types.BILLING_CADENCE_MONTHLY,
		StartDate: civil(startDate),
		Category:  "entertainment",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *ReminderServiceSuite) TestGenerateInsideWindow() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	// renewal 2024-02-15, evaluated 3 days out with threshold 3
	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.True(created)
	s.Require().NotNil(rem)

	s.Equal(sub.ID, rem.SubscriptionID)
	s.Equal("Netflix", rem.SubscriptionName)
	s.Equal(civil("2024-02-15"), rem.RenewalDate)
	s.Equal(civil("2024-02-12"), rem.SendAt)
	s.Equal(3, rem.NotifyDaysBefore)
	s.False(rem.Read)
	s.False(rem.EmailSent)
}

func (s *ReminderServiceSuite) TestGenerateOutsideWindow() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	// 14 days out, threshold 3: nothing due
	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-01"))
	s.NoError(err)
	s.False(created)
	s.Nil(rem)
}

func (s *ReminderServiceSuite) TestGenerateIdempotentAcrossWindow() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	// Every day inside the window maps to the same send-at day, so only the
	// first evaluation creates a record.
	createdCount := 0
	for day := civil("2024-02-12"); !day.After(civil("2024-02-15")); day = day.AddDate(0, 0, 1) {
		rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, day)
		s.NoError(err)
		if created {
			createdCount++
		}
		// the renewal day itself is still inside the window and maps to the
		// same send-at day, so the existing record always comes back
		s.NotNil(rem)
	}
	s.Equal(1, createdCount)

	reminders, err := s.GetStores().ReminderRepo.List(s.GetContext(), usr.ID, true)
	s.NoError(err)
	s.Len(reminders, 1)
}

func (s *ReminderServiceSuite) TestSameDayDuplicateRejectedByStore() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.True(created)
	s.Require().NotNil(rem)

	// inserting a second record for the same send day trips the active
	// send-day index, independent of the service's existence check
	day := civil("2024-02-12")
	dup := &reminder.Reminder{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REMINDER),
		UserID:           usr.ID,
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name,
		RenewalDate:      civil("2024-02-15"),
		SendAt:           day,
		ActiveSendDay:    &day,
		BaseModel:        types.GetDefaultBaseModel(),
	}
	err = s.GetStores().ReminderRepo.Create(s.GetContext(), dup)
	s.True(ierr.IsAlreadyExists(err))

	// dismissal clears the active day, freeing the slot for a fresh record
	s.NoError(s.service.Dismiss(s.GetContext(), usr.ID, rem.ID))
	s.NoError(s.GetStores().ReminderRepo.Create(s.GetContext(), dup))
}

func (s *ReminderServiceSuite) TestGenerateOnRenewalDay() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	// first evaluation happens on the renewal day itself: day count 0 is
	// inside the window, so a record is still created
	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-15"))
	s.NoError(err)
	s.True(created)
	s.Require().NotNil(rem)
	s.Equal(civil("2024-02-15"), rem.RenewalDate)
	s.Equal(civil("2024-02-12"), rem.SendAt)
}

func (s *ReminderServiceSuite) TestGenerateNonRecurringCadence() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")
	sub.Cadence = types.BillingCadence("LIFETIME")

	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.False(created)
	s.Nil(rem)
}

func (s *ReminderServiceSuite) TestUserThresholdWidensWindow() {
	usr := s.newUser()
	usr.ReminderDaysThreshold = 7
	sub := s.newSubscription("2024-01-15")

	// 7 days out: outside the default window, inside the user's
	rem, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-08"))
	s.NoError(err)
	s.True(created)
	s.Require().NotNil(rem)
	s.Equal(7, rem.NotifyDaysBefore)
	s.Equal(civil("2024-02-08"), rem.SendAt)
}

func (s *ReminderServiceSuite) TestRegenerateAfterEdit() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	_, created, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.True(created)

	// the due date moves, invalidating the computed renewal snapshot
	sub.StartDate = civil("2024-01-20")
	s.NoError(s.service.RegenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-18")))

	reminders, err := s.GetStores().ReminderRepo.List(s.GetContext(), usr.ID, true)
	s.NoError(err)
	s.Require().Len(reminders, 1)
	s.Equal(civil("2024-02-20"), reminders[0].RenewalDate)
}

func (s *ReminderServiceSuite) TestRegenerateRetainsDismissed() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	rem, _, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.Require().NotNil(rem)
	s.NoError(s.service.Dismiss(s.GetContext(), usr.ID, rem.ID))

	sub.StartDate = civil("2024-01-20")
	s.NoError(s.service.RegenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-18")))

	all, err := s.GetStores().ReminderRepo.List(s.GetContext(), usr.ID, true)
	s.NoError(err)
	s.Len(all, 2, "dismissed record is retained alongside the fresh one")
}

func (s *ReminderServiceSuite) TestReadLifecycle() {
	usr := s.newUser()
	subA := s.newSubscription("2024-01-15")
	subB := s.newSubscription("2024-01-16")

	remA, _, err := s.service.GenerateForSubscription(s.GetContext(), usr, subA, civil("2024-02-12"))
	s.NoError(err)
	_, _, err = s.service.GenerateForSubscription(s.GetContext(), usr, subB, civil("2024-02-13"))
	s.NoError(err)

	count, err := s.service.UnreadCount(s.GetContext(), usr.ID)
	s.NoError(err)
	s.EqualValues(2, count)

	s.NoError(s.service.MarkRead(s.GetContext(), usr.ID, remA.ID))
	count, err = s.service.UnreadCount(s.GetContext(), usr.ID)
	s.NoError(err)
	s.EqualValues(1, count)

	// marking an already-read reminder again is a no-op
	s.NoError(s.service.MarkRead(s.GetContext(), usr.ID, remA.ID))

	s.NoError(s.service.MarkAllRead(s.GetContext(), usr.ID))
	count, err = s.service.UnreadCount(s.GetContext(), usr.ID)
	s.NoError(err)
	s.EqualValues(0, count)
}

func (s *ReminderServiceSuite) TestDismissTerminalAndIdempotent() {
	usr := s.newUser()
	sub := s.newSubscription("2024-01-15")

	rem, _, err := s.service.GenerateForSubscription(s.GetContext(), usr, sub, civil("2024-02-12"))
	s.NoError(err)
	s.Require().NotNil(rem)

	s.NoError(s.service.Dismiss(s.GetContext(), usr.ID, rem.ID))
	s.NoError(s.service.Dismiss(s.GetContext(), usr.ID, rem.ID))

	listed, err := s.service.ListReminders(s.GetContext(), usr.ID)
	s.NoError(err)
	s.Empty(listed.Items, "dismissed reminders never reach the bell feed")

	count, err := s.service.UnreadCount(s.GetContext(), usr.ID)
	s.NoError(err)
	s.EqualValues(0, count)
}

func (s *ReminderServiceSuite) TestMarkReadUnknownReminder() {
	usr := s.newUser()
	err := s.service.MarkRead(s.GetContext(), usr.ID, "rem_missing")
	s.Error(err)
}
