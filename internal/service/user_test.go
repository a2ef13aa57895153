package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/subwatch/subwatch/internal/api/dto"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/testutil"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		SubRepo:      s.GetStores().SubscriptionRepo,
		ReminderRepo: s.GetStores().ReminderRepo,
		UserRepo:     s.GetStores().UserRepo,
	})
}

func (s *UserServiceSuite) TestCreateUserDefaults() {
	resp, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{
		ID:    "user_sam",
		Email: "sam@example.test",
		Name:  "Sam",
	})
	s.NoError(err)
	s.Require().NotNil(resp)
	s.Equal(3, resp.ReminderDaysThreshold)
	s.True(resp.EmailNotificationsEnabled)
}

func (s *UserServiceSuite) TestCreateDuplicate() {
	_, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{ID: "user_sam"})
	s.NoError(err)

	_, err = s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{ID: "user_sam"})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestUpdatePreferences() {
	_, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{ID: "user_sam"})
	s.NoError(err)

	resp, err := s.service.UpdatePreferences(s.GetContext(), "user_sam", dto.UpdateUserPreferencesRequest{
		ReminderDaysThreshold:     lo.ToPtr(7),
		EmailNotificationsEnabled: lo.ToPtr(false),
	})
	s.NoError(err)
	s.Equal(7, resp.ReminderDaysThreshold)
	s.False(resp.EmailNotificationsEnabled)
}

func (s *UserServiceSuite) TestUpdatePreferencesNegativeThreshold() {
	_, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{ID: "user_sam"})
	s.NoError(err)

	_, err = s.service.UpdatePreferences(s.GetContext(), "user_sam", dto.UpdateUserPreferencesRequest{
		ReminderDaysThreshold: lo.ToPtr(-1),
	})
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestGetUnknownUser() {
	_, err := s.service.GetUser(s.GetContext(), "user_missing")
	s.True(ierr.IsNotFound(err))
}
