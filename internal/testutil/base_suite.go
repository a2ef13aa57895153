package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/types"
)

// Stores bundles the in-memory repositories used by service tests.
type Stores struct {
	SubscriptionRepo *InMemorySubscriptionStore
	ReminderRepo     *InMemoryReminderStore
	UserRepo         *InMemoryUserStore
}

// BaseServiceTestSuite provides fresh in-memory stores, config and logger for
// every test. Service suites embed it and build their ServiceParams in
// SetupTest.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
}

func (s *BaseServiceTestSuite) SetupTest() {
	ctx := types.SetUserID(context.Background(), types.DefaultUserID)
	s.ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))

	s.cfg = config.GetDefaultConfig()
	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)
	s.logger = log

	s.stores = Stores{
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		ReminderRepo:     NewInMemoryReminderStore(),
		UserRepo:         NewInMemoryUserStore(),
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}
