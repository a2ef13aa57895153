package service

import (
	"context"
	"time"

	"github.com/subwatch/subwatch/internal/api/dto"
	ierr "github.com/subwatch/subwatch/internal/errors"
)

// UserService manages user records and the notification preferences the
// batch scan reads.
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdatePreferences(ctx context.Context, id string, req dto.UpdateUserPreferencesRequest) (*dto.UserResponse, error)
}

type userService struct {
	ServiceParams
}

// NewUserService creates a new user service
func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	u := req.ToUser()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, id string, req dto.UpdateUserPreferencesRequest) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(u)
	if u.ReminderDaysThreshold < 0 {
		return nil, ierr.NewError("reminder days threshold must be non-negative").
			Mark(ierr.ErrValidation)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}
