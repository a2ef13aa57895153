package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainUser "github.com/subwatch/subwatch/internal/domain/user"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

type userRepository struct {
	client *Client
	log    *logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *Client, log *logger.Logger) domainUser.Repository {
	return &userRepository{client: client, log: log}
}

func (r *userRepository) Create(ctx context.Context, u *domainUser.User) error {
	if err := r.client.DB(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("A user with this id already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*domainUser.User, error) {
	var u domainUser.User
	err := r.client.DB(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithReportableDetails(map[string]interface{}{
					"user_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]*domainUser.User, error) {
	var users []*domainUser.User
	if err := r.client.DB(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *domainUser.User) error {
	if err := r.client.DB(ctx).Where("id = ?", u.ID).Save(u).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
