package testutil

import (
	"context"

	"github.com/subwatch/subwatch/internal/domain/user"
	ierr "github.com/subwatch/subwatch/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user is nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryUserStore) ListAll(ctx context.Context) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, nil), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user is nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, u.ID, u)
}
