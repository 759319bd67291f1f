package service

import (
	"context"

	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/structs"
)

// UserService handles user lookups.
type UserService struct {
	data *data.Data
}

// NewUserService creates a new user service.
func NewUserService(d *data.Data) *UserService {
	return &UserService{data: d}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*structs.User, error) {
	user, err := s.data.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgUserNotFound)
	}
	return user, nil
}

// ListUsers retrieves every user.
func (s *UserService) ListUsers(ctx context.Context) ([]*structs.User, error) {
	users, err := s.data.Users.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return users, nil
}
