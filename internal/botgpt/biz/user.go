package biz

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/id"
)

// UserService handles user business logic.
type UserService struct {
	store store.Factory
}

// NewUserService creates a new UserService.
func NewUserService(factory store.Factory) *UserService {
	return &UserService{store: factory}
}

// Create creates a new user. Username and email must both be unused.
func (s *UserService) Create(ctx context.Context, username, email string) (*model.User, error) {
	exists, err := s.store.Users().ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	if exists {
		return nil, errors.ErrUserAlreadyExists
	}

	user := &model.User{
		ID:       id.NewUUID(),
		Username: username,
		Email:    email,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return user, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return user, nil
}
