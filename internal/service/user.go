package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/repository"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Update(ctx context.Context, id uint64, name, email string) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.User, error)
}

// UserService manages user accounts through the management API.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUserInput carries the fields of a new account. PasswordHash
// may be empty; such accounts cannot log in until they register.
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

// Create validates and persists a new user. A duplicate email is
// reported as a conflict.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.User{}, domain.NewValidation("user name is required")
	}
	if !validEmail(in.Email) {
		return model.User{}, domain.NewValidation("invalid email")
	}
	id, err := s.users.Create(ctx, in.Name, in.Email, in.PasswordHash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, domain.NewConflict("email already in use")
		}
		return model.User{}, err
	}
	return s.users.GetByID(ctx, id)
}

// UpdateUserInput carries a partial user update; nil fields keep
// their current value.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Update applies a partial edit to a user.
func (s *UserService) Update(ctx context.Context, id uint64, in UpdateUserInput) (model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.User{}, domain.NewValidation("user name cannot be blank")
		}
		u.Name = *in.Name
	}
	if in.Email != nil {
		if !validEmail(*in.Email) {
			return model.User{}, domain.NewValidation("invalid email")
		}
		u.Email = *in.Email
	}
	if err := s.users.Update(ctx, id, u.Name, u.Email); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, domain.NewConflict("email already in use")
		}
		return model.User{}, err
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches one user.
func (s *UserService) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, domain.NewNotFound("user not found")
		}
		return model.User{}, err
	}
	return u, nil
}

// Delete removes a user. Deleting an unknown id is not an error.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return s.users.Delete(ctx, id)
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// validEmail applies a minimal shape check; the database's unique
// index handles duplicates.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
