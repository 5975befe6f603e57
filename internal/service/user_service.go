package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/config"
	"github.com/micorpx/acquisitions/internal/domain"
	"github.com/micorpx/acquisitions/internal/events"
	"github.com/micorpx/acquisitions/internal/repository"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// UserService coordinates account registration, authentication, and CRUD.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// UserDependencies encapsulates collaborator requirements.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// UserUpdate carries the optional mutation fields for UpdateUser. A nil
// field leaves the current value untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// ChangesRole reports whether the mutation touches the role field.
func (u UserUpdate) ChangesRole() bool {
	return u.Role != nil
}

// CreateUser registers a new account and returns it with a signed token.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewConflict("Email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.Sign(domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserRegistered, user)
	return user, token, nil
}

// AuthenticateUser verifies credentials and returns the account with a
// fresh token.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewNotFound("User not found")
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("Invalid credentials")
	}

	token, _, err := s.tokenMgr.Sign(domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserSignedIn, user)
	return user, token, nil
}

// GetAllUsers lists every account.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// GetUserByID fetches one account.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the provided mutation fields. Passwords are
// re-hashed; a duplicate email surfaces as a conflict via the unique
// constraint mapping.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User not found")
		}
		return err
	}

	s.publish(ctx, events.EventUserDeleted, user)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.UserEventPayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
}
