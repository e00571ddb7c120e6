package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/service/auth"
	"github.com/phrazzld/discuss-api/internal/store"
)

// UserService provides account operations.
type UserService interface {
	// Register creates an account and returns it without its password.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate checks credentials and returns the matching user.
	// Any mismatch yields ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type userServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	newErr := func(msg string) error {
		return &ServiceError{Service: "user", Operation: "create_service", Message: msg}
	}
	switch {
	case users == nil:
		return nil, newErr("users cannot be nil")
	case hasher == nil:
		return nil, newErr("hasher cannot be nil")
	case verifier == nil:
		return nil, newErr("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With("component", "user_service"),
	}, nil
}

// Register implements UserService.
func (s *userServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		log.Debug("failed to create user", "error", err, "username", user.Username)
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate implements UserService.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login for unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("user", "authenticate", "failed to load user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
