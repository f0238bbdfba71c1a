package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	usererrors "hotelier/internal/users/errors"
	"hotelier/internal/users/registry"
	"hotelier/internal/users/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
	"hotelier/pkg/password"
)

type UserService interface {
	Register(ctx context.Context, in *model.UserRegistration) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Authenticate(ctx context.Context, creds *model.Credentials) (*model.User, error)
	Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error)
	ChangePassword(ctx context.Context, id string, change *model.PasswordChange) error
}

type userService struct {
	directory registry.UserDirectory
	validator *validator.UserValidator
	cfg       *config.Config

	newID func() string
}

func NewUserService(
	directory registry.UserDirectory,
	v *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		directory: directory,
		validator: v,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

func (s *userService) Register(ctx context.Context, in *model.UserRegistration) (*model.User, error) {
	s.sanitize(in)

	if err := s.validator.ValidateRegistration(in); err != nil {
		s.cfg.Log.Warn("User registration validation failed",
			"email", in.Email,
			"error", err,
		)
		return nil, apperrors.Validation("User registration validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	hash, err := password.Hash(in.Password, s.cfg.BcryptCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &model.User{
		ID:           s.newID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}

	if err := s.directory.Add(user); err != nil {
		if errors.Is(err, usererrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		s.cfg.Log.Error("Failed to store user", "email", in.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered successfully",
		"id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	user, err := s.directory.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("User", id)
	}
	return user, nil
}

// GetByEmail looks the user up by trimmed email. The match itself is
// case-sensitive: only surrounding whitespace is forgiven.
func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}
	user, err := s.directory.GetByEmail(email)
	if err != nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

// Authenticate verifies the credentials against the stored bcrypt hash.
// Unknown emails and wrong passwords both produce the same unauthorized
// error so callers cannot probe which emails are registered.
func (s *userService) Authenticate(ctx context.Context, creds *model.Credentials) (*model.User, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	user, err := s.directory.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}
	if !password.Verify(user.PasswordHash, creds.Password) {
		s.cfg.Log.Warn("Authentication failed", "email", email)
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.cfg.Log.Info("User authenticated", "id", user.ID)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	existing, err := s.directory.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("User", id)
	}

	merged := s.merge(existing, patch)

	if err := s.validator.ValidateProfile(merged); err != nil {
		s.cfg.Log.Warn("User update validation failed",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Validation("User update validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.directory.Update(id, merged); err != nil {
		if errors.Is(err, usererrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		s.cfg.Log.Error("Failed to update user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated successfully", "id", id)
	return existing, nil
}

func (s *userService) ChangePassword(ctx context.Context, id string, change *model.PasswordChange) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.directory.GetByID(id)
	if err != nil {
		return apperrors.NotFoundWithID("User", id)
	}

	if !password.Verify(user.PasswordHash, change.CurrentPassword) {
		return apperrors.Unauthorized("Current password is incorrect")
	}

	if err := s.validator.ValidatePassword(change.NewPassword); err != nil {
		return apperrors.Validation("Password validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	hash, err := password.Hash(change.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "id", id, "error", err)
		return apperrors.Internal("Failed to change password", err)
	}

	updated := *user
	updated.PasswordHash = hash
	if err := s.directory.Update(id, &updated); err != nil {
		s.cfg.Log.Error("Failed to store new password", "id", id, "error", err)
		return apperrors.Internal("Failed to change password", err)
	}

	s.cfg.Log.Info("Password changed", "id", id)
	return nil
}

func (s *userService) sanitize(in *model.UserRegistration) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (s *userService) merge(existing *model.User, patch *model.UserPatch) *model.User {
	merged := *existing

	if patch.FirstName != nil {
		merged.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		merged.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		merged.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		merged.Phone = strings.TrimSpace(*patch.Phone)
	}

	return &merged
}
