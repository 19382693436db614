package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser converts db.User to types.User, excluding password hash
func toAPIUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash, db.RoleUser)
	if err != nil {
		var dup *db.ErrDuplicate
		if errors.As(err, &dup) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toAPIUser(u), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller
	if u == nil || !s.passwordConfig.VerifyPassword(req.Password, u.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toAPIUser(u), nil
}

// AdminLogin authenticates like Login and additionally requires the admin role
func (s *UserService) AdminLogin(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	u, err := s.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if u.Role != db.RoleAdmin {
		return nil, &ErrInvalidCredentials{}
	}
	return u, nil
}

// GetProfile returns the profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAPIUser(u), nil
}

// UpdateProfile applies the fields present in req
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.User, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), u.Email) {
		exists, err := s.store.CheckEmailExists(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, &ErrEmailAlreadyExists{Email: *req.Email}
		}
		u.Email = *req.Email
	}
	if req.ProfilePhoto != nil {
		u.ProfilePhoto = *req.ProfilePhoto
	}

	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return toAPIUser(u), nil
}

// SetProfilePhoto stores the URL of an uploaded profile photo
func (s *UserService) SetProfilePhoto(ctx context.Context, userID uuid.UUID, url string) (*types.User, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.ProfilePhoto = url
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return toAPIUser(u), nil
}

// RequireAdmin checks that the user exists and has the admin role
func (s *UserService) RequireAdmin(ctx context.Context, userID uuid.UUID) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return &ErrAdminRequired{}
	}
	return nil
}

func (s *UserService) load(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return u, nil
}

func (s *UserService) save(ctx context.Context, u *db.User) error {
	if err := s.store.UpdateUser(ctx, u); err != nil {
		var dup *db.ErrDuplicate
		if errors.As(err, &dup) {
			return &ErrEmailAlreadyExists{Email: u.Email}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
