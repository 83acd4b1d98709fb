package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mertc/notebook/internal/app/models"
	"github.com/mertc/notebook/internal/app/models/dto"
	"github.com/mertc/notebook/internal/pkg/apperrors"
	"github.com/mertc/notebook/internal/pkg/auth"
	"github.com/mertc/notebook/internal/pkg/logger"
)

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CollegeStore is the persistence surface for colleges.
type CollegeStore interface {
	Create(ctx context.Context, college *models.College) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.College, error)
	GetAll(ctx context.Context) ([]*models.College, error)
}

// AuthService defines registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	users      UserStore
	colleges   CollegeStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users UserStore, colleges CollegeStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		colleges:   colleges,
		jwtService: jwtService,
	}
}

// Register creates a new user account and returns a signed token for it.
// The admin role cannot be self-assigned; it only exists through seeding.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.colleges.GetByID(ctx, req.CollegeID); err != nil {
		if errors.Is(err, apperrors.ErrCollegeNotFound) {
			return nil, apperrors.NewValidationError("collegeId does not reference an existing college")
		}
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, err
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		Name:      strings.TrimSpace(req.Name),
		RoleType:  models.RoleType(req.Role),
		CollegeID: req.CollegeID,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Failed to generate token after registration")
		return nil, err
	}

	logger.Info().Int64("userID", id).Str("role", req.Role).Msg("User registered")

	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token during login")
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

// GetProfile returns the user for an authenticated id.
func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
