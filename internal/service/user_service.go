package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// UserService defines the interface for account business logic
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Authenticate(ctx context.Context, email, password string) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	SetDisplayPreference(ctx context.Context, userID uuid.UUID, darkMode bool) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	users   repository.UserRepository
	tokens  TokenService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(users repository.UserRepository, tokens TokenService, m *metrics.Metrics, logger *zap.Logger) UserService {
	return &userServiceImpl{
		users:   users,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// Register creates an account with a bcrypt-hashed password
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, response.NewValidationError("Password is required", "")
	}
	if req.Password != req.ConfirmPassword {
		return nil, response.NewValidationError("Passwords must match", "")
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, response.NewInternalError("Failed to check username", err)
	}
	if taken {
		return nil, response.NewAlreadyExistsError("That username is taken", "")
	}
	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, response.NewInternalError("Failed to check email", err)
	}
	if taken {
		return nil, response.NewAlreadyExistsError("That email is already registered", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAlreadyExistsError("Username or email already registered", "")
		}
		return nil, response.NewInternalError("Failed to create user", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementUserRegistered()
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	resp := toUserResponse(user)
	return &resp, nil
}

// Authenticate checks the password of the account registered under email
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError("Invalid email or password", "")
		}
		return nil, response.NewInternalError("Failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, response.NewUnauthorizedError("Invalid email or password", "")
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Login authenticates and issues an access token
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &dto.TokenResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt,
		User:        *user,
	}, nil
}

// Logout revokes the presented token
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to fetch user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// SetDisplayPreference stores the dark mode flag
func (s *userServiceImpl) SetDisplayPreference(ctx context.Context, userID uuid.UUID, darkMode bool) (*dto.UserResponse, error) {
	if err := s.users.UpdateDarkMode(ctx, userID, darkMode); err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to update settings")
	}
	return s.GetUser(ctx, userID)
}
