package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/models"
	pkgauth "github.com/campusportal/backend/pkg/auth"
	pkglogger "github.com/campusportal/backend/pkg/logger"
)

// UserRepository defines the credential-store operations the services need.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByCID(ctx context.Context, cid string) (*models.User, error)
	GetByEmailOrCID(ctx context.Context, email, cid string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User, password string) (*models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// AuthService orchestrates credential verification and token issuance.
type AuthService struct {
	repo        UserRepository
	tm          *auth.TokenManager
	delay       *auth.FailureDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(repo UserRepository, tm *auth.TokenManager, delay *auth.FailureDelay, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		repo:        repo,
		tm:          tm,
		delay:       delay,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// UserResponse is a user as returned to clients. There is deliberately no
// password field here at all.
type UserResponse struct {
	ID        int64  `json:"id"`
	UserType  string `json:"userType"`
	FullName  string `json:"fullName"`
	CID       string `json:"cid"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse carries the authenticated user plus their session token.
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// RegisterInput holds the validated registration fields.
type RegisterInput struct {
	UserType string
	FullName string
	CID      string
	Email    string
	Phone    string
	Password string
}

// Register creates a new account and logs the user straight in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CID = strings.TrimSpace(in.CID)
	in.FullName = strings.TrimSpace(in.FullName)

	if !models.ValidRole(in.UserType) {
		return nil, models.ErrInvalidArgument
	}
	if err := pkgauth.ValidatePassword(in.Password); err != nil {
		return nil, models.ErrInvalidArgument
	}

	// Friendly pre-check; the unique indexes still decide races.
	_, err := s.repo.GetByEmailOrCID(ctx, in.Email, in.CID)
	if err == nil {
		s.logger.Info("registration failed: identity already exists")
		return nil, models.ErrDuplicateIdentity
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing identity", slog.Any("error", err))
		return nil, err
	}

	user := &models.User{
		UserType: in.UserType,
		FullName: in.FullName,
		CID:      in.CID,
		Email:    in.Email,
		Phone:    in.Phone,
	}

	created, err := s.repo.Create(ctx, user, in.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateIdentity) {
			return nil, models.ErrDuplicateIdentity
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, err
	}

	token, err := s.tm.GenerateToken(created)
	if err != nil {
		s.logger.Error("failed to sign token", slog.Int64("user_id", created.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", created.ID),
		slog.String("user_type", created.UserType))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "user_registered",
		UserID:    created.ID,
		UserType:  created.UserType,
		Success:   true,
	})

	return &AuthResponse{
		User:  UserModelToResponse(created),
		Token: token,
	}, nil
}

// Login resolves the identifier as email first, then as college ID, verifies
// the password and issues a session token. A missing user and a wrong
// password both fail with the identical ErrInvalidCredentials; a deactivated
// account is reported as such without ever touching the password.
func (s *AuthService) Login(ctx context.Context, identifier, password, ipAddress string) (*AuthResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, models.ErrNotFound) {
		user, err = s.repo.GetByCID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.failLogin(0, "invalid_credentials", ipAddress)
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", slog.Any("error", err))
		return nil, err
	}

	// Deactivated accounts short-circuit before any password comparison.
	if !user.IsActive {
		s.failLogin(user.ID, "account_deactivated", ipAddress)
		return nil, models.ErrAccountDeactivated
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.failLogin(user.ID, "invalid_credentials", ipAddress)
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tm.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to sign token", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		UserType:  user.UserType,
		IPAddress: ipAddress,
		Success:   true,
	})

	return &AuthResponse{
		User:  UserModelToResponse(user),
		Token: token,
	}, nil
}

// Verify validates a presented token and returns the current user record
// behind it. The token alone authenticates; the re-fetch gives callers
// up-to-date profile data.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*UserResponse, error) {
	claims, err := s.tm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to fetch user for token verification",
			slog.Int64("user_id", claims.UserID), slog.Any("error", err))
		return nil, err
	}

	return UserModelToResponse(user), nil
}

// failLogin pads the failure and records it. The pad keeps "no such user"
// and "wrong password" from being distinguishable by response time.
func (s *AuthService) failLogin(userID int64, reason, ipAddress string) {
	if s.delay != nil {
		s.delay.Sleep()
	}
	s.logger.Info("login failed", slog.String("reason", reason))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "login_failed",
		UserID:        userID,
		IPAddress:     ipAddress,
		FailureReason: reason,
		Success:       false,
	})
}

// UserModelToResponse strips a stored user down to its client-facing shape.
func UserModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		UserType:  user.UserType,
		FullName:  user.FullName,
		CID:       user.CID,
		Email:     user.Email,
		Phone:     user.Phone,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
