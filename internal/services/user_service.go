package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campusportal/backend/internal/models"
	pkglogger "github.com/campusportal/backend/pkg/logger"
)

// UserService handles profile and administrative account operations.
type UserService struct {
	repo        UserRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewUserService(repo UserRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// GetProfile returns a user by ID, password stripped.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, err
	}

	return UserModelToResponse(user), nil
}

// UpdateProfile applies a self-service profile edit. Owners may change
// fullName and phone only; isActive stays administrative.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) (*UserResponse, error) {
	update := models.UserUpdate{
		FullName: fullName,
		Phone:    phone,
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoOpUpdate), errors.Is(err, models.ErrNotFound):
			return nil, err
		}
		s.logger.Error("failed to update profile", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("profile updated", slog.Int64("user_id", id))
	return UserModelToResponse(updated), nil
}

// ListUsers returns every account, newest first, passwords stripped.
func (s *UserService) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, UserModelToResponse(user))
	}
	return responses, nil
}

// AdminUpdate applies an administrative update, which may flip isActive.
func (s *UserService) AdminUpdate(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*UserResponse, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoOpUpdate), errors.Is(err, models.ErrNotFound):
			return nil, err
		}
		s.logger.Error("failed to update user", slog.Int64("user_id", id), slog.Any("error", err))
		return nil, err
	}

	if update.IsActive != nil && !*update.IsActive {
		s.auditLogger.LogAccountAction("account_deactivated", id, actorID)
	}
	s.logger.Info("user updated by admin",
		slog.Int64("user_id", id), slog.Int64("actor_id", actorID))

	return UserModelToResponse(updated), nil
}

// DeleteUser removes an account permanently. There is no soft-delete path.
func (s *UserService) DeleteUser(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.Int64("user_id", id), slog.Any("error", err))
		return err
	}

	s.auditLogger.LogAccountAction("account_deleted", id, actorID)
	return nil
}
