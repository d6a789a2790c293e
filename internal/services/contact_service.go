package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campusportal/backend/internal/models"
)

// ContactRepository defines the inbox storage operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactNotifier is told about new inbox messages. Implementations must not
// be load-bearing: submission succeeds whether or not notification does.
type ContactNotifier interface {
	NotifyNewMessage(ctx context.Context, contact *models.Contact) error
}

// ContactService handles the public contact form and its admin inbox.
type ContactService struct {
	repo     ContactRepository
	notifier ContactNotifier // nil when notifications are not configured
	logger   *slog.Logger
}

func NewContactService(repo ContactRepository, notifier ContactNotifier, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit stores a new message and, when configured, notifies the portal
// administrators. Notification failures are logged and swallowed.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		s.logger.Error("failed to store contact message", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("contact message received", slog.Int64("contact_id", created.ID))

	if s.notifier != nil {
		if err := s.notifier.NotifyNewMessage(ctx, created); err != nil {
			s.logger.Warn("contact notification failed",
				slog.Int64("contact_id", created.ID), slog.Any("error", err))
		}
	}

	return created, nil
}

func (s *ContactService) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get contact", slog.Int64("contact_id", id), slog.Any("error", err))
		return nil, err
	}
	return contact, nil
}

// ListAll returns the whole inbox, newest first.
func (s *ContactService) ListAll(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list contacts", slog.Any("error", err))
		return nil, err
	}
	return contacts, nil
}

// ListByStatus filters the inbox by status; an unknown status fails with
// ErrInvalidArgument.
func (s *ContactService) ListByStatus(ctx context.Context, status string) ([]*models.Contact, error) {
	contacts, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			return nil, models.ErrInvalidArgument
		}
		s.logger.Error("failed to list contacts by status",
			slog.String("status", status), slog.Any("error", err))
		return nil, err
	}
	return contacts, nil
}

// UpdateStatus sets a message's status to any of new/read/replied.
func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error) {
	contact, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrNotFound):
			return nil, err
		}
		s.logger.Error("failed to update contact status",
			slog.Int64("contact_id", id), slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("contact status updated",
		slog.Int64("contact_id", id), slog.String("status", status))
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete contact", slog.Int64("contact_id", id), slog.Any("error", err))
		return err
	}
	return nil
}
