package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/campusportal/backend/internal/models"
	pkglogger "github.com/campusportal/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo UserRepository) *UserService {
	logger := slog.Default()
	return NewUserService(repo, logger, pkglogger.NewAuditLogger(logger))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserService_GetProfile(t *testing.T) {
	user := NewTestUser(1, "a@x.edu", "C100", models.RoleStudent, "secret1")

	mockRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return user, nil
		},
	}

	svc := newTestUserService(mockRepo)

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.edu", resp.Email)
	assert.Equal(t, "C100", resp.CID)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc := newTestUserService(&MockUserRepository{})

	_, err := svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	var captured models.UserUpdate
	mockRepo := &MockUserRepository{
		UpdateFunc: func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
			captured = update
			user := NewTestUser(id, "a@x.edu", "C100", models.RoleStudent, "secret1")
			user.FullName = *update.FullName
			return user, nil
		},
	}

	svc := newTestUserService(mockRepo)

	resp, err := svc.UpdateProfile(context.Background(), 1, strPtr("New Name"), nil)
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)

	// Self-service updates can never carry isActive
	assert.Nil(t, captured.IsActive)
}

func TestUserService_UpdateProfile_NoFields(t *testing.T) {
	mockRepo := &MockUserRepository{
		UpdateFunc: func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
			if update.Empty() {
				return nil, models.ErrNoOpUpdate
			}
			return nil, models.ErrInternalServer
		},
	}

	svc := newTestUserService(mockRepo)

	_, err := svc.UpdateProfile(context.Background(), 1, nil, nil)
	assert.ErrorIs(t, err, models.ErrNoOpUpdate)
}

func TestUserService_ListUsers_StripsPasswords(t *testing.T) {
	mockRepo := &MockUserRepository{
		ListFunc: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{
				NewTestUser(1, "a@x.edu", "C100", models.RoleStudent, "secret1"),
				NewTestUser(2, "b@x.edu", "C200", models.RoleFaculty, "secret2"),
			}, nil
		},
	}

	svc := newTestUserService(mockRepo)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleFaculty, users[1].UserType)
}

func TestUserService_AdminUpdate_Deactivate(t *testing.T) {
	mockRepo := &MockUserRepository{
		UpdateFunc: func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
			user := NewTestUser(id, "a@x.edu", "C100", models.RoleStudent, "secret1")
			user.IsActive = *update.IsActive
			return user, nil
		},
	}

	svc := newTestUserService(mockRepo)

	resp, err := svc.AdminUpdate(context.Background(), 1, models.UserUpdate{IsActive: boolPtr(false)}, 9)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestUserService_DeleteUser(t *testing.T) {
	deleted := false
	mockRepo := &MockUserRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}

	svc := newTestUserService(mockRepo)

	require.NoError(t, svc.DeleteUser(context.Background(), 1, 9))
	assert.True(t, deleted)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := &MockUserRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return models.ErrNotFound
		},
	}

	svc := newTestUserService(mockRepo)

	err := svc.DeleteUser(context.Background(), 1, 9)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
