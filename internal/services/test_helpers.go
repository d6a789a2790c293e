package services

import (
	"context"
	"sync"
	"time"

	"github.com/campusportal/backend/internal/models"
	pkgauth "github.com/campusportal/backend/pkg/auth"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc         func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	GetByCIDFunc        func(ctx context.Context, cid string) (*models.User, error)
	GetByEmailOrCIDFunc func(ctx context.Context, email, cid string) (*models.User, error)
	ListFunc            func(ctx context.Context) ([]*models.User, error)
	CreateFunc          func(ctx context.Context, user *models.User, password string) (*models.User, error)
	UpdateFunc          func(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	DeleteFunc          func(ctx context.Context, id int64) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByCID(ctx context.Context, cid string) (*models.User, error) {
	if m.GetByCIDFunc != nil {
		return m.GetByCIDFunc(ctx, cid)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmailOrCID(ctx context.Context, email, cid string) (*models.User, error) {
	if m.GetByEmailOrCIDFunc != nil {
		return m.GetByEmailOrCIDFunc(ctx, email, cid)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockContactRepository implements ContactRepository for testing
type MockContactRepository struct {
	CreateFunc       func(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*models.Contact, error)
	ListFunc         func(ctx context.Context) ([]*models.Contact, error)
	ListByStatusFunc func(ctx context.Context, status string) ([]*models.Contact, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status string) (*models.Contact, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockContactRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	return nil, models.ErrInternalServer
}

func (m *MockContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Contact{}, nil
}

func (m *MockContactRepository) ListByStatus(ctx context.Context, status string) ([]*models.Contact, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	if !models.ValidContactStatus(status) {
		return nil, models.ErrInvalidArgument
	}
	return []*models.Contact{}, nil
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	if !models.ValidContactStatus(status) {
		return nil, models.ErrInvalidArgument
	}
	return nil, models.ErrNotFound
}

func (m *MockContactRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockContactNotifier records notified messages for assertions
type MockContactNotifier struct {
	mu       sync.Mutex
	Notified []*models.Contact
	Err      error
}

func (m *MockContactNotifier) NotifyNewMessage(ctx context.Context, contact *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Notified = append(m.Notified, contact)
	return nil
}

// NewTestUser builds an active user with a real bcrypt hash of password.
func NewTestUser(id int64, email, cid, userType, password string) *models.User {
	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &models.User{
		ID:           id,
		UserType:     userType,
		FullName:     "Test User",
		CID:          cid,
		Email:        email,
		Phone:        "5550100",
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}
