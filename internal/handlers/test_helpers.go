package handlers

import (
	"context"

	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/internal/services"
)

// MockAuthService implements AuthServiceInterface for handler tests.
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, in services.RegisterInput) (*services.AuthResponse, error)
	LoginFunc    func(ctx context.Context, identifier, password, ipAddress string) (*services.AuthResponse, error)
	VerifyFunc   func(ctx context.Context, token string) (*services.UserResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResponse, error) {
	return m.RegisterFunc(ctx, in)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password, ipAddress string) (*services.AuthResponse, error) {
	return m.LoginFunc(ctx, identifier, password, ipAddress)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*services.UserResponse, error) {
	return m.VerifyFunc(ctx, token)
}

// MockUserService implements UserServiceInterface for handler tests.
type MockUserService struct {
	GetProfileFunc    func(ctx context.Context, id int64) (*services.UserResponse, error)
	UpdateProfileFunc func(ctx context.Context, id int64, fullName, phone *string) (*services.UserResponse, error)
	ListUsersFunc     func(ctx context.Context) ([]*services.UserResponse, error)
	AdminUpdateFunc   func(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*services.UserResponse, error)
	DeleteUserFunc    func(ctx context.Context, id int64, actorID int64) error
}

func (m *MockUserService) GetProfile(ctx context.Context, id int64) (*services.UserResponse, error) {
	return m.GetProfileFunc(ctx, id)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) (*services.UserResponse, error) {
	return m.UpdateProfileFunc(ctx, id, fullName, phone)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*services.UserResponse, error) {
	return m.ListUsersFunc(ctx)
}

func (m *MockUserService) AdminUpdate(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*services.UserResponse, error) {
	return m.AdminUpdateFunc(ctx, id, update, actorID)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64, actorID int64) error {
	return m.DeleteUserFunc(ctx, id, actorID)
}

// MockContactService implements ContactServiceInterface for handler tests.
type MockContactService struct {
	SubmitFunc       func(ctx context.Context, name, email, subject, message string) (*models.Contact, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*models.Contact, error)
	ListAllFunc      func(ctx context.Context) ([]*models.Contact, error)
	ListByStatusFunc func(ctx context.Context, status string) ([]*models.Contact, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status string) (*models.Contact, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
	return m.SubmitFunc(ctx, name, email, subject, message)
}

func (m *MockContactService) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockContactService) ListAll(ctx context.Context) ([]*models.Contact, error) {
	return m.ListAllFunc(ctx)
}

func (m *MockContactService) ListByStatus(ctx context.Context, status string) ([]*models.Contact, error) {
	return m.ListByStatusFunc(ctx, status)
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *MockContactService) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func testUserResponse() *services.UserResponse {
	return &services.UserResponse{
		ID:        1,
		UserType:  models.RoleStudent,
		FullName:  "Ada Lovelace",
		CID:       "C100",
		Email:     "ada@college.edu",
		Phone:     "5550001111",
		IsActive:  true,
		CreatedAt: "2025-03-01T10:00:00Z",
	}
}
