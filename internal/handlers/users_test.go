package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withClaims(req *http.Request, userID int64, userType string) *http.Request {
	claims := &models.TokenClaims{
		UserID:   userID,
		Email:    "ada@college.edu",
		UserType: userType,
		CID:      "C100",
	}
	ctx := context.WithValue(req.Context(), auth.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	mock := &MockUserService{
		GetProfileFunc: func(ctx context.Context, id int64) (*services.UserResponse, error) {
			assert.Equal(t, int64(1), id)
			return testUserResponse(), nil
		},
	}
	handler := NewUserHandler(mock)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil), 1, models.RoleStudent)
	rec := httptest.NewRecorder()
	handler.GetProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	user, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada@college.edu", user["email"])
}

func TestUserHandler_GetProfile_NoClaims(t *testing.T) {
	handler := NewUserHandler(&MockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	rec := httptest.NewRecorder()
	handler.GetProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_UpdateProfile_Success(t *testing.T) {
	mock := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id int64, fullName, phone *string) (*services.UserResponse, error) {
			require.NotNil(t, fullName)
			assert.Equal(t, "Ada King", *fullName)
			assert.Nil(t, phone)
			resp := testUserResponse()
			resp.FullName = *fullName
			return resp, nil
		},
	}
	handler := NewUserHandler(mock)

	body, _ := json.Marshal(map[string]string{"fullName": "Ada King"})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewReader(body)), 1, models.RoleStudent)
	rec := httptest.NewRecorder()
	handler.UpdateProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Profile updated successfully", env.Message)
}

func TestUserHandler_UpdateProfile_NoFields(t *testing.T) {
	mock := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id int64, fullName, phone *string) (*services.UserResponse, error) {
			return nil, models.ErrNoOpUpdate
		},
	}
	handler := NewUserHandler(mock)

	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewReader([]byte(`{}`))), 1, models.RoleStudent)
	rec := httptest.NewRecorder()
	handler.UpdateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "No valid fields to update", env.Message)
}

func TestUserHandler_ListUsers_Success(t *testing.T) {
	mock := &MockUserService{
		ListUsersFunc: func(ctx context.Context) ([]*services.UserResponse, error) {
			return []*services.UserResponse{testUserResponse()}, nil
		},
	}
	handler := NewUserHandler(mock)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/users/all", nil), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	handler.ListUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	users, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func adminRouter(handler *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Put("/api/users/{id}", handler.UpdateUser)
	r.Delete("/api/users/{id}", handler.DeleteUser)
	return r
}

func TestUserHandler_UpdateUser_Deactivate(t *testing.T) {
	mock := &MockUserService{
		AdminUpdateFunc: func(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*services.UserResponse, error) {
			assert.Equal(t, int64(1), id)
			assert.Equal(t, int64(2), actorID)
			require.NotNil(t, update.IsActive)
			assert.False(t, *update.IsActive)
			resp := testUserResponse()
			resp.IsActive = false
			return resp, nil
		},
	}
	handler := NewUserHandler(mock)

	body, _ := json.Marshal(map[string]bool{"isActive": false})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/users/1", bytes.NewReader(body)), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	adminRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "User updated successfully", env.Message)
}

func TestUserHandler_UpdateUser_InvalidID(t *testing.T) {
	handler := NewUserHandler(&MockUserService{})

	body, _ := json.Marshal(map[string]bool{"isActive": false})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/users/abc", bytes.NewReader(body)), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	adminRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	mock := &MockUserService{
		AdminUpdateFunc: func(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*services.UserResponse, error) {
			return nil, models.ErrNotFound
		},
	}
	handler := NewUserHandler(mock)

	body, _ := json.Marshal(map[string]bool{"isActive": true})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/users/99", bytes.NewReader(body)), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	adminRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "User not found", env.Message)
}

func TestUserHandler_DeleteUser_Success(t *testing.T) {
	mock := &MockUserService{
		DeleteUserFunc: func(ctx context.Context, id int64, actorID int64) error {
			assert.Equal(t, int64(1), id)
			return nil
		},
	}
	handler := NewUserHandler(mock)

	req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/users/1", nil), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	adminRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "User deleted successfully", env.Message)
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	mock := &MockUserService{
		DeleteUserFunc: func(ctx context.Context, id int64, actorID int64) error {
			return models.ErrNotFound
		},
	}
	handler := NewUserHandler(mock)

	req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/users/99", nil), 2, models.RoleAdmin)
	rec := httptest.NewRecorder()
	adminRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
