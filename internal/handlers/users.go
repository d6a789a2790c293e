package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/internal/services"
	pkghttp "github.com/campusportal/backend/pkg/http"
	"github.com/go-chi/chi/v5"
)

// UserServiceInterface defines the interface for user business logic
type UserServiceInterface interface {
	GetProfile(ctx context.Context, id int64) (*services.UserResponse, error)
	UpdateProfile(ctx context.Context, id int64, fullName, phone *string) (*services.UserResponse, error)
	ListUsers(ctx context.Context) ([]*services.UserResponse, error)
	AdminUpdate(ctx context.Context, id int64, update models.UserUpdate, actorID int64) (*services.UserResponse, error)
	DeleteUser(ctx context.Context, id int64, actorID int64) error
}

// UserHandler handles profile and user-administration HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateProfileRequest carries the owner-editable profile fields.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,min=1"`
}

// AdminUpdateUserRequest additionally allows flipping the active flag.
type AdminUpdateUserRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,min=1"`
	IsActive *bool   `json:"isActive"`
}

// GetProfile returns the authenticated user's own record
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Token required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to fetch profile")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "", user)
}

// UpdateProfile lets the authenticated user edit fullName and phone
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Token required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, req.FullName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoOpUpdate):
			pkghttp.WriteBadRequest(w, "No valid fields to update")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Profile updated successfully", user)
}

// ListUsers returns all accounts (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch users")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "", users)
}

// UpdateUser applies an administrative update to any account (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Token required")
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var req AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	update := models.UserUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	}

	user, err := h.service.AdminUpdate(r.Context(), id, update, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoOpUpdate):
			pkghttp.WriteBadRequest(w, "No valid fields to update")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Failed to update user")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "User updated successfully", user)
}

// DeleteUser removes an account permanently (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Token required")
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to delete user")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
