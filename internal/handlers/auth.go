package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/internal/services"
	pkghttp "github.com/campusportal/backend/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResponse, error)
	Login(ctx context.Context, identifier, password, ipAddress string) (*services.AuthResponse, error)
	Verify(ctx context.Context, token string) (*services.UserResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Request DTOs

// RegisterRequest mirrors the registration form fields.
type RegisterRequest struct {
	UserType        string `json:"userType" validate:"required,oneof=Student Faculty Admin Parent"`
	FullName        string `json:"fullName" validate:"required,min=1"`
	CID             string `json:"cid" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=1"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest accepts an email address or college ID in loginEmail.
type LoginRequest struct {
	LoginEmail    string `json:"loginEmail" validate:"required"`
	LoginPassword string `json:"loginPassword" validate:"required"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	authResp, err := h.service.Register(r.Context(), services.RegisterInput{
		UserType: req.UserType,
		FullName: req.FullName,
		CID:      req.CID,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateIdentity):
			pkghttp.WriteConflict(w, "User with this email or college ID already exists")
		case errors.Is(err, models.ErrInvalidArgument):
			pkghttp.WriteBadRequest(w, "Registration failed: invalid input")
		default:
			pkghttp.WriteInternalError(w, "Registration failed. Please try again.")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, "User registered successfully", authResp)
}

// Login handles user login by email or college ID
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	ipAddress := pkghttp.ExtractClientIP(r)

	authResp, err := h.service.Login(r.Context(), req.LoginEmail, req.LoginPassword, ipAddress)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			// Never reveals whether the identifier or the password was wrong
			pkghttp.WriteUnauthorized(w, "Invalid email/username or password")
		case errors.Is(err, models.ErrAccountDeactivated):
			pkghttp.WriteForbidden(w, "Account is deactivated. Please contact administrator.")
		default:
			pkghttp.WriteInternalError(w, "Login failed. Please try again.")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Login successful", authResp)
}

// Verify validates the presented token and returns the user behind it
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Verify(r.Context(), auth.BearerToken(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingToken):
			pkghttp.WriteUnauthorized(w, "Token required")
		case errors.Is(err, models.ErrInvalidToken):
			pkghttp.WriteForbidden(w, "Invalid or expired token")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Verification failed")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"user": user})
}
