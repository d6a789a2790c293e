package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/campusportal/backend/internal/models"
	pkghttp "github.com/campusportal/backend/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ContactServiceInterface defines the interface for contact inbox logic
type ContactServiceInterface interface {
	Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	ListAll(ctx context.Context) ([]*models.Contact, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactHandler handles the public contact form and the admin inbox
type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactSubmitRequest mirrors the public contact form fields.
type ContactSubmitRequest struct {
	ContactName    string `json:"contactName" validate:"required,min=1"`
	ContactEmail   string `json:"contactEmail" validate:"required,email"`
	ContactSubject string `json:"contactSubject" validate:"required,min=1"`
	ContactMessage string `json:"contactMessage" validate:"required,min=1"`
}

// UpdateContactStatusRequest moves a message between inbox states.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

// Submit accepts a public contact-form submission
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactSubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	contact, err := h.service.Submit(r.Context(),
		req.ContactName, req.ContactEmail, req.ContactSubject, req.ContactMessage)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to submit message. Please try again.")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated,
		"Your message has been sent successfully. We will get back to you soon.",
		map[string]interface{}{"contactId": contact.ID})
}

// ListAll returns the whole inbox, newest first (admin only)
func (h *ContactHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListAll(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch contacts")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "", contacts)
}

// ListByStatus filters the inbox by status (admin only)
func (h *ContactHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")

	contacts, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			pkghttp.WriteBadRequest(w, "Invalid status value")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to fetch contacts")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "", contacts)
}

// UpdateStatus moves a message to a new status (admin only)
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid contact ID")
		return
	}

	var req UpdateContactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	contact, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidArgument):
			pkghttp.WriteBadRequest(w, "Invalid status value")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Contact not found")
		default:
			pkghttp.WriteInternalError(w, "Failed to update contact status")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Contact status updated", contact)
}

// Delete removes a message from the inbox (admin only)
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid contact ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Contact not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to delete contact")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Contact deleted successfully", nil)
}

func contactIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
