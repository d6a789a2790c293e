package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusportal/backend/internal/models"
)

func TestContactSubmission(t *testing.T) {
	cleanTables(t)

	body := ContactFormBody("submit")
	resp, err := testServer.Request(http.MethodPost, "/api/contact/submit", body, ipHeaders("10.3.0.1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Your message has been sent successfully. We will get back to you soon.", envelope.Message)

	var data struct {
		ContactID int64 `json:"contactId"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotZero(t, data.ContactID)

	// New submissions always start in the "new" state
	var status string
	err = testDB.Pool.QueryRow(context.Background(),
		"SELECT status FROM contacts WHERE id = $1", data.ContactID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusNew, status)

	// The admin notifier saw the message
	require.Len(t, testServer.Notifier.Notified, 1)
	assert.Equal(t, body["contactSubject"], testServer.Notifier.Notified[0].Subject)
}

func TestContactSubmissionValidation(t *testing.T) {
	cleanTables(t)

	body := ContactFormBody("badmail")
	body["contactEmail"] = "not-an-email"

	resp, err := testServer.Request(http.MethodPost, "/api/contact/submit", body, ipHeaders("10.3.0.2"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Empty(t, testServer.Notifier.Notified)
}

func TestContactInboxManagement(t *testing.T) {
	cleanTables(t)

	ctx := context.Background()
	_, err := SeedAdmin(ctx, testDB.Pool, "inbox-admin@college.edu", "admin-secret")
	require.NoError(t, err)
	first, err := SeedContact(ctx, testDB.Pool, "First Visitor", "one@example.com", "Subject one", "Message one", models.ContactStatusNew)
	require.NoError(t, err)
	_, err = SeedContact(ctx, testDB.Pool, "Second Visitor", "two@example.com", "Subject two", "Message two", models.ContactStatusRead)
	require.NoError(t, err)

	adminToken := loginAs(t, "inbox-admin@college.edu", "admin-secret", "10.3.0.3")

	// Full inbox
	resp, err := testServer.RequestWithAuth(http.MethodGet, "/api/contact/all", adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	var contacts []map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &contacts))
	assert.Len(t, contacts, 2)

	// Filtered by status
	resp, err = testServer.RequestWithAuth(http.MethodGet, "/api/contact/status/new", adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(envelope.Data, &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "Subject one", contacts[0]["subject"])

	// Unknown status filter
	resp, err = testServer.RequestWithAuth(http.MethodGet, "/api/contact/status/archived", adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Invalid status value", envelope.Message)

	// Move the first message to replied
	resp, err = testServer.RequestWithAuth(http.MethodPatch, "/api/contact/"+itoa(first.ID)+"/status", adminToken,
		map[string]string{"status": "replied"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &updated))
	assert.Equal(t, "replied", updated["status"])

	// Delete it
	resp, err = testServer.RequestWithAuth(http.MethodDelete, "/api/contact/"+itoa(first.ID), adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = testServer.RequestWithAuth(http.MethodDelete, "/api/contact/"+itoa(first.ID), adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestContactInboxRequiresAuth(t *testing.T) {
	cleanTables(t)

	resp, err := testServer.Request(http.MethodGet, "/api/contact/all", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
