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

func TestRegisterAndLoginFlow(t *testing.T) {
	cleanTables(t)

	body := UniqueStudent("flow")

	resp, err := testServer.Request(http.MethodPost, "/api/auth/register", body, ipHeaders("10.1.0.1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, "User registered successfully", envelope.Message)

	// Password material must never appear in the response
	var registerData struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &registerData))
	assert.NotEmpty(t, registerData.Token)
	assert.NotContains(t, registerData.User, "password")
	assert.NotContains(t, registerData.User, "passwordHash")
	assert.Equal(t, body["email"], registerData.User["email"])

	// Login with the same credentials
	loginBody := map[string]string{
		"loginEmail":    body["email"],
		"loginPassword": body["password"],
	}
	resp, err = testServer.Request(http.MethodPost, "/api/auth/login", loginBody, ipHeaders("10.1.0.1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Login successful", envelope.Message)

	token := ExtractToken(envelope)
	require.NotEmpty(t, token)

	claims, err := testServer.TokenManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.UserType)
	assert.Equal(t, body["cid"], claims.CID)

	// The verify endpoint accepts the token and returns the account
	resp, err = testServer.RequestWithAuth(http.MethodGet, "/api/auth/verify", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	var verifyData struct {
		User map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &verifyData))
	assert.Equal(t, body["email"], verifyData.User["email"])
}

func TestLoginByCollegeID(t *testing.T) {
	cleanTables(t)

	ctx := context.Background()
	_, err := SeedUser(ctx, testDB.Pool, models.RoleFaculty, "Prof Example", "F200", "prof@college.edu", "secret1", true)
	require.NoError(t, err)

	loginBody := map[string]string{
		"loginEmail":    "F200",
		"loginPassword": "secret1",
	}
	resp, err := testServer.Request(http.MethodPost, "/api/auth/login", loginBody, ipHeaders("10.1.0.2"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)

	claims, err := testServer.TokenManager.ValidateToken(ExtractToken(envelope))
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, claims.UserType)
}

func TestLoginWrongPassword(t *testing.T) {
	cleanTables(t)

	ctx := context.Background()
	_, err := SeedUser(ctx, testDB.Pool, models.RoleStudent, "Test Student", "C300", "wrongpw@college.edu", "secret1", true)
	require.NoError(t, err)

	loginBody := map[string]string{
		"loginEmail":    "wrongpw@college.edu",
		"loginPassword": "not-the-password",
	}
	resp, err := testServer.Request(http.MethodPost, "/api/auth/login", loginBody, ipHeaders("10.1.0.3"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Invalid email/username or password", envelope.Message)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	cleanTables(t)

	loginBody := map[string]string{
		"loginEmail":    "nobody@college.edu",
		"loginPassword": "secret1",
	}
	resp, err := testServer.Request(http.MethodPost, "/api/auth/login", loginBody, ipHeaders("10.1.0.4"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Invalid email/username or password", envelope.Message)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	cleanTables(t)

	ctx := context.Background()
	_, err := SeedUser(ctx, testDB.Pool, models.RoleStudent, "Dormant Student", "C400", "dormant@college.edu", "secret1", false)
	require.NoError(t, err)

	loginBody := map[string]string{
		"loginEmail":    "dormant@college.edu",
		"loginPassword": "secret1",
	}
	resp, err := testServer.Request(http.MethodPost, "/api/auth/login", loginBody, ipHeaders("10.1.0.5"))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Account is deactivated. Please contact administrator.", envelope.Message)
}

func TestDuplicateRegistration(t *testing.T) {
	cleanTables(t)

	body := UniqueStudent("dup")

	resp, err := testServer.Request(http.MethodPost, "/api/auth/register", body, ipHeaders("10.1.0.6"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = testServer.Request(http.MethodPost, "/api/auth/register", body, ipHeaders("10.1.0.6"))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "User with this email or college ID already exists", envelope.Message)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	cleanTables(t)

	// No token at all
	resp, err := testServer.Request(http.MethodGet, "/api/auth/verify", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Token required", envelope.Message)

	// Garbage token
	resp, err = testServer.RequestWithAuth(http.MethodGet, "/api/auth/verify", "not.a.jwt", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	envelope, err = ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Invalid or expired token", envelope.Message)
}
