package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusCreated, "User registered successfully", map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotNil(t, env.Data)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, "already exists")

	assert.Equal(t, http.StatusConflict, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "already exists", env.Message)
	assert.Nil(t, env.Data)
}

func TestCommonWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter, string)
		status int
	}{
		{"bad request", WriteBadRequest, http.StatusBadRequest},
		{"unauthorized", WriteUnauthorized, http.StatusUnauthorized},
		{"forbidden", WriteForbidden, http.StatusForbidden},
		{"not found", WriteNotFound, http.StatusNotFound},
		{"conflict", WriteConflict, http.StatusConflict},
		{"too many requests", WriteTooManyRequests, http.StatusTooManyRequests},
		{"internal", WriteInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "msg")
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
		})
	}
}

func TestExtractClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:41234"
	assert.Equal(t, "10.0.0.5", ExtractClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ExtractClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", ExtractClientIP(r))

	r.Header.Set("X-Forwarded-For", "garbage")
	assert.Equal(t, "203.0.113.9", ExtractClientIP(r))
}
