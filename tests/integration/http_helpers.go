package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/config"
	"github.com/campusportal/backend/internal/database"
	"github.com/campusportal/backend/internal/handlers"
	middlewareCustom "github.com/campusportal/backend/internal/middleware"
	"github.com/campusportal/backend/internal/routes"
	"github.com/campusportal/backend/internal/services"
	pkglogger "github.com/campusportal/backend/pkg/logger"
)

const testJWTSecret = "test-secret-32-characters-long-for-testing"

// TestServer wraps httptest.Server with the full application wired against a
// real database and a captured contact notifier.
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	Notifier     *services.MockContactNotifier
	TokenManager *auth.TokenManager
	Config       *config.Config
}

// NewTestServer initializes a complete HTTP server with real database dependencies
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          testJWTSecret,
			TokenExpiry:        7 * 24 * time.Hour,
			FailureDelayBaseMs: 0,
			FailureDelayRandMs: 0,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
	}

	userRepo, contactRepo := InitializeRepositories(db)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	failureDelay := auth.NewFailureDelay(cfg.Auth.FailureDelayBaseMs, cfg.Auth.FailureDelayRandMs)
	auditLogger := pkglogger.NewAuditLogger(logger)

	notifier := &services.MockContactNotifier{}

	authService := services.NewAuthService(userRepo, tokenManager, failureDelay, logger, auditLogger)
	userService := services.NewUserService(userRepo, logger, auditLogger)
	contactService := services.NewContactService(contactRepo, notifier, logger)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, authHandler, userHandler, contactHandler, tokenManager)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		DB:           db,
		Notifier:     notifier,
		TokenManager: tokenManager,
		Config:       cfg,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with a bearer token
func (ts *TestServer) RequestWithAuth(method, path, token string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	return ts.Request(method, path, body, headers)
}

// APIResponse mirrors the JSON envelope every endpoint replies with
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ParseResponse decodes the response envelope and closes the body
func ParseResponse(resp *http.Response) (*APIResponse, error) {
	defer resp.Body.Close()

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// ExtractToken pulls the session token out of a register/login response
func ExtractToken(envelope *APIResponse) string {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		return ""
	}
	return payload.Token
}
