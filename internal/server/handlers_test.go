package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/models"
	"github.com/bobmcallan/kabu/internal/storage"
)

// newTestServer builds a server over a temp-dir file store.
func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	logger := common.NewSilentLogger()
	fs, err := storage.NewFileStore(logger, t.TempDir())
	require.NoError(t, err)

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"

	srv := NewServer(config, logger, storage.NewUserStore(fs), storage.NewPortfolioStore(fs))
	return srv, srv.Handler()
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getAuthed(t *testing.T, handler http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func registerDemo(t *testing.T, handler http.Handler) models.User {
	t.Helper()
	rec := postJSON(t, handler, "/api/v1/auth/register", map[string]string{
		"email":    "demo@example.com",
		"password": "demo123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func loginDemo(t *testing.T, handler http.Handler) models.AuthTokens {
	t.Helper()
	rec := postJSON(t, handler, "/api/v1/auth/login", map[string]string{
		"email":    "demo@example.com",
		"password": "demo123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens models.AuthTokens
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	return tokens
}

func TestRegister_CreatesUser(t *testing.T) {
	_, handler := newTestServer(t)

	user := registerDemo(t, handler)
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "demo@example.com", user.Email)
	assert.Equal(t, models.RiskMedium, user.RiskTolerance, "risk tolerance defaults to medium")
	assert.True(t, user.IsActive)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, handler := newTestServer(t)
	registerDemo(t, handler)

	rec := postJSON(t, handler, "/api/v1/auth/register", map[string]string{
		"email":    "demo@example.com",
		"password": "demo123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decodeDetail(t, rec))
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	_, handler := newTestServer(t)

	rec := postJSON(t, handler, "/api/v1/auth/register", map[string]string{
		"email":    "demo@example.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_RejectsInvalidRiskTolerance(t *testing.T) {
	_, handler := newTestServer(t)

	rec := postJSON(t, handler, "/api/v1/auth/register", map[string]string{
		"email":          "demo@example.com",
		"password":       "demo123",
		"risk_tolerance": "reckless",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_IssuesTokenBundle(t *testing.T) {
	_, handler := newTestServer(t)
	registerDemo(t, handler)

	tokens := loginDemo(t, handler)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, handler := newTestServer(t)
	registerDemo(t, handler)

	rec := postJSON(t, handler, "/api/v1/auth/login", map[string]string{
		"email":    "demo@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", decodeDetail(t, rec))
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, handler := newTestServer(t)

	rec := postJSON(t, handler, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "demo123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", decodeDetail(t, rec))
}

func TestProfile_ReturnsAuthenticatedUser(t *testing.T) {
	_, handler := newTestServer(t)
	created := registerDemo(t, handler)
	tokens := loginDemo(t, handler)

	rec := getAuthed(t, handler, "/api/v1/users/profile", tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, created.UserID, user.UserID)
	assert.Equal(t, "demo@example.com", user.Email)
}

func TestProfile_MissingToken(t *testing.T) {
	_, handler := newTestServer(t)

	rec := getAuthed(t, handler, "/api/v1/users/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decodeDetail(t, rec))
}

func TestProfile_GarbageToken(t *testing.T) {
	_, handler := newTestServer(t)

	rec := getAuthed(t, handler, "/api/v1/users/profile", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", decodeDetail(t, rec))
}

func TestProfile_RefreshTokenRejected(t *testing.T) {
	_, handler := newTestServer(t)
	registerDemo(t, handler)
	tokens := loginDemo(t, handler)

	// Refresh tokens must not be accepted as access credentials.
	rec := getAuthed(t, handler, "/api/v1/users/profile", tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", decodeDetail(t, rec))
}

func TestPortfolio_EmptyForNewUser(t *testing.T) {
	_, handler := newTestServer(t)
	registerDemo(t, handler)
	tokens := loginDemo(t, handler)

	rec := getAuthed(t, handler, "/api/v1/portfolio", tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPortfolio_ReturnsOwnHoldingsOnly(t *testing.T) {
	srv, handler := newTestServer(t)
	user := registerDemo(t, handler)
	tokens := loginDemo(t, handler)

	ctx := context.Background()
	require.NoError(t, srv.portfolios.SavePortfolio(ctx, &models.Portfolio{
		PortfolioID: "p-1", UserID: user.UserID, Symbol: "AAPL", Quantity: 10, AveragePrice: 150,
	}))
	require.NoError(t, srv.portfolios.SavePortfolio(ctx, &models.Portfolio{
		PortfolioID: "p-2", UserID: "someone-else", Symbol: "TSLA", Quantity: 20, AveragePrice: 200,
	}))

	rec := getAuthed(t, handler, "/api/v1/portfolio", tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Portfolio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "AAPL", items[0].Symbol)
}

func TestSeed_Idempotent(t *testing.T) {
	srv, handler := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, srv.users, srv.portfolios, srv.logger))
	require.NoError(t, Seed(ctx, srv.users, srv.portfolios, srv.logger))

	user, _, err := srv.users.GetUserByEmail(ctx, DemoEmail)
	require.NoError(t, err)

	items, err := srv.portfolios.ListPortfolios(ctx, user.UserID)
	require.NoError(t, err)
	assert.Len(t, items, 4, "seeding twice must not duplicate holdings")

	rec := postJSON(t, handler, "/api/v1/auth/login", map[string]string{
		"email":    DemoEmail,
		"password": DemoPassword,
	})
	assert.Equal(t, http.StatusOK, rec.Code, "demo credentials must work after seeding")
}

func TestHealthEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	rec := getAuthed(t, handler, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
