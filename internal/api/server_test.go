package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Config{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		RateLimitWindow: time.Minute,
		RateLimitMax:    1000,
	}, nil, nil, nil, nil)
}

func TestHealthCheckRequiresNoAuth(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIssueTokenDefaultsToViewerRole(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	claims, err := s.issuer.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "viewer", claims.Role)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateRunRejectsNonOperatorRole(t *testing.T) {
	s := testServer(t)
	token, err := s.issuer.Issue("viewer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader([]byte(`{"preset":"baseline"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateRunAcceptsOperatorAndListsIt(t *testing.T) {
	s := testServer(t)
	token, err := s.issuer.Issue("operator")
	require.NoError(t, err)

	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader([]byte(`{"label":"smoke","preset":"baseline"}`)))
	createReq.Header.Set("Authorization", "Bearer "+token)
	createRec := httptest.NewRecorder()
	s.router.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusAccepted, createRec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	listRec := httptest.NewRecorder()
	s.router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var body struct {
		Runs []map[string]interface{} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &body))
	assert.Len(t, body.Runs, 1)
}

func TestCreateRunRejectsUnknownPreset(t *testing.T) {
	s := testServer(t)
	token, err := s.issuer.Issue("operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader([]byte(`{"preset":"nonexistent"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunReturnsNotFoundForUnknownID(t *testing.T) {
	s := testServer(t)
	token, err := s.issuer.Issue("operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/00000000-0000-0000-0000-000000000000", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSocketEndpointRefusesUpgradeWithoutFeed(t *testing.T) {
	s := testServer(t)
	token, err := s.issuer.Issue("operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
