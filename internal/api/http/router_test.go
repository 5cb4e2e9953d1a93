package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/driftpoint/beaconhub/internal/api/http/dto"
	"github.com/driftpoint/beaconhub/internal/auth"
	"github.com/driftpoint/beaconhub/internal/directive"
	"github.com/driftpoint/beaconhub/internal/registry"
	"github.com/driftpoint/beaconhub/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T) (*gin.Engine, *Services) {
	t.Helper()

	srvs := &Services{
		Auth: auth.NewService(auth.Config{
			AdminUsername: "admin",
			AdminPassword: "correcthorse",
			JWT:           auth.JWTConfig{Secret: "test-secret"},
		}),
		JWTSecret: "test-secret",
		Registry:  registry.NewRegistry(),
		Directive: directive.NewStore(),
		Settings:  settings.NewStore(filepath.Join(t.TempDir(), "config.json")),
	}

	engine := gin.New()
	SetupRoute(engine, srvs)
	return engine, srvs
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, "POST", "/api/login", "", dto.LoginRequest{Username: "admin", Password: "correcthorse"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestOperatorRoutesRequireToken(t *testing.T) {
	r, srvs := setupServer(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/clients"},
		{"POST", "/api/kill"},
		{"POST", "/api/kill/clear"},
		{"POST", "/api/config"},
	} {
		w := do(r, route.method, route.path, "", map[string]interface{}{"kill_all": true})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	// Rejected calls produce no state change.
	assert.False(t, srvs.Directive.Get().KillAll)
	assert.Equal(t, settings.Defaults(), srvs.Settings.Get())
}

func TestKillFlowEndToEnd(t *testing.T) {
	r, _ := setupServer(t)
	token := login(t, r)

	w := do(r, "POST", "/api/kill", token, map[string]interface{}{
		"kill_all": true, "message": "wrap it up",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Clients poll without credentials.
	w = do(r, "GET", "/api/kill", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d directive.Directive
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.True(t, d.KillAll)
	assert.Equal(t, "wrap it up", d.Message)

	w = do(r, "POST", "/api/kill/clear", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, "GET", "/api/kill", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.False(t, d.KillAll)
}

func TestHeartbeatThenOperatorList(t *testing.T) {
	r, _ := setupServer(t)

	w := do(r, "POST", "/api/heartbeat", "", dto.HeartbeatRequest{ClientID: "c1", Status: "mining"})
	require.Equal(t, http.StatusOK, w.Code)

	token := login(t, r)
	w = do(r, "GET", "/api/clients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListClientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Clients, 1)
	assert.Equal(t, "c1", resp.Clients[0].ClientID)
	assert.True(t, resp.Clients[0].Active)
}

func TestUnmatchedRoute(t *testing.T) {
	r, _ := setupServer(t)

	w := do(r, "GET", "/api/nonsense", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r, _ := setupServer(t)

	w := do(r, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Time.IsZero())
}
