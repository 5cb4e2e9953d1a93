package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driftpoint/beaconhub/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupGuardedRouter(secret string, hits *int) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuth(secret), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthValidToken(t *testing.T) {
	hits := 0
	r := setupGuardedRouter("test-secret", &hits)

	token, err := auth.GenerateToken(auth.JWTConfig{Secret: "test-secret"}, "admin", auth.RoleAdmin)
	require.NoError(t, err)

	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, hits)
}

func TestJWTAuthUniformUnauthorized(t *testing.T) {
	expired, err := auth.GenerateToken(auth.JWTConfig{Secret: "test-secret", TTL: -time.Hour}, "admin", auth.RoleAdmin)
	require.NoError(t, err)

	foreign, err := auth.GenerateToken(auth.JWTConfig{Secret: "other-secret"}, "admin", auth.RoleAdmin)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc123",
		"malformed token": "Bearer not.a.jwt",
		"expired token":   "Bearer " + expired,
		"wrong signature": "Bearer " + foreign,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			hits := 0
			r := setupGuardedRouter("test-secret", &hits)

			w := request(r, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			assert.Equal(t, 0, hits, "guarded handler must not run")
		})
	}
}
