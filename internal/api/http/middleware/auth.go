package middleware

import (
	"net/http"
	"strings"

	"github.com/driftpoint/beaconhub/internal/auth"
	"github.com/gin-gonic/gin"
)

// JWTAuth guards operator-only routes. Every failure mode (missing header,
// malformed token, bad signature, expiry) is reported as the same uniform
// 401 so callers learn nothing about why they were rejected.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(secret, token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
