// Package middleware holds the gin middleware shared by the REST endpoints:
// bearer-token auth, per-IP rate limiting, and CORS.
package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"prepgogo/backend/internal/auth"
	"prepgogo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity on the request context.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		identity, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUsername, identity.Username)
		c.Next()
	}
}

// RateLimit applies a fixed-window per-IP limit backed by Redis. When the
// limiter itself fails the request is let through; throttling must not take
// the API down with it.
func RateLimit(s storage.Storage, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := s.AllowRequest(c.ClientIP(), limit, window)
		if err != nil {
			log.Printf("ERROR: Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

// CORS allows the configured frontend origin to call the API.
func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
