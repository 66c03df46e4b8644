package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ownerKey is where the identity middleware stores the caller's email.
const ownerKey = "owner_email"

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-User-Email")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// IdentityMiddleware scopes every /api request to the caller named in the
// X-User-Email header. Auth endpoints, infra endpoints, and docs stay open.
// An upstream gateway is expected to have authenticated the header value.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if !strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/api/v1/auth/") {
			c.Next()
			return
		}
		email := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Email")))
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-Email"})
			return
		}
		c.Set(ownerKey, email)
		c.Next()
	}
}

func ownerEmail(c *gin.Context) string {
	return c.GetString(ownerKey)
}
