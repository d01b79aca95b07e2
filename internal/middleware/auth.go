package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Davidayo16/HOD-app/internal/schedule"
	"github.com/Davidayo16/HOD-app/internal/service"
)

const callerKey = "caller"

// Auth extracts and verifies the bearer token and stores the resulting caller
// in the request context.
func Auth(ids *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authorization required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid authorization header format",
			})
			c.Abort()
			return
		}

		caller, err := ids.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. Must run
// after Auth.
func RequireRole(allowed ...schedule.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "caller identity not found",
			})
			c.Abort()
			return
		}

		for _, role := range allowed {
			if caller.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "insufficient permissions",
		})
		c.Abort()
	}
}

// CallerFrom returns the authenticated caller stored by Auth.
func CallerFrom(c *gin.Context) (schedule.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return schedule.Caller{}, false
	}
	caller, ok := v.(schedule.Caller)
	return caller, ok
}
