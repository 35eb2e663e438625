package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/school_fee_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/api/health":           true,
	"/api/payments/webhook": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful authenticated API
// calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		identity, exists := GetIdentityFromContext(c)
		if !exists {
			return
		}

		// "/api/fee-structures/generate" -> "api_fee-structures_generate"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"role":        string(identity.Role),
		}
		if identity.HasSchool() {
			props["school_id"] = identity.SchoolID
		}

		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(identity.UserID, eventName, props)
	}
}
