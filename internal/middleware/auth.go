package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/school_fee_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AccountChecker reports whether the holder of a valid token still has an active account.
type AccountChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware creates a Gin middleware handler that validates session tokens, rejects tokens
// of missing or deactivated accounts and stores the caller identity in the request context.
func AuthMiddleware(jwtSecret string, accounts AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		identity := claims.Identity()

		active, err := accounts.IsActive(c.Request.Context(), identity.UserID)
		if err != nil {
			logger.Error("Account status lookup failed", slog.String("user_id", identity.UserID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if !active {
			logger.Warn("Token presented for inactive account", slog.String("user_id", identity.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found or inactive"})
			return
		}

		enrichedLogger := logger.With(
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
			slog.String("school_id", identity.SchoolID),
		)

		ctx := WithIdentity(c.Request.Context(), identity)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
