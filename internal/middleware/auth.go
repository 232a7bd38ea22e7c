package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/logger"
	"moneyhub/internal/services"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "userID"

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware verifies the bearer token, re-fetches the user it names and
// sets the user id in the context. A token for a user that no longer exists
// is treated as unauthenticated.
func AuthMiddleware(tokens TokenVerifier, users services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		// Check if the header is in the correct format
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			logger.Get().Debugw("token rejected", "error", err, "path", c.Request.URL.Path)
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		if _, err := users.GetUserByID(userID); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortWithError(c, apperrors.ErrUnauthorized)
				return
			}
			abortWithError(c, err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// abortWithError records err for ErrorHandler and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
