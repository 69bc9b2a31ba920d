package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskflow/internal/domain"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where Auth stores the resolved user in the gin context.
const ContextUserKey = "user"

// Authorizer resolves an access token to a user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the Authorization header and attaches the resolved
// user to the context. Requests without a valid access token are
// aborted with 401.
func Auth(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := auth.Authorize(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
