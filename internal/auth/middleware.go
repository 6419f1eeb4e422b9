package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// Middleware authenticates requests with a bearer JWT.
type Middleware struct {
	service *Service
	issuer  *TokenIssuer
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, issuer *TokenIssuer) *Middleware {
	return &Middleware{
		service: service,
		issuer:  issuer,
	}
}

// RequireAuth verifies the bearer token, confirms the user still exists and
// injects the user into the gin context. Aborts with 401 otherwise.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.authenticate(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Next()
	}
}

func (m *Middleware) authenticate(c *gin.Context) (*entities.User, bool) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return nil, false
	}

	userID, err := m.issuer.Parse(token)
	if err != nil {
		return nil, false
	}

	// A valid token for a since-deleted user is still rejected
	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil, false
	}

	return user, true
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUserID returns the authenticated user ID from the gin context.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
