package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"craftedbyher/auth"
	"craftedbyher/logging"
	"craftedbyher/models"
	"craftedbyher/services"

	"github.com/gin-gonic/gin"
)

var logger = logging.NewPackageLogger("middleware")

// context keys
const (
	UserKey    = "user"
	UserIDKey  = "userId"
	RoleKey    = "role"
	ManagerKey = "manager"
)

// AccountResolver maps a verified identity to a stored user.
type AccountResolver interface {
	Resolve(ctx context.Context, id *auth.Identity) (*models.User, error)
}

// ManagerAuthenticator validates hub manager tokens.
type ManagerAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.ManagerClaims, error)
}

// BearerToken returns the Authorization header without its "Bearer " prefix.
func BearerToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

// FirebaseAuth verifies the Firebase ID token and loads the caller's account.
func FirebaseAuth(verifier auth.Verifier, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := verifier.Verify(ctx, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		user, err := accounts.Resolve(ctx, id)
		if err != nil {
			logger.Error().Err(err).Str(logging.USER, id.UID).Msg("resolve account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
			return
		}
		if user.Suspended {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.UID)
		c.Set(RoleKey, user.Role)
		c.Next()
	}
}

// RequireRole lets through callers whose role is one of roles. Admins pass every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: " + strings.Join(roles, " or ") + " only"})
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// HubManagerAuth accepts the hub manager JWT issued at login.
func HubManagerAuth(managers ManagerAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		claims, err := managers.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			logger.Error().Err(err).Msg("authenticate hub manager")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
			return
		}

		c.Set(ManagerKey, claims)
		c.Set(UserIDKey, claims.ManagerID)
		c.Set(RoleKey, models.RoleHubManager)
		c.Next()
	}
}

// CurrentUser is the account loaded by FirebaseAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// CurrentManager is the hub manager authenticated by HubManagerAuth.
func CurrentManager(c *gin.Context) (*auth.ManagerClaims, bool) {
	v, ok := c.Get(ManagerKey)
	if !ok {
		return nil, false
	}
	m, ok := v.(*auth.ManagerClaims)
	return m, ok
}
