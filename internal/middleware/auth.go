package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/labor-marketplace/internal/config"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/result"
)

const (
	ContextUserID    = "userID"
	ContextUserRoles = "userRoles"
)

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, result.Fail[any](code, message))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token is invalid or expired")
			return
		}

		userID, ok1 := claims["sub"].(string)
		roles, ok2 := claims["roles"].(float64)
		if !ok1 || userID == "" || !ok2 {
			abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token is invalid or expired")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRoles, user.Role(roles))

		c.Next()
	}
}

// RequireRole lets the request through only when the caller holds the
// capability. It must run after AuthMiddleware.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Roles.Has(role) {
			abort(c, http.StatusForbidden, "forbidden", "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated caller set by AuthMiddleware.
func ActorFrom(c *gin.Context) user.Actor {
	id, _ := c.Get(ContextUserID)
	roles, _ := c.Get(ContextUserRoles)

	a := user.Actor{}
	a.ID, _ = id.(string)
	a.Roles, _ = roles.(user.Role)
	return a
}
