package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/pkg/helpers"
	"github.com/nihongonext/api/pkg/response"
)

// CtxClaimsKey is the gin context key the verified token claims live under.
const CtxClaimsKey = "claims"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

// ClaimsFrom returns the claims attached by the auth middleware, or nil when
// the request is unauthenticated.
func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

// RequireAuth rejects requests without a valid bearer token. The failure
// messages stay generic; token parse errors are never echoed back.
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin additionally checks the role claim. The role is trusted as
// issued: a promotion or demotion takes effect on the user's next login.
func RequireAdmin(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}
		if claims.Role != entity.RoleAdmin {
			response.AbortError(c, http.StatusForbidden, "Admin access required.")
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid bearer token is present and
// proceeds unauthenticated otherwise. Used where identity only affects
// attribution, never authorization.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(CtxClaimsKey, claims)
			}
		}
		c.Next()
	}
}
