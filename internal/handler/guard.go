package handler

import (
	"context"
	"slices"
	"strings"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	claimsKey           = "claims"
	googleSessionCookie = "google_session"
)

// Access describes who may call a route. Cookie names a cookie read for
// the token when the request has no bearer header.
type Access struct {
	Public bool
	Roles  []domain.Role
	Cookie string
}

var (
	// PublicAccess skips every check
	PublicAccess = Access{Public: true}
	// TokenAccess requires any valid access token
	TokenAccess = Access{}
	// AdminAccess requires an access token carrying the admin role
	AdminAccess = Access{Roles: []domain.Role{domain.RoleAdmin}}
	// GoogleSessionAccess also takes the token from the cookie set after Google sign-in
	GoogleSessionAccess = Access{Cookie: googleSessionCookie}
)

// TokenValidator checks bearer tokens. service.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// Guard enforces access for one route
func Guard(validator TokenValidator, access Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		if access.Public {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok && access.Cookie != "" {
			token, _ = c.Cookie(access.Cookie)
			ok = token != ""
		}
		if !ok {
			_ = c.Error(domain.NewUnauthorizedError("Unauthorized"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(domain.Wrap(domain.KindUnauthorized, "Invalid or expired token", err))
			c.Abort()
			return
		}

		if len(access.Roles) > 0 && !slices.Contains(access.Roles, claims.Role) {
			_ = c.Error(domain.NewForbiddenError("Forbidden resource"))
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by Guard
func ClaimsFromContext(c *gin.Context) (*domain.TokenClaims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*domain.TokenClaims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}
