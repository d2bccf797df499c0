package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
	"github.com/tuanhqv123/news-api/pkg/helpers"
	"github.com/tuanhqv123/news-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRoleKey  = "userRole"
)

// Auth validates a provider-issued Bearer access token locally and injects
// the user identity into the Gin context. The token is HS256-signed with the
// project JWT secret, so no provider round trip is needed here.
func Auth(parser *helpers.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, "Missing access token", "MISSING_ACCESS_TOKEN")
			return
		}
		claims, err := parser.ParseAccessToken(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "Invalid access token", "INVALID_ACCESS_TOKEN")
			return
		}

		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// RequireRole gates a route on the profile role. It runs after Auth and
// reads the role from the profiles table, not from token claims: role
// changes take effect without waiting for token expiry.
func RequireRole(profiles repository.ProfileRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			response.AbortFail(c, http.StatusUnauthorized, "Missing access token", "MISSING_ACCESS_TOKEN")
			return
		}
		p, err := profiles.GetByUserID(c.Request.Context(), uid)
		if err != nil {
			response.AbortFail(c, http.StatusForbidden, "User profile not found. Access denied.", "PROFILE_NOT_FOUND")
			return
		}
		if p.Role != role {
			response.AbortFail(c, http.StatusForbidden, "Access forbidden. "+titleCase(role)+" role required.", "FORBIDDEN")
			return
		}
		c.Set(CtxUserRoleKey, p.Role)
		c.Next()
	}
}

// RequireAdmin is shorthand for the most common gate.
func RequireAdmin(profiles repository.ProfileRepository) gin.HandlerFunc {
	return RequireRole(profiles, entity.RoleAdmin)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
