package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/pkg/helpers"
)

type roleProfiles struct {
	roles map[string]string
}

func (r *roleProfiles) Upsert(_ context.Context, _ *entity.Profile) error { return nil }
func (r *roleProfiles) Update(_ context.Context, _ *entity.Profile) error { return nil }
func (r *roleProfiles) SetRole(_ context.Context, _, _ string) error      { return nil }
func (r *roleProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	role, ok := r.roles[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &entity.Profile{UserID: userID, Role: role}, nil
}

const testSecret = "super-secret"

func issueToken(t *testing.T, sub string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"aud":   "authenticated",
		"email": sub + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authRouter(profiles *roleProfiles) *gin.Engine {
	gin.SetMode(gin.TestMode)
	parser := helpers.NewTokenParser(testSecret)
	r := gin.New()
	g := r.Group("/", Auth(parser))
	g.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey), "email": c.GetString(CtxUserEmailKey)})
	})
	g.GET("/admin", RequireAdmin(profiles), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := authRouter(&roleProfiles{})
	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_ACCESS_TOKEN")
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r := authRouter(&roleProfiles{})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsBadSignature(t *testing.T) {
	r := authRouter(&roleProfiles{})
	claims := jwt.MapClaims{"sub": "u1", "aud": "authenticated", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	w := get(r, "/me", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ACCESS_TOKEN")
}

func TestAuthInjectsIdentity(t *testing.T) {
	r := authRouter(&roleProfiles{})
	w := get(r, "/me", issueToken(t, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"email":"u1@example.com"`)
}

func TestRequireAdminForbidsNonAdmins(t *testing.T) {
	r := authRouter(&roleProfiles{roles: map[string]string{"u1": entity.RoleReader}})
	w := get(r, "/admin", issueToken(t, "u1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireAdminForbidsMissingProfile(t *testing.T) {
	r := authRouter(&roleProfiles{})
	w := get(r, "/admin", issueToken(t, "ghost"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PROFILE_NOT_FOUND")
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	r := authRouter(&roleProfiles{roles: map[string]string{"u1": entity.RoleAdmin}})
	w := get(r, "/admin", issueToken(t, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
}
