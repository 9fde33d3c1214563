package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylater/backend/internal/infrastructure/auth"
	"github.com/paylater/backend/internal/infrastructure/config"
)

func newMiddlewareJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret-at-least-32b!",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "paylater-test",
	})
}

func issueAccessToken(t *testing.T, svc *auth.JWTService, role string) (string, uuid.UUID) {
	t.Helper()
	businessID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		BusinessID: businessID,
		UserID:     uuid.New(),
		Username:   "owner",
		Role:       role,
	})
	require.NoError(t, err)
	return pair.AccessToken, businessID
}

func newAuthedRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(svc))
	router.GET("/api/v1/rules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"business_id": GetJWTBusinessID(c)})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newMiddlewareJWTService()
	token, businessID := issueAccessToken(t, svc, "owner")
	router := newAuthedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), businessID.String())
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newAuthedRouter(newMiddlewareJWTService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router := newAuthedRouter(newMiddlewareJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsRefreshToken(t *testing.T) {
	svc := newMiddlewareJWTService()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		BusinessID: uuid.New(),
		UserID:     uuid.New(),
		Username:   "owner",
		Role:       "owner",
	})
	require.NoError(t, err)

	router := newAuthedRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN_TYPE")
}

func TestJWTAuth_SkipsConfiguredPaths(t *testing.T) {
	svc := newMiddlewareJWTService()
	router := gin.New()
	router.Use(JWTAuth(svc))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_BlacklistedToken(t *testing.T) {
	svc := newMiddlewareJWTService()
	token, _ := issueAccessToken(t, svc, "owner")

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(t.Context(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist

	router := gin.New()
	router.Use(JWTAuthWithConfig(cfg))
	router.GET("/api/v1/rules", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestRequireRole(t *testing.T) {
	svc := newMiddlewareJWTService()
	token, _ := issueAccessToken(t, svc, "staff")

	router := gin.New()
	router.Use(JWTAuth(svc))
	router.DELETE("/api/v1/rules/:id", RequireRole("owner", "admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/rules/"+uuid.NewString(), nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
