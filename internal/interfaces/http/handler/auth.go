package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paylater/backend/internal/infrastructure/auth"
	"github.com/paylater/backend/internal/interfaces/http/middleware"
)

// getClaims returns the JWT claims stored by the auth middleware
func getClaims(c *gin.Context) *auth.Claims {
	return middleware.GetJWTClaims(c)
}

// AuthHandler exposes session endpoints. Token issuance happens outside
// this service; logout revokes the presented token via the blacklist.
type AuthHandler struct {
	BaseHandler
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(blacklist auth.TokenBlacklist, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{blacklist: blacklist, logger: log}
}

type logoutResponse struct {
	Revoked bool `json:"revoked"`
}

// Logout handles POST /api/v1/auth/logout. The current access token is
// blacklisted for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil || claims.ID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		h.Success(c, logoutResponse{Revoked: true})
		return
	}

	if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
		h.logger.Error("Failed to blacklist token on logout",
			zap.String("jti", claims.ID),
			zap.Error(err))
		h.InternalError(c, "Failed to revoke token")
		return
	}

	h.Success(c, logoutResponse{Revoked: true})
}
