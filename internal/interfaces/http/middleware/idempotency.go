package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paylater/backend/internal/domain/shared"
)

// IdempotencyKeyHeader is the header clients use to deduplicate retried writes
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	// TTL bounds how long a processed key blocks replays
	TTL time.Duration
	// Required rejects requests that omit the Idempotency-Key header
	Required bool
	Logger   *zap.Logger
}

// Idempotency deduplicates mutating requests by Idempotency-Key header.
// The key is scoped to the authenticated business so tenants cannot
// collide with each other. A replayed key gets 409 without reaching the
// handler. Requests without a key pass through unless Required is set.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if cfg.Required {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "IDEMPOTENCY_KEY_REQUIRED",
						"message": "Idempotency-Key header is required",
					},
				})
				return
			}
			c.Next()
			return
		}

		scopedKey := GetJWTBusinessID(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		first, err := cfg.Store.MarkProcessed(c.Request.Context(), scopedKey, cfg.TTL)
		if err != nil {
			// Fail open; a store outage must not block payments
			if cfg.Logger != nil {
				cfg.Logger.Error("Idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}
		if !first {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_REQUEST",
					"message": "Request with this idempotency key was already processed",
				},
			})
			return
		}

		c.Next()
	}
}
