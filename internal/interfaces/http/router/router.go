package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/infrastructure/auth"
	"github.com/paylater/backend/internal/infrastructure/logger"
	"github.com/paylater/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a group of related routes under the API prefix
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router construction options
type Config struct {
	Mode         string // gin mode: debug, release, test
	APIVersion   string
	AllowOrigins []string
	MaxBodyBytes int64
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// Router assembles the gin engine with the shared middleware chain and
// the registered route groups.
type Router struct {
	engine     *gin.Engine
	api        *gin.RouterGroup
	registrars []RouteRegistrar
}

// New builds a Router with the full middleware chain applied
func New(cfg Config) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.JWTService != nil {
		jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtCfg.TokenBlacklist = cfg.TokenBlacklist
		jwtCfg.Logger = log
		engine.Use(middleware.JWTAuthWithConfig(jwtCfg))
	}

	return &Router{
		engine: engine,
		api:    engine.Group("/api/" + cfg.APIVersion),
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Register queues a registrar; routes are wired on Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterRoot registers routes outside the versioned API prefix,
// used for health and readiness probes.
func (r *Router) RegisterRoot(method, path string, handlers ...gin.HandlerFunc) *Router {
	r.engine.Handle(method, path, handlers...)
	return r
}

// Setup wires all queued registrars into the API group
func (r *Router) Setup() {
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(r.api)
	}
}

// MutationGuard returns the idempotency middleware configured for
// payment-style mutating endpoints, or a no-op when no store is set.
func MutationGuard(store shared.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  store,
		TTL:    ttl,
		Logger: log,
	})
}
