package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	creditapp "github.com/paylater/backend/internal/application/credit"
	incentiveapp "github.com/paylater/backend/internal/application/incentive"
	partyapp "github.com/paylater/backend/internal/application/party"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/infrastructure/audit"
	"github.com/paylater/backend/internal/infrastructure/auth"
	"github.com/paylater/backend/internal/infrastructure/cache"
	"github.com/paylater/backend/internal/infrastructure/config"
	"github.com/paylater/backend/internal/infrastructure/event"
	"github.com/paylater/backend/internal/infrastructure/logger"
	"github.com/paylater/backend/internal/infrastructure/persistence"
	"github.com/paylater/backend/internal/infrastructure/scheduler"
	"github.com/paylater/backend/internal/interfaces/http/handler"
	"github.com/paylater/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PayLater Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	ruleRepo := persistence.NewGormBonusRuleRepository(db.DB)
	recordRepo := persistence.NewGormBonusRecordRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	staffRepo := persistence.NewGormStaffMemberRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	performanceReader := persistence.NewGormPerformanceReader(db.DB)
	businessProvider := persistence.NewGormBusinessProvider(db.DB)

	// Application services
	ruleService := incentiveapp.NewRuleService(ruleRepo, log)
	recordService := incentiveapp.NewRecordService(recordRepo, log)
	awardService := incentiveapp.NewAwardService(ruleRepo, recordRepo, log)
	targetService := incentiveapp.NewTargetService(ruleRepo, recordRepo, staffRepo, performanceReader, log)
	purchaseService := creditapp.NewPurchaseService(purchaseRepo, customerRepo, log)
	paymentService := creditapp.NewPaymentService(paymentRepo, purchaseRepo, log)
	customerService := partyapp.NewCustomerService(customerRepo, log)
	staffService := partyapp.NewStaffService(staffRepo, log)
	shopService := partyapp.NewShopService(shopRepo, log)

	// Audit trail for administrative actions
	if cfg.Incentive.AuditEnabled {
		trail := audit.NewGormTrail(db.DB, log)
		ruleService.SetAuditTrail(trail)
		recordService.SetAuditTrail(trail)
	}

	// Event bus wires payment confirmations into bonus calculation
	eventBus := event.NewInMemoryEventBus(log)

	bonusEventHandler := incentiveapp.NewBonusEventHandler(awardService, staffRepo, log)
	eventBus.Subscribe(bonusEventHandler)
	log.Info("Event handlers registered",
		zap.Strings("bonus_trigger_events", bonusEventHandler.EventTypes()))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	ruleService.SetEventPublisher(eventBus)
	recordService.SetEventPublisher(eventBus)
	awardService.SetEventPublisher(eventBus)
	targetService.SetEventPublisher(eventBus)
	purchaseService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	customerService.SetEventPublisher(eventBus)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, idempotencyStore := buildStores(cfg, log)

	// Scheduler: nightly target evaluation and overdue sweep per business
	if cfg.Scheduler.Enabled {
		schedCfg := scheduler.DefaultConfig()
		schedCfg.JobTimeout = cfg.Scheduler.JobTimeout
		if hour, minute, err := scheduler.ParseCronSpec(cfg.Scheduler.TargetCronSpec); err == nil {
			schedCfg.TargetHour, schedCfg.TargetMinute = hour, minute
		} else {
			log.Warn("Invalid target cron spec, using default", zap.Error(err))
		}
		if hour, minute, err := scheduler.ParseCronSpec(cfg.Scheduler.OverdueCronSpec); err == nil {
			schedCfg.OverdueHour, schedCfg.OverdueMinute = hour, minute
		} else {
			log.Warn("Invalid overdue cron spec, using default", zap.Error(err))
		}

		cron := scheduler.NewCronScheduler(schedCfg, businessProvider, targetService, purchaseService, log)
		if err := cron.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := cron.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.String("target_cron", cfg.Scheduler.TargetCronSpec),
			zap.String("overdue_cron", cfg.Scheduler.OverdueCronSpec))
	}

	// HTTP
	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}

	r := router.New(router.Config{
		Mode:           mode,
		APIVersion:     "v1",
		AllowOrigins:   cfg.HTTP.CORSAllowOrigins,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := r.Engine().SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	guard := router.MutationGuard(idempotencyStore, cfg.Incentive.IdempotencyTTL, log)

	systemHandler := handler.NewSystemHandler(db, version)
	r.RegisterRoot(http.MethodGet, "/health", systemHandler.Health)
	r.RegisterRoot(http.MethodGet, "/ready", systemHandler.Ready)

	r.Register(systemHandler)
	r.Register(handler.NewAuthHandler(blacklist, log))
	r.Register(handler.NewBonusRuleHandler(ruleService))
	r.Register(handler.NewBonusRecordHandler(recordService, targetService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewPaymentHandler(paymentService, guard))
	r.Register(handler.NewCustomerHandler(customerService))
	r.Register(handler.NewStaffHandler(staffService))
	r.Register(handler.NewShopHandler(shopService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// buildStores creates the token blacklist and idempotency store, backed
// by Redis when configured and in-memory otherwise.
func buildStores(cfg *config.Config, log *zap.Logger) (auth.TokenBlacklist, shared.IdempotencyStore) {
	if cfg.Redis.Host == "" {
		log.Info("Redis not configured, using in-memory blacklist and idempotency store")
		return auth.NewInMemoryTokenBlacklist(), cache.NewInMemoryIdempotencyStore()
	}

	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis blacklist unavailable, falling back to in-memory", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist(), cache.NewInMemoryIdempotencyStore()
	}

	store, err := cache.NewRedisIdempotencyStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis idempotency store unavailable, falling back to in-memory", zap.Error(err))
		return blacklist, cache.NewInMemoryIdempotencyStore()
	}

	log.Info("Redis stores initialized", zap.String("host", cfg.Redis.Host))
	return blacklist, store
}
