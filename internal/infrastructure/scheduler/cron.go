package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BusinessProvider lists the businesses the nightly jobs run for.
type BusinessProvider interface {
	ActiveBusinessIDs(ctx context.Context) ([]uuid.UUID, error)
}

// TargetEvaluator runs period target evaluation for one business.
type TargetEvaluator interface {
	EvaluateForBusiness(ctx context.Context, businessID uuid.UUID, now time.Time) (int, error)
}

// OverdueSweeper marks overdue purchases defaulted for one business.
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, businessID uuid.UUID, asOf time.Time) (int, error)
}

// Config holds the cron scheduler configuration
type Config struct {
	// TargetHour/TargetMinute is the daily time for target evaluation
	TargetHour   int
	TargetMinute int
	// OverdueHour/OverdueMinute is the daily time for the overdue sweep
	OverdueHour   int
	OverdueMinute int
	// CheckInterval is how often the scheduler checks whether a job is due
	CheckInterval time.Duration
	// JobTimeout bounds a single per-business job run
	JobTimeout time.Duration
}

// DefaultConfig returns the default scheduler configuration:
// targets at 02:00, overdue sweep at 02:30.
func DefaultConfig() Config {
	return Config{
		TargetHour:    2,
		TargetMinute:  0,
		OverdueHour:   2,
		OverdueMinute: 30,
		CheckInterval: time.Minute,
		JobTimeout:    30 * time.Minute,
	}
}

// ParseCronSpec extracts hour and minute from a "minute hour * * *"
// cron expression. Only fixed daily schedules are supported.
func ParseCronSpec(spec string) (hour, minute int, err error) {
	parts := strings.Fields(spec)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("cron spec %q must have at least minute and hour fields", spec)
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("cron spec %q has invalid minute field", spec)
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("cron spec %q has invalid hour field", spec)
	}

	return hour, minute, nil
}

// CronScheduler runs the nightly incentive jobs: target evaluation for
// every business, then the overdue purchase sweep. It ticks once a minute
// and fires each job at most once per calendar day.
type CronScheduler struct {
	config     Config
	businesses BusinessProvider
	targets    TargetEvaluator
	overdue    OverdueSweeper
	logger     *zap.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool

	lastTargetRun  string // date of the last target evaluation run
	lastOverdueRun string
}

// NewCronScheduler creates a new cron scheduler
func NewCronScheduler(
	config Config,
	businesses BusinessProvider,
	targets TargetEvaluator,
	overdue OverdueSweeper,
	logger *zap.Logger,
) *CronScheduler {
	return &CronScheduler{
		config:     config,
		businesses: businesses,
		targets:    targets,
		overdue:    overdue,
		logger:     logger,
	}
}

// Start starts the scheduler loop
func (s *CronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("cron scheduler started",
		zap.Int("target_hour", s.config.TargetHour),
		zap.Int("target_minute", s.config.TargetMinute),
		zap.Int("overdue_hour", s.config.OverdueHour),
		zap.Int("overdue_minute", s.config.OverdueMinute),
	)
	return nil
}

// Stop stops the scheduler loop, waiting for an in-flight run to finish
func (s *CronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("cron scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CronScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndTrigger(ctx, time.Now())
		}
	}
}

func (s *CronScheduler) checkAndTrigger(ctx context.Context, now time.Time) {
	date := now.Format("2006-01-02")

	if s.due(now, s.config.TargetHour, s.config.TargetMinute, &s.lastTargetRun, date) {
		s.RunTargetEvaluation(ctx, now)
	}
	if s.due(now, s.config.OverdueHour, s.config.OverdueMinute, &s.lastOverdueRun, date) {
		s.RunOverdueSweep(ctx, now)
	}
}

// due reports whether a daily job scheduled at hour:minute should fire now,
// and records the run date so the job fires at most once per day.
func (s *CronScheduler) due(now time.Time, hour, minute int, lastRun *string, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if *lastRun == date {
		return false
	}
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}
	*lastRun = date
	return true
}

// RunTargetEvaluation evaluates period targets for every active business
func (s *CronScheduler) RunTargetEvaluation(ctx context.Context, now time.Time) {
	businessIDs, err := s.businesses.ActiveBusinessIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list businesses for target evaluation", zap.Error(err))
		return
	}

	s.logger.Info("running target evaluation", zap.Int("businesses", len(businessIDs)))

	for _, businessID := range businessIDs {
		jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
		created, err := s.targets.EvaluateForBusiness(jobCtx, businessID, now)
		cancel()
		if err != nil {
			s.logger.Error("target evaluation failed for business",
				zap.String("business_id", businessID.String()),
				zap.Error(err),
			)
			continue
		}
		if created > 0 {
			s.logger.Info("target evaluation created awards",
				zap.String("business_id", businessID.String()),
				zap.Int("awards_created", created),
			)
		}
	}
}

// RunOverdueSweep marks overdue purchases defaulted for every active business
func (s *CronScheduler) RunOverdueSweep(ctx context.Context, asOf time.Time) {
	businessIDs, err := s.businesses.ActiveBusinessIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list businesses for overdue sweep", zap.Error(err))
		return
	}

	for _, businessID := range businessIDs {
		jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
		defaulted, err := s.overdue.SweepOverdue(jobCtx, businessID, asOf)
		cancel()
		if err != nil {
			s.logger.Error("overdue sweep failed for business",
				zap.String("business_id", businessID.String()),
				zap.Error(err),
			)
			continue
		}
		if defaulted > 0 {
			s.logger.Info("overdue sweep marked purchases defaulted",
				zap.String("business_id", businessID.String()),
				zap.Int("defaulted", defaulted),
			)
		}
	}
}
