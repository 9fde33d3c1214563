package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBusinessProvider struct {
	ids []uuid.UUID
	err error
}

func (p *stubBusinessProvider) ActiveBusinessIDs(_ context.Context) ([]uuid.UUID, error) {
	return p.ids, p.err
}

type stubEvaluator struct {
	mu      sync.Mutex
	calls   []uuid.UUID
	created int
	err     error
}

func (e *stubEvaluator) EvaluateForBusiness(_ context.Context, businessID uuid.UUID, _ time.Time) (int, error) {
	e.mu.Lock()
	e.calls = append(e.calls, businessID)
	e.mu.Unlock()
	return e.created, e.err
}

type stubSweeper struct {
	mu    sync.Mutex
	calls []uuid.UUID
	err   error
}

func (s *stubSweeper) SweepOverdue(_ context.Context, businessID uuid.UUID, _ time.Time) (int, error) {
	s.mu.Lock()
	s.calls = append(s.calls, businessID)
	s.mu.Unlock()
	return 1, s.err
}

func newTestScheduler(provider BusinessProvider, evaluator TargetEvaluator, sweeper OverdueSweeper) *CronScheduler {
	return NewCronScheduler(DefaultConfig(), provider, evaluator, sweeper, zap.NewNop())
}

func TestParseCronSpec(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{"standard nightly", "0 2 * * *", 2, 0, false},
		{"half past", "30 14 * * *", 14, 30, false},
		{"too few fields", "5", 0, 0, true},
		{"bad minute", "61 2 * * *", 0, 0, true},
		{"bad hour", "0 24 * * *", 0, 0, true},
		{"wildcard minute", "* 2 * * *", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseCronSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestCronScheduler_RunTargetEvaluation(t *testing.T) {
	biz1, biz2 := uuid.New(), uuid.New()
	evaluator := &stubEvaluator{created: 3}
	sched := newTestScheduler(&stubBusinessProvider{ids: []uuid.UUID{biz1, biz2}}, evaluator, &stubSweeper{})

	sched.RunTargetEvaluation(context.Background(), time.Now())

	assert.Equal(t, []uuid.UUID{biz1, biz2}, evaluator.calls)
}

func TestCronScheduler_TargetEvaluationContinuesOnError(t *testing.T) {
	evaluator := &stubEvaluator{err: errors.New("db down")}
	sched := newTestScheduler(&stubBusinessProvider{ids: []uuid.UUID{uuid.New(), uuid.New()}}, evaluator, &stubSweeper{})

	sched.RunTargetEvaluation(context.Background(), time.Now())

	assert.Len(t, evaluator.calls, 2)
}

func TestCronScheduler_RunOverdueSweep(t *testing.T) {
	biz := uuid.New()
	sweeper := &stubSweeper{}
	sched := newTestScheduler(&stubBusinessProvider{ids: []uuid.UUID{biz}}, &stubEvaluator{}, sweeper)

	sched.RunOverdueSweep(context.Background(), time.Now())

	assert.Equal(t, []uuid.UUID{biz}, sweeper.calls)
}

func TestCronScheduler_FiresOncePerDay(t *testing.T) {
	evaluator := &stubEvaluator{}
	cfg := DefaultConfig()
	cfg.TargetHour = 2
	cfg.TargetMinute = 0
	sched := NewCronScheduler(cfg, &stubBusinessProvider{ids: []uuid.UUID{uuid.New()}}, evaluator, &stubSweeper{}, zap.NewNop())

	at := time.Date(2026, 3, 15, 2, 0, 30, 0, time.UTC)
	sched.checkAndTrigger(context.Background(), at)
	sched.checkAndTrigger(context.Background(), at.Add(20*time.Second))

	assert.Len(t, evaluator.calls, 1)

	nextDay := at.Add(24 * time.Hour)
	sched.checkAndTrigger(context.Background(), nextDay)
	assert.Len(t, evaluator.calls, 2)
}

func TestCronScheduler_SkipsOffSchedule(t *testing.T) {
	evaluator := &stubEvaluator{}
	sched := newTestScheduler(&stubBusinessProvider{ids: []uuid.UUID{uuid.New()}}, evaluator, &stubSweeper{})

	sched.checkAndTrigger(context.Background(), time.Date(2026, 3, 15, 11, 45, 0, 0, time.UTC))

	assert.Empty(t, evaluator.calls)
}

func TestCronScheduler_StartStop(t *testing.T) {
	sched := newTestScheduler(&stubBusinessProvider{}, &stubEvaluator{}, &stubSweeper{})

	require.NoError(t, sched.Start(context.Background()))
	require.NoError(t, sched.Start(context.Background())) // idempotent

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sched.Stop(ctx))
	require.NoError(t, sched.Stop(ctx))
}
