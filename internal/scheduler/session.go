// Package scheduler owns the lifetime of a dashboard session: the periodic price
// refresh, insight regeneration on asset changes, and the warm-up run at start.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// DefaultSchedule refreshes prices every five minutes.
const DefaultSchedule = "@every 5m"

// Session runs background work until Stop is called. Once stopped, no refresh
// or insight result is applied anymore.
type Session struct {
	refresh  *service.PriceRefreshService
	insights *service.InsightService
	schedule string
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	running   bool
	ctx       context.Context
	cancel    context.CancelFunc
	cron      *cron.Cron
	stopWatch func()
	warmup    sync.WaitGroup
	warmupErr error
}

// New creates a stopped session. An empty schedule uses DefaultSchedule.
func New(refresh *service.PriceRefreshService, insights *service.InsightService, schedule string, logger *zap.SugaredLogger) *Session {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Session{
		refresh:  refresh,
		insights: insights,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the refresh job, subscribes insight regeneration to asset
// changes and kicks off one refresh and one insight run in the background.
// Calling Start on a running session does nothing.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	sctx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.logger})))
	if _, err := c.AddFunc(s.schedule, func() { s.scheduledRefresh(sctx) }); err != nil {
		cancel()
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}

	s.ctx = sctx
	s.cancel = cancel
	s.cron = c
	s.stopWatch = s.insights.Watch(sctx)
	s.running = true
	s.warmupErr = nil

	c.Start()

	s.warmup.Add(1)
	go func() {
		defer s.warmup.Done()
		err := s.warmUp(sctx)
		switch {
		case err == nil:
		case sctx.Err() != nil:
			s.logger.Debugw("warm-up interrupted", "error", err)
		default:
			s.logger.Warnw("warm-up incomplete", "error", err)
		}
		s.mu.Lock()
		s.warmupErr = err
		s.mu.Unlock()
	}()

	s.logger.Infow("dashboard session started", "schedule", s.schedule)
	return nil
}

// Stop cancels all background work and waits for running jobs to return.
// It is safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.stopWatch()
	cronDone := s.cron.Stop()
	s.mu.Unlock()

	<-cronDone.Done()
	s.warmup.Wait()
	s.refresh.Wait()
	s.insights.Wait()

	s.logger.Infow("dashboard session stopped")
}

// Running reports whether the session has been started and not stopped.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// WarmUpErr reports why the warm-up after the last Start did not complete.
// It is nil while the warm-up is running and after it succeeded.
func (s *Session) WarmUpErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warmupErr
}

// TriggerRefresh starts an immediate price refresh in the background.
// Triggered is false when a refresh is already running or the session is stopped.
func (s *Session) TriggerRefresh() model.RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return s.refresh.Status()
	}
	return s.refresh.Trigger(s.ctx)
}

// TriggerInsights starts an insight regeneration in the background.
// It returns false when one is already running or the session is stopped.
func (s *Session) TriggerInsights() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	return s.insights.Trigger(s.ctx)
}

func (s *Session) scheduledRefresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	status := s.refresh.Refresh(ctx)
	if !status.Triggered {
		s.logger.Debugw("scheduled refresh skipped, previous refresh still running")
	}
}

// warmUp runs the first refresh and insight generation side by side and
// returns the first failure. A run dropped because another is in flight is
// not a failure.
func (s *Session) warmUp(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		if !s.refresh.Refresh(ctx).Triggered {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.refresh.LastError()
	})
	g.Go(func() error {
		if !s.insights.Generate(ctx) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.insights.LastError()
	})
	return g.Wait()
}

// cronLogger adapts zap to cron's logging interface.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
