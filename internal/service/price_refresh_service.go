package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
)

// PriceSource supplies the latest prices for a set of assets.
// The mapping may cover any subset of the requested symbols.
type PriceSource interface {
	RequestBatchPrices(ctx context.Context, assets []model.Asset) (map[string]float64, error)
}

// PriceRefreshService requests fresh prices for trackable assets and merges them
// into the asset store.
//
// At most one refresh runs at a time. A trigger that arrives while one is in flight
// is dropped, not queued. Collaborator failures are logged and absorbed: the store
// keeps its last known prices and no error reaches the caller.
type PriceRefreshService struct {
	store  *store.AssetStore
	source PriceSource
	logger *zap.SugaredLogger
	now    func() time.Time

	inFlight atomic.Bool
	wg       sync.WaitGroup

	mu          sync.RWMutex
	lastUpdated *time.Time
	lastErr     error
}

// NewPriceRefreshService creates a new PriceRefreshService.
func NewPriceRefreshService(assets *store.AssetStore, source PriceSource, logger *zap.SugaredLogger) *PriceRefreshService {
	return &PriceRefreshService{
		store:  assets,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Refresh runs one refresh and waits for it to finish.
// Triggered is false when another refresh was already in flight; in that case
// no request is made.
func (s *PriceRefreshService) Refresh(ctx context.Context) model.RefreshStatus {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debugw("price refresh already in flight, dropping trigger")
		return s.status(false, 0)
	}
	s.wg.Add(1)

	updated := s.run(ctx)
	s.release()
	return s.status(true, updated)
}

// Trigger starts a refresh in the background and returns immediately.
// The refresh stops merging once ctx is canceled.
func (s *PriceRefreshService) Trigger(ctx context.Context) model.RefreshStatus {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debugw("price refresh already in flight, dropping trigger")
		return s.status(false, 0)
	}
	s.wg.Add(1)

	go func() {
		defer s.release()
		s.run(ctx)
	}()

	return s.status(true, 0)
}

// Wait blocks until no refresh is running.
func (s *PriceRefreshService) Wait() {
	s.wg.Wait()
}

// Status reports whether a refresh is running and when prices were last refreshed successfully.
func (s *PriceRefreshService) Status() model.RefreshStatus {
	return s.status(false, 0)
}

// LastError returns why the most recent completed refresh failed, or nil if it succeeded.
func (s *PriceRefreshService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// InProgress reports whether a refresh is currently outstanding.
func (s *PriceRefreshService) InProgress() bool {
	return s.inFlight.Load()
}

// LastUpdated returns the time of the last successful refresh, or nil if none has succeeded.
func (s *PriceRefreshService) LastUpdated() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated == nil {
		return nil
	}
	t := *s.lastUpdated
	return &t
}

func (s *PriceRefreshService) release() {
	s.inFlight.Store(false)
	s.wg.Done()
}

func (s *PriceRefreshService) status(triggered bool, updated int) model.RefreshStatus {
	return model.RefreshStatus{
		Triggered:   triggered,
		Updated:     updated,
		InProgress:  s.inFlight.Load(),
		LastUpdated: s.LastUpdated(),
	}
}

// run performs the request and merge. It returns the number of assets whose price changed.
func (s *PriceRefreshService) run(ctx context.Context) int {
	assets := s.store.Assets()
	if !anyTrackable(assets) {
		s.logger.Debugw("no trackable assets, skipping price refresh")
		s.setErr(nil)
		return 0
	}

	start := s.now()
	prices, err := s.source.RequestBatchPrices(ctx, assets)
	if err != nil {
		s.logger.Warnw("price refresh failed, keeping last known prices", "error", err)
		s.setErr(fmt.Errorf("price request failed: %w", err))
		return 0
	}

	updated, err := s.store.ApplyPrices(ctx, prices)
	if err != nil {
		s.logger.Warnw("failed to apply refreshed prices", "error", err)
		s.setErr(fmt.Errorf("failed to apply prices: %w", err))
		return 0
	}

	finished := s.now()
	s.mu.Lock()
	s.lastUpdated = &finished
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Infow("price refresh complete",
		"quoted", len(prices),
		"updated", updated,
		"duration", finished.Sub(start),
	)
	return updated
}

func (s *PriceRefreshService) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func anyTrackable(assets []model.Asset) bool {
	for _, a := range assets {
		if a.Trackable() {
			return true
		}
	}
	return false
}
