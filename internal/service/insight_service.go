package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/gemini"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// InsightSource produces narrative commentary for a set of holdings.
type InsightSource interface {
	RequestInsights(ctx context.Context, holdings []gemini.Holding, summary model.PortfolioSummary) ([]model.Insight, error)
}

// InsightService keeps the current list of AI insights.
//
// Like price refresh, generation is single-flight: a trigger that arrives while a
// request is outstanding is dropped. While loading, the previous insights stay
// visible. A failed or unparsable response clears the list.
type InsightService struct {
	store  *store.AssetStore
	engine *valuation.Engine
	source InsightSource
	logger *zap.SugaredLogger
	now    func() time.Time

	inFlight atomic.Bool
	wg       sync.WaitGroup

	mu          sync.RWMutex
	insights    []model.Insight
	generatedAt *time.Time
	lastErr     error
}

// NewInsightService creates a new InsightService with an empty insight list.
func NewInsightService(assets *store.AssetStore, engine *valuation.Engine, source InsightSource, logger *zap.SugaredLogger) *InsightService {
	return &InsightService{
		store:    assets,
		engine:   engine,
		source:   source,
		logger:   logger,
		now:      time.Now,
		insights: []model.Insight{},
	}
}

// Generate requests a new insight list and waits for it.
// It returns false when a generation was already in flight and this call was dropped.
func (s *InsightService) Generate(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debugw("insight generation already in flight, dropping trigger")
		return false
	}
	s.wg.Add(1)

	s.run(ctx)
	s.release()
	return true
}

// Trigger starts a generation in the background.
// It returns false when a generation was already in flight.
func (s *InsightService) Trigger(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debugw("insight generation already in flight, dropping trigger")
		return false
	}
	s.wg.Add(1)

	go func() {
		defer s.release()
		s.run(ctx)
	}()
	return true
}

// Watch regenerates insights whenever the asset collection changes, until ctx is
// canceled or the returned function is called.
func (s *InsightService) Watch(ctx context.Context) (stop func()) {
	unsubscribe := s.store.Subscribe(func([]model.Asset) {
		if ctx.Err() != nil {
			return
		}
		s.Trigger(ctx)
	})
	return unsubscribe
}

// Wait blocks until no generation is running.
func (s *InsightService) Wait() {
	s.wg.Wait()
}

// State returns the current insights and whether a request is outstanding.
func (s *InsightService) State() model.InsightState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := model.InsightState{
		Insights: slices.Clone(s.insights),
		Loading:  s.inFlight.Load(),
	}
	if state.Insights == nil {
		state.Insights = []model.Insight{}
	}
	if s.generatedAt != nil {
		t := *s.generatedAt
		state.GeneratedAt = &t
	}
	return state
}

// LastError returns why the most recent completed generation failed, or nil if it succeeded.
func (s *InsightService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *InsightService) release() {
	s.inFlight.Store(false)
	s.wg.Done()
}

func (s *InsightService) run(ctx context.Context) {
	assets := s.store.Assets()
	holdings := make([]gemini.Holding, 0, len(assets))
	for _, a := range assets {
		value := s.engine.Convert(a.Quantity*a.CurrentPrice, a.Currency)
		invested := s.engine.Convert(a.Quantity*a.AveragePrice, a.Currency)
		holdings = append(holdings, gemini.Holding{Asset: a, MarketValue: value, Profit: value - invested})
	}

	insights, err := s.source.RequestInsights(ctx, holdings, s.engine.Summary(assets))
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Warnw("insight generation failed, clearing insights", "error", err)
		insights = []model.Insight{}
		err = fmt.Errorf("insight request failed: %w", err)
	}

	generated := s.now()
	s.mu.Lock()
	s.insights = insights
	s.lastErr = err
	if err == nil {
		s.generatedAt = &generated
	}
	s.mu.Unlock()
}
