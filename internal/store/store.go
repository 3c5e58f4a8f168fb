// Package store owns the collection of holdings. It is the single source of truth
// for valuation: every mutation replaces the whole collection, persists it, and
// only then becomes visible to readers.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Persistence loads and saves the full asset collection as one unit.
type Persistence interface {
	Load(ctx context.Context) ([]model.Asset, error)
	Save(ctx context.Context, assets []model.Asset) error
}

// Listener is notified with a snapshot of the collection after every successful mutation.
type Listener func(assets []model.Asset)

// AssetStore holds the current asset collection.
// It is safe for concurrent use.
type AssetStore struct {
	mu          sync.RWMutex
	assets      []model.Asset
	persistence Persistence
	logger      *zap.SugaredLogger

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

// New creates an AssetStore and loads the persisted collection once.
// Absent or malformed state falls back to SeedAssets, which is then persisted.
// Locked state is returned as an error and left untouched.
func New(ctx context.Context, persistence Persistence, logger *zap.SugaredLogger) (*AssetStore, error) {
	s := &AssetStore{
		persistence: persistence,
		logger:      logger,
		listeners:   make(map[int]Listener),
	}

	assets, err := persistence.Load(ctx)
	if errors.Is(err, apperrors.ErrStateLocked) {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	if err == nil {
		assets, err = sanitize(assets)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrStateNotFound) {
			logger.Infow("no persisted portfolio found, using seed portfolio")
		} else {
			logger.Warnw("persisted portfolio unusable, falling back to seed portfolio", "error", err)
		}
		assets = SeedAssets()
		if err := persistence.Save(ctx, assets); err != nil {
			logger.Warnw("failed to persist seed portfolio", "error", err)
		}
	}

	s.assets = assets
	return s, nil
}

// Assets returns a copy of the current collection in collection order.
func (s *AssetStore) Assets() []model.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.assets)
}

// Get returns the asset with the given ID.
func (s *AssetStore) Get(id string) (model.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return s.assets[i], nil
}

// Add appends a new asset with a freshly generated ID.
func (s *AssetStore) Add(ctx context.Context, asset model.Asset) (model.Asset, error) {
	asset = Normalize(asset)
	if err := Validate(asset); err != nil {
		return model.Asset{}, err
	}
	asset.ID = uuid.NewString()

	err := s.mutate(ctx, func(current []model.Asset) ([]model.Asset, bool, error) {
		return append(slices.Clone(current), asset), true, nil
	})
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// Update replaces the stored asset that has the same ID.
// The asset type is fixed at creation; a different type in the input is ignored.
func (s *AssetStore) Update(ctx context.Context, asset model.Asset) (model.Asset, error) {
	var updated model.Asset

	err := s.mutate(ctx, func(current []model.Asset) ([]model.Asset, bool, error) {
		i := indexOf(current, asset.ID)
		if i < 0 {
			return nil, false, apperrors.ErrAssetNotFound
		}

		candidate := asset
		candidate.Type = current[i].Type
		candidate = Normalize(candidate)
		if err := Validate(candidate); err != nil {
			return nil, false, err
		}

		next := slices.Clone(current)
		next[i] = candidate
		updated = candidate
		return next, true, nil
	})
	if err != nil {
		return model.Asset{}, err
	}
	return updated, nil
}

// Delete removes the asset with the given ID.
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(current []model.Asset) ([]model.Asset, bool, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, false, apperrors.ErrAssetNotFound
		}
		return slices.Delete(slices.Clone(current), i, i+1), true, nil
	})
}

// ApplyPrices merges a symbol → price mapping into the collection.
//
// Only trackable assets whose symbol appears in prices are touched, and only their
// CurrentPrice changes. Symbols are matched exactly first, then case-insensitively
// (see foldPrices).
// Negative or non-finite prices are ignored. Returns the number of assets whose
// price changed; nothing is persisted when that number is zero.
//
// A canceled context prevents any mutation.
func (s *AssetStore) ApplyPrices(ctx context.Context, prices map[string]float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(prices) == 0 {
		return 0, nil
	}

	folded := foldPrices(prices)

	changed := 0
	err := s.mutate(ctx, func(current []model.Asset) ([]model.Asset, bool, error) {
		next := slices.Clone(current)
		for i, a := range next {
			if !a.Trackable() {
				continue
			}
			price, ok := prices[a.Symbol]
			if !ok {
				price, ok = folded[foldSymbol(a.Symbol)]
			}
			if !ok || !validPrice(price) || price == a.CurrentPrice {
				continue
			}
			next[i].CurrentPrice = price
			changed++
		}
		return next, changed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// Subscribe registers a listener and returns a function that removes it.
func (s *AssetStore) Subscribe(l Listener) (unsubscribe func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

// mutate applies fn to the current collection. When fn reports a change, the
// result is persisted and swapped in; a failed save leaves the collection as it was.
func (s *AssetStore) mutate(ctx context.Context, fn func(current []model.Asset) ([]model.Asset, bool, error)) error {
	s.mu.Lock()

	next, changed, err := fn(s.assets)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}

	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}

	if err := s.persistence.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist assets: %w", err)
	}

	s.assets = next
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

func (s *AssetStore) notify(snapshot []model.Asset) {
	s.listenerMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenerMu.Unlock()

	for _, l := range listeners {
		l(slices.Clone(snapshot))
	}
}

func (s *AssetStore) indexOf(id string) int {
	return indexOf(s.assets, id)
}

func indexOf(assets []model.Asset, id string) int {
	return slices.IndexFunc(assets, func(a model.Asset) bool { return a.ID == id })
}

// Normalize fills in defaults and enforces the bank account shape:
// a bank account is one unit whose current value mirrors its balance.
func Normalize(a model.Asset) model.Asset {
	a.Name = strings.TrimSpace(a.Name)
	a.Symbol = strings.TrimSpace(a.Symbol)
	if a.Currency == "" {
		a.Currency = a.Type.DefaultCurrency()
	}
	if a.Type == model.AssetTypeBankAccount {
		a.Quantity = 1
		a.CurrentPrice = a.AveragePrice
	} else {
		a.BankName = ""
	}
	return a
}

// Validate checks the invariants every stored asset must satisfy.
func Validate(a model.Asset) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAssetType, a.Type)
	}
	if !a.Currency.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, a.Currency)
	}
	for field, v := range map[string]float64{
		"quantity":     a.Quantity,
		"averagePrice": a.AveragePrice,
		"currentPrice": a.CurrentPrice,
	} {
		if !validPrice(v) {
			return fmt.Errorf("%w: %s = %v", apperrors.ErrNegativeAmount, field, v)
		}
	}
	return nil
}

// sanitize checks a loaded collection. Missing or duplicate IDs are re-keyed;
// any invalid record makes the whole payload malformed.
func sanitize(assets []model.Asset) ([]model.Asset, error) {
	if assets == nil {
		return nil, apperrors.ErrStateNotFound
	}

	seen := make(map[string]bool, len(assets))
	out := make([]model.Asset, 0, len(assets))
	for i, a := range assets {
		a = Normalize(a)
		if err := Validate(a); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", apperrors.ErrMalformedState, i, err)
		}
		if a.ID == "" || seen[a.ID] {
			a.ID = uuid.NewString()
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

func validPrice(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// foldPrices indexes prices by folded symbol. When several keys fold together,
// a key already in folded form wins; otherwise conflicting prices are dropped.
func foldPrices(prices map[string]float64) map[string]float64 {
	folded := make(map[string]float64, len(prices))
	canonical := make(map[string]bool, len(prices))
	ambiguous := make(map[string]bool)

	for symbol, price := range prices {
		key := foldSymbol(symbol)
		isCanonical := symbol == key
		prev, seen := folded[key]
		switch {
		case !seen:
			folded[key] = price
			canonical[key] = isCanonical
		case canonical[key]:
		case isCanonical:
			folded[key] = price
			canonical[key] = true
			delete(ambiguous, key)
		case prev != price:
			ambiguous[key] = true
		}
	}

	for key := range ambiguous {
		delete(folded, key)
	}
	return folded
}

func foldSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
