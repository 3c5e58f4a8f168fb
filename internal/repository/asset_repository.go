package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// AssetsStateKey is the app_state key under which the asset collection lives.
const AssetsStateKey = "portfolio_assets"

// AssetRepository persists the complete asset collection as a single JSON document.
type AssetRepository struct {
	state *StateRepository
}

// NewAssetRepository creates a new AssetRepository backed by the given state repository.
func NewAssetRepository(state *StateRepository) *AssetRepository {
	return &AssetRepository{state: state}
}

// Load returns the persisted collection.
// Returns apperrors.ErrStateNotFound when nothing has been saved yet and
// a wrapped apperrors.ErrMalformedState when the document cannot be decoded.
// Encrypted state read without the right key is apperrors.ErrStateLocked.
func (r *AssetRepository) Load(ctx context.Context) ([]model.Asset, error) {
	raw, _, err := r.state.Get(ctx, AssetsStateKey)
	if err != nil {
		return nil, err
	}

	var assets []model.Asset
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMalformedState, err)
	}
	if assets == nil {
		return nil, fmt.Errorf("%w: document is not a list", apperrors.ErrMalformedState)
	}
	return assets, nil
}

// Save replaces the persisted collection.
func (r *AssetRepository) Save(ctx context.Context, assets []model.Asset) error {
	if assets == nil {
		assets = []model.Asset{}
	}
	data, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("failed to encode assets: %w", err)
	}
	return r.state.Put(ctx, AssetsStateKey, string(data))
}
