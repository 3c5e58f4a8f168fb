package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
)

// AssetService handles asset CRUD operations on top of the asset store.
type AssetService struct {
	store *store.AssetStore
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets *store.AssetStore) *AssetService {
	return &AssetService{store: assets}
}

// GetAssets returns every asset in collection order.
func (s *AssetService) GetAssets() []model.Asset {
	return s.store.Assets()
}

// GetAsset returns a single asset.
// Returns apperrors.ErrAssetNotFound if no asset has the given ID.
func (s *AssetService) GetAsset(id string) (model.Asset, error) {
	return s.store.Get(id)
}

// CreateAsset adds a new asset. When no currency is given the asset type's
// default currency is used. Bank accounts are stored as one unit whose current
// value equals the entered balance.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (model.Asset, error) {
	asset := model.Asset{
		Type:         model.AssetType(req.Type),
		Name:         req.Name,
		Symbol:       req.Symbol,
		Quantity:     req.Quantity,
		AveragePrice: req.AveragePrice,
		CurrentPrice: req.CurrentPrice,
		Currency:     model.Currency(req.Currency),
		BankName:     req.BankName,
	}

	created, err := s.store.Add(ctx, asset)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to create asset: %w", err)
	}
	return created, nil
}

// UpdateAsset updates an existing asset with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
//
// Returns apperrors.ErrAssetNotFound if the asset doesn't exist.
func (s *AssetService) UpdateAsset(ctx context.Context, id string, req request.UpdateAssetRequest) (model.Asset, error) {
	asset, err := s.store.Get(id)
	if err != nil {
		return model.Asset{}, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Symbol != nil {
		asset.Symbol = *req.Symbol
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.AveragePrice != nil {
		asset.AveragePrice = *req.AveragePrice
	}
	if req.CurrentPrice != nil {
		asset.CurrentPrice = *req.CurrentPrice
	}
	if req.Currency != nil {
		asset.Currency = model.Currency(*req.Currency)
	}
	if req.BankName != nil {
		asset.BankName = *req.BankName
	}

	updated, err := s.store.Update(ctx, asset)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to update asset: %w", err)
	}
	return updated, nil
}

// DeleteAsset removes an asset.
// Returns apperrors.ErrAssetNotFound if the asset doesn't exist.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
