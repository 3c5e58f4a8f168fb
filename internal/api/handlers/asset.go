package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints.
// It serves the holdings list, the add/edit/delete flows, and the symbol
// search and price lookup used while adding an asset.
type AssetHandler struct {
	assetService  *service.AssetService
	lookupService *service.LookupService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependencies.
func NewAssetHandler(assetService *service.AssetService, lookupService *service.LookupService) *AssetHandler {
	return &AssetHandler{
		assetService:  assetService,
		lookupService: lookupService,
	}
}

// Assets handles GET requests to retrieve all assets in collection order.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.assetService.GetAssets())
}

// Asset handles GET requests to retrieve a single asset.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if the asset doesn't exist
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to add an asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest
// Response: 201 Created with Asset
// Error: 400 Bad Request for invalid body or validation failure
// Error: 500 Internal Server Error if the asset could not be persisted
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		if isAssetValidationError(err) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to edit an asset. Omitted fields are left
// unchanged and the asset type cannot be changed.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest
// Response: 200 OK with Asset
// Error: 400 Bad Request for invalid body or validation failure
// Error: 404 Not Found if the asset doesn't exist
// Error: 500 Internal Server Error if the asset could not be persisted
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case isAssetValidationError(err):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateAsset.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the asset doesn't exist
// Error: 500 Internal Server Error if the change could not be persisted
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Search handles GET requests to find instruments by name or ticker.
// A blank query returns an empty array. When the AI service fails the result
// is also empty; search never reports an upstream error to the client.
//
// Endpoint: GET /api/asset/search?q={query}&type={assetType}
// Response: 200 OK with array of SearchCandidate
// Error: 400 Bad Request for an unknown asset type
func (h *AssetHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := request.SearchRequest{
		Query: r.URL.Query().Get("q"),
		Type:  strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))),
	}

	if err := validation.ValidateSearch(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	candidates := h.lookupService.Search(r.Context(), req.Query, model.AssetType(req.Type))
	response.RespondJSON(w, http.StatusOK, candidates)
}

// Quote handles GET requests to look up the current price of one instrument.
//
// Endpoint: GET /api/asset/quote?symbol={symbol}&name={name}&currency={currency}&type={assetType}
// Response: 200 OK with PriceQuote
// Error: 400 Bad Request if the symbol is missing or a parameter is invalid
// Error: 404 Not Found if no price could be determined
// Error: 502 Bad Gateway if the AI service failed
func (h *AssetHandler) Quote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.QuoteRequest{
		Symbol:   strings.TrimSpace(query.Get("symbol")),
		Name:     query.Get("name"),
		Currency: strings.ToUpper(strings.TrimSpace(query.Get("currency"))),
		Type:     strings.ToUpper(strings.TrimSpace(query.Get("type"))),
	}

	if err := validation.ValidateQuote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	currency := model.Currency(req.Currency)
	if currency == "" {
		currency = model.CurrencyUSD
		if req.Type != "" {
			currency = model.AssetType(req.Type).DefaultCurrency()
		}
	}

	quote, err := h.lookupService.Quote(r.Context(), req.Symbol, req.Name, currency)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidSymbol):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		case errors.Is(err, apperrors.ErrNoPriceFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoPriceFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrievePrice.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

func isAssetValidationError(err error) bool {
	return errors.Is(err, apperrors.ErrNegativeAmount) ||
		errors.Is(err, apperrors.ErrInvalidAssetType) ||
		errors.Is(err, apperrors.ErrInvalidCurrency)
}
