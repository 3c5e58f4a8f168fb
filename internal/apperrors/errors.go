package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrStateNotFound indicates that no persisted portfolio state exists yet.
	ErrStateNotFound = errors.New("persisted state not found")

	// ErrNoPriceFound indicates that a price lookup produced no usable price.
	ErrNoPriceFound = errors.New("no price found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidAssetType indicates an asset type outside the supported set.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrInvalidCurrency indicates a currency outside the supported set.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyQuery indicates that a search was requested without a query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	ErrInvalidSymbol = errors.New("symbol is required")
)

// Collaborator errors represent failures of the external services the dashboard depends on.
var (
	// ErrGeneratorUnavailable indicates that the AI service is not configured.
	ErrGeneratorUnavailable = errors.New("ai generator unavailable")

	// ErrMalformedResponse indicates that the AI service answered with content of the wrong shape.
	ErrMalformedResponse = errors.New("malformed ai response")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveAssets = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset  = errors.New("failed to retrieve asset")
	ErrFailedToCreateAsset    = errors.New("failed to create asset")
	ErrFailedToUpdateAsset    = errors.New("failed to update asset")
	ErrFailedToDeleteAsset    = errors.New("failed to delete asset")
	ErrFailedToSearchSymbols  = errors.New("failed to search symbols")
	ErrFailedToRetrievePrice  = errors.New("failed to retrieve price")
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrMalformedState indicates that the persisted state could not be decoded.
	ErrMalformedState = errors.New("malformed persisted state")

	// ErrStateLocked indicates that the persisted state is encrypted and the
	// configured key is missing or does not match.
	ErrStateLocked = errors.New("persisted state is encrypted and cannot be read with the configured key")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
