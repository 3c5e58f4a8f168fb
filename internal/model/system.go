package model

// VersionInfo describes the running build: application and schema versions,
// which optional capabilities are switched on, and the currency every
// portfolio figure is reported in.
type VersionInfo struct {
	AppVersion        string          `json:"app_version"`
	DbVersion         string          `json:"db_version"`
	ReportingCurrency Currency        `json:"reporting_currency"`
	Features          map[string]bool `json:"features"`
	MigrationNeeded   bool            `json:"migration_needed"`
	MigrationMessage  *string         `json:"migration_message,omitempty"`
}
