package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. features lists optional
// capabilities and whether they are enabled, e.g. "ai_insights".
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema version and
// whether migrations are pending.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	current, err := database.Version(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to get database version: %w", err)
	}
	latest, err := database.LatestVersion()
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to get latest migration: %w", err)
	}

	features := make(map[string]bool, len(s.features))
	for k, v := range s.features {
		features[k] = v
	}

	info := model.VersionInfo{
		AppVersion:        version.Version,
		DbVersion:         strconv.FormatInt(current, 10),
		ReportingCurrency: valuation.ReportingCurrency,
		Features:          features,
	}
	if current < latest {
		msg := fmt.Sprintf("database schema is at version %d, latest is %d", current, latest)
		info.MigrationNeeded = true
		info.MigrationMessage = &msg
	}
	return info, nil
}
