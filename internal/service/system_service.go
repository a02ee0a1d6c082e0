package service

import (
	"database/sql"
	"strconv"

	"github.com/mheijden/portfolio-tracker/internal/database"
	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo returns the application and schema version.
func (s *SystemService) VersionInfo() model.VersionInfo {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "unknown",
	}
	if schemaVersion, err := database.SchemaVersion(s.db); err == nil {
		info.DbVersion = strconv.FormatInt(schemaVersion, 10)
	}
	return info
}
