package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/techiepharm/FinSim-sub001/internal/database"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db      *sql.DB // nil for the memory backend
	dialect database.Dialect
	backend string
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, dialect database.Dialect, backend string) *SystemService {
	return &SystemService{
		db:      db,
		dialect: dialect,
		backend: backend,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return database.HealthCheck(ctx, s.db)
}

// GetVersionInfo reports the application version and applied schema version.
func (s *SystemService) GetVersionInfo(ctx context.Context) (model.VersionInfo, error) {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "n/a",
		Backend:    s.backend,
	}
	if s.db == nil {
		return info, nil
	}
	v, err := database.SchemaVersion(ctx, s.db, s.dialect)
	if err != nil {
		return model.VersionInfo{}, err
	}
	info.DbVersion = strconv.FormatInt(v, 10)
	return info, nil
}
