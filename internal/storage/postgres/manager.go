package postgres

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/storage/curvefile"
)

// Manager implements the StorageManager interface for PostgreSQL
type Manager struct {
	db     *DB
	curve  interfaces.CurveStorage
	logger arbor.ILogger
}

// NewManager connects, ensures the schema and creates the storage manager
func NewManager(ctx context.Context, logger arbor.ILogger, config *common.PostgresConfig) (interfaces.StorageManager, error) {
	db, err := NewDB(ctx, logger, config)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Msg("PostgreSQL storage manager initialized")

	return &Manager{
		db:     db,
		curve:  NewCurveStorage(db, logger),
		logger: logger,
	}, nil
}

// CurveStorage returns the Curve storage interface
func (m *Manager) CurveStorage() interfaces.CurveStorage {
	return m.curve
}

// LoadCurvesFromFiles seeds curve storage from TOML/YAML dataset files
func (m *Manager) LoadCurvesFromFiles(ctx context.Context, dirPath string) error {
	return curvefile.LoadCurvesFromFiles(ctx, m.curve, dirPath, m.logger)
}

// Close closes the connection pool
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
