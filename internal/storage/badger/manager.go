package badger

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/storage/curvefile"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	curve  interfaces.CurveStorage
	logger arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		curve:  NewCurveStorage(db, logger),
		logger: logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CurveStorage returns the Curve storage interface
func (m *Manager) CurveStorage() interfaces.CurveStorage {
	return m.curve
}

// LoadCurvesFromFiles seeds curve storage from TOML/YAML dataset files
func (m *Manager) LoadCurvesFromFiles(ctx context.Context, dirPath string) error {
	return curvefile.LoadCurvesFromFiles(ctx, m.curve, dirPath, m.logger)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
