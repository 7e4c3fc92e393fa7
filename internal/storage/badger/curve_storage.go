package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CurveStorage implements the CurveStorage interface for Badger
type CurveStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCurveStorage creates a new CurveStorage instance
func NewCurveStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CurveStorage {
	return &CurveStorage{
		db:     db,
		logger: logger,
	}
}

// SaveCurve inserts or replaces a curve under its normalized key
func (s *CurveStorage) SaveCurve(ctx context.Context, curve *models.ProjectionCurve) error {
	if curve == nil {
		return fmt.Errorf("curve is nil")
	}
	curve.Key = models.CurveKey(curve.Locality, curve.PropertyType)

	if err := s.db.Store().Upsert(curve.Key, curve); err != nil {
		return fmt.Errorf("failed to save curve %s: %w", curve.Key, err)
	}

	s.logger.Debug().Str("curve", curve.Key).Int("points", curve.Len()).Msg("Curve stored")
	return nil
}

// GetCurve retrieves a curve by locality and property type (case-insensitive)
func (s *CurveStorage) GetCurve(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	key := models.CurveKey(locality, propertyType)

	var curve models.ProjectionCurve
	err := s.db.Store().Get(key, &curve)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, interfaces.ErrCurveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get curve %s: %w", key, err)
	}

	return &curve, nil
}

// ListCurves returns all curves ordered by key
func (s *CurveStorage) ListCurves(ctx context.Context) ([]models.ProjectionCurve, error) {
	var curves []models.ProjectionCurve
	err := s.db.Store().Find(&curves, badgerhold.Where("Key").Ne("").SortBy("Key"))
	if err != nil {
		return nil, fmt.Errorf("failed to list curves: %w", err)
	}
	return curves, nil
}

// DeleteCurve removes a curve (case-insensitive)
func (s *CurveStorage) DeleteCurve(ctx context.Context, locality, propertyType string) error {
	key := models.CurveKey(locality, propertyType)

	err := s.db.Store().Delete(key, &models.ProjectionCurve{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return interfaces.ErrCurveNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete curve %s: %w", key, err)
	}
	return nil
}
