package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

const curveColumns = `curve_key, locality, property_type, basis, premium, points, updated_at`

// CurveStorage implements the CurveStorage interface for PostgreSQL.
// Points and premium are stored as JSONB.
type CurveStorage struct {
	db     *DB
	logger arbor.ILogger
}

// NewCurveStorage creates a new CurveStorage instance
func NewCurveStorage(db *DB, logger arbor.ILogger) interfaces.CurveStorage {
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
	if curve.UpdatedAt.IsZero() {
		curve.UpdatedAt = time.Now()
	}

	points, err := json.Marshal(curve.Points)
	if err != nil {
		return fmt.Errorf("failed to marshal curve points: %w", err)
	}
	var premium []byte
	if curve.Premium != nil {
		if premium, err = json.Marshal(curve.Premium); err != nil {
			return fmt.Errorf("failed to marshal curve premium: %w", err)
		}
	}

	query := `
		INSERT INTO projection_curves (` + curveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (curve_key) DO UPDATE SET
			locality = EXCLUDED.locality,
			property_type = EXCLUDED.property_type,
			basis = EXCLUDED.basis,
			premium = EXCLUDED.premium,
			points = EXCLUDED.points,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.Pool().Exec(ctx, query,
		curve.Key, curve.Locality, curve.PropertyType, string(curve.Basis), premium, points, curve.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save curve %s: %w", curve.Key, err)
	}

	s.logger.Debug().Str("curve", curve.Key).Int("points", curve.Len()).Msg("Curve stored")
	return nil
}

// GetCurve retrieves a curve by locality and property type (case-insensitive)
func (s *CurveStorage) GetCurve(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	key := models.CurveKey(locality, propertyType)
	row := s.db.Pool().QueryRow(ctx, `SELECT `+curveColumns+` FROM projection_curves WHERE curve_key = $1`, key)

	curve, err := scanCurve(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, interfaces.ErrCurveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get curve %s: %w", key, err)
	}
	return curve, nil
}

// ListCurves returns all curves ordered by key
func (s *CurveStorage) ListCurves(ctx context.Context) ([]models.ProjectionCurve, error) {
	rows, err := s.db.Pool().Query(ctx, `SELECT `+curveColumns+` FROM projection_curves ORDER BY curve_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list curves: %w", err)
	}
	defer rows.Close()

	var curves []models.ProjectionCurve
	for rows.Next() {
		curve, err := scanCurve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan curve: %w", err)
		}
		curves = append(curves, *curve)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list curves: %w", err)
	}
	return curves, nil
}

// DeleteCurve removes a curve (case-insensitive)
func (s *CurveStorage) DeleteCurve(ctx context.Context, locality, propertyType string) error {
	key := models.CurveKey(locality, propertyType)
	tag, err := s.db.Pool().Exec(ctx, `DELETE FROM projection_curves WHERE curve_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete curve %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return interfaces.ErrCurveNotFound
	}
	return nil
}

func scanCurve(row pgx.Row) (*models.ProjectionCurve, error) {
	var (
		curve   models.ProjectionCurve
		basis   string
		premium []byte
		points  []byte
	)
	if err := row.Scan(&curve.Key, &curve.Locality, &curve.PropertyType, &basis, &premium, &points, &curve.UpdatedAt); err != nil {
		return nil, err
	}
	curve.Basis = models.YieldBasis(basis)

	if err := json.Unmarshal(points, &curve.Points); err != nil {
		return nil, fmt.Errorf("failed to unmarshal points of %s: %w", curve.Key, err)
	}
	if len(premium) > 0 {
		curve.Premium = &models.ShortTermPremium{}
		if err := json.Unmarshal(premium, curve.Premium); err != nil {
			return nil, fmt.Errorf("failed to unmarshal premium of %s: %w", curve.Key, err)
		}
	}
	return &curve, nil
}
