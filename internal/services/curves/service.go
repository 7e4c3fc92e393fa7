package curves

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

type snapshot map[string]models.ProjectionCurve

// Service is the curve provider. Lookups read an immutable snapshot of the stored
// curves; writes go through storage and then rebuild the snapshot.
type Service struct {
	storage  interfaces.CurveStorage
	current  atomic.Pointer[snapshot]
	cron     *cron.Cron
	loadedAt atomic.Pointer[time.Time]
	gen      atomic.Uint64
	logger   arbor.ILogger
}

// NewService creates a curve provider with an empty snapshot. Call Reload to populate it.
func NewService(storage interfaces.CurveStorage, logger arbor.ILogger) *Service {
	s := &Service{
		storage: storage,
		logger:  logger,
	}
	empty := snapshot{}
	s.current.Store(&empty)
	return s
}

// Reload rebuilds the snapshot from storage. On failure the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	curves, err := s.storage.ListCurves(ctx)
	if err != nil {
		return fmt.Errorf("failed to list curves: %w", err)
	}

	next := make(snapshot, len(curves))
	for _, curve := range curves {
		key := models.CurveKey(curve.Locality, curve.PropertyType)
		curve.Key = key
		next[key] = curve
	}
	s.current.Store(&next)
	s.gen.Add(1)

	now := time.Now()
	s.loadedAt.Store(&now)

	s.logger.Debug().Int("curves", len(next)).Msg("Curve snapshot reloaded")
	return nil
}

// Generation counts snapshot rebuilds
func (s *Service) Generation() uint64 {
	return s.gen.Load()
}

// LoadedAt returns when the snapshot was last rebuilt (zero if never)
func (s *Service) LoadedAt() time.Time {
	if t := s.loadedAt.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// Lookup resolves a curve, falling back to the default curve when the pair is unknown.
// The returned curve is a copy.
func (s *Service) Lookup(ctx context.Context, locality, propertyType string) models.ProjectionCurve {
	key := models.CurveKey(locality, propertyType)
	if curve, ok := (*s.current.Load())[key]; ok {
		return cloneCurve(curve)
	}

	s.logger.Warn().
		Str("locality", locality).
		Str("property_type", propertyType).
		Msg("Curve not found, using default curve")
	return DefaultCurve()
}

// Get returns a stored curve or interfaces.ErrCurveNotFound
func (s *Service) Get(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	curve, ok := (*s.current.Load())[models.CurveKey(locality, propertyType)]
	if !ok {
		return nil, interfaces.ErrCurveNotFound
	}
	clone := cloneCurve(curve)
	return &clone, nil
}

// List returns the snapshot's curves ordered by key
func (s *Service) List(ctx context.Context) []models.ProjectionCurve {
	current := *s.current.Load()
	curves := make([]models.ProjectionCurve, 0, len(current))
	for _, curve := range current {
		curves = append(curves, cloneCurve(curve))
	}
	sort.Slice(curves, func(i, j int) bool {
		return curves[i].Key < curves[j].Key
	})
	return curves
}

// Save validates and stores a curve, then reloads the snapshot
func (s *Service) Save(ctx context.Context, curve *models.ProjectionCurve) error {
	if err := curve.Validate(); err != nil {
		return err
	}
	curve.Key = models.CurveKey(curve.Locality, curve.PropertyType)
	curve.UpdatedAt = time.Now()

	if err := s.storage.SaveCurve(ctx, curve); err != nil {
		return fmt.Errorf("failed to save curve %s: %w", curve.Key, err)
	}

	s.logger.Info().Str("curve", curve.Key).Int("points", curve.Len()).Msg("Curve saved")
	return s.Reload(ctx)
}

// Delete removes a curve, then reloads the snapshot
func (s *Service) Delete(ctx context.Context, locality, propertyType string) error {
	if err := s.storage.DeleteCurve(ctx, locality, propertyType); err != nil {
		return err
	}

	s.logger.Info().Str("curve", models.CurveKey(locality, propertyType)).Msg("Curve deleted")
	return s.Reload(ctx)
}

// StartReloadSchedule reloads the snapshot on a cron schedule. An empty spec is a no-op.
func (s *Service) StartReloadSchedule(spec string) error {
	if spec == "" {
		return nil
	}
	if s.cron != nil {
		return fmt.Errorf("reload schedule already started")
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Reload(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Scheduled curve reload failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.logger.Info().Str("schedule", spec).Msg("Curve reload schedule started")
	return nil
}

// Stop halts the reload schedule and waits for a running reload to finish
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.logger.Debug().Msg("Curve reload schedule stopped")
}

func cloneCurve(curve models.ProjectionCurve) models.ProjectionCurve {
	points := make([]models.ProjectionPoint, len(curve.Points))
	copy(points, curve.Points)
	curve.Points = points
	if curve.Premium != nil {
		premium := *curve.Premium
		curve.Premium = &premium
	}
	return curve
}
