package curves

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

// mockCurveStorage implements interfaces.CurveStorage for testing
type mockCurveStorage struct {
	mock.Mock
}

func (m *mockCurveStorage) SaveCurve(ctx context.Context, curve *models.ProjectionCurve) error {
	args := m.Called(ctx, curve)
	return args.Error(0)
}

func (m *mockCurveStorage) GetCurve(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	args := m.Called(ctx, locality, propertyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectionCurve), args.Error(1)
}

func (m *mockCurveStorage) ListCurves(ctx context.Context) ([]models.ProjectionCurve, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectionCurve), args.Error(1)
}

func (m *mockCurveStorage) DeleteCurve(ctx context.Context, locality, propertyType string) error {
	args := m.Called(ctx, locality, propertyType)
	return args.Error(0)
}

func marinaCurve() models.ProjectionCurve {
	return models.ProjectionCurve{
		Locality:     "Dubai Marina",
		PropertyType: "Apartment",
		Basis:        models.YieldBasisDirectPercentage,
		Points: []models.ProjectionPoint{
			{AppreciationPercent: 11.69, Yield: 8.74},
			{AppreciationPercent: 26.88, Yield: 9.61},
		},
	}
}

func TestService_LookupAndFallback(t *testing.T) {
	ctx := context.Background()
	storage := &mockCurveStorage{}
	storage.On("ListCurves", mock.Anything).Return([]models.ProjectionCurve{marinaCurve()}, nil)

	svc := NewService(storage, arbor.NewNoOpLogger())

	// before the first reload every lookup falls back
	assert.True(t, IsDefault(svc.Lookup(ctx, "Dubai Marina", "Apartment")))
	assert.True(t, svc.LoadedAt().IsZero())

	require.NoError(t, svc.Reload(ctx))
	assert.False(t, svc.LoadedAt().IsZero())

	curve := svc.Lookup(ctx, "  dubai marina", "APARTMENT ")
	assert.Equal(t, "dubai marina|apartment", curve.Key)
	assert.Equal(t, 2, curve.Len())

	fallback := svc.Lookup(ctx, "Atlantis", "Palace")
	assert.True(t, IsDefault(fallback))
	assert.Equal(t, 10, fallback.Len())

	storage.AssertExpectations(t)
}

func TestService_LookupReturnsCopy(t *testing.T) {
	ctx := context.Background()
	storage := &mockCurveStorage{}
	storage.On("ListCurves", mock.Anything).Return([]models.ProjectionCurve{marinaCurve()}, nil)

	svc := NewService(storage, arbor.NewNoOpLogger())
	require.NoError(t, svc.Reload(ctx))

	first := svc.Lookup(ctx, "Dubai Marina", "Apartment")
	first.Points[0].AppreciationPercent = 999

	second := svc.Lookup(ctx, "Dubai Marina", "Apartment")
	assert.Equal(t, 11.69, second.Points[0].AppreciationPercent)

	fallback := DefaultCurve()
	fallback.Points[0].Yield = 0
	assert.Equal(t, 8.0, DefaultCurve().Points[0].Yield)
}

func TestService_ReloadFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := &mockCurveStorage{}
	storage.On("ListCurves", mock.Anything).Return([]models.ProjectionCurve{marinaCurve()}, nil).Once()
	storage.On("ListCurves", mock.Anything).Return(nil, errors.New("disk gone")).Once()

	svc := NewService(storage, arbor.NewNoOpLogger())
	require.NoError(t, svc.Reload(ctx))
	assert.Error(t, svc.Reload(ctx))

	assert.False(t, IsDefault(svc.Lookup(ctx, "Dubai Marina", "Apartment")))
	assert.Equal(t, uint64(1), svc.Generation())
}

func TestService_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	storage := &mockCurveStorage{}
	curve := marinaCurve()

	storage.On("SaveCurve", mock.Anything, mock.MatchedBy(func(c *models.ProjectionCurve) bool {
		return c.Key == "dubai marina|apartment" && !c.UpdatedAt.IsZero()
	})).Return(nil).Once()
	storage.On("ListCurves", mock.Anything).Return([]models.ProjectionCurve{curve}, nil).Once()
	storage.On("DeleteCurve", mock.Anything, "Dubai Marina", "Apartment").Return(nil).Once()
	storage.On("ListCurves", mock.Anything).Return([]models.ProjectionCurve{}, nil).Once()

	svc := NewService(storage, arbor.NewNoOpLogger())
	assert.Zero(t, svc.Generation())

	require.NoError(t, svc.Save(ctx, &curve))
	got, err := svc.Get(ctx, "Dubai Marina", "Apartment")
	require.NoError(t, err)
	assert.Equal(t, curve.Points, got.Points)
	assert.Len(t, svc.List(ctx), 1)
	afterSave := svc.Generation()
	assert.Equal(t, uint64(1), afterSave)

	require.NoError(t, svc.Delete(ctx, "Dubai Marina", "Apartment"))
	_, err = svc.Get(ctx, "Dubai Marina", "Apartment")
	assert.ErrorIs(t, err, interfaces.ErrCurveNotFound)
	assert.Greater(t, svc.Generation(), afterSave)

	storage.AssertExpectations(t)
}

func TestService_SaveRejectsInvalidCurve(t *testing.T) {
	storage := &mockCurveStorage{}
	svc := NewService(storage, arbor.NewNoOpLogger())

	invalid := marinaCurve()
	invalid.Points = nil

	assert.Error(t, svc.Save(context.Background(), &invalid))
	storage.AssertNotCalled(t, "SaveCurve", mock.Anything, mock.Anything)
}

func TestService_StartReloadSchedule(t *testing.T) {
	svc := NewService(&mockCurveStorage{}, arbor.NewNoOpLogger())

	require.NoError(t, svc.StartReloadSchedule(""))
	assert.Error(t, svc.StartReloadSchedule("not a schedule"))

	require.NoError(t, svc.StartReloadSchedule("@every 1h"))
	assert.Error(t, svc.StartReloadSchedule("@every 1h"), "second start should be rejected")
	svc.Stop()
	svc.Stop()
}
