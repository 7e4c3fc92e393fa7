package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

func TestResolveURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := ResolveURL(&common.PostgresConfig{})
	assert.Error(t, err)

	url, err := ResolveURL(&common.PostgresConfig{URL: "postgres://a@b/c"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://a@b/c", url)

	t.Setenv("DATABASE_URL", "postgres://env@host/db")
	url, err = ResolveURL(&common.PostgresConfig{})
	require.NoError(t, err)
	assert.Equal(t, "postgres://env@host/db", url)
}

func TestNewDB_InvalidURL(t *testing.T) {
	_, err := NewDB(context.Background(), arbor.NewNoOpLogger(), &common.PostgresConfig{URL: "postgres://%zz"})
	assert.ErrorContains(t, err, "failed to parse database config")
}

// TestCurveStorage_Postgres runs against a real database when PROPCAST_TEST_DATABASE_URL is set
func TestCurveStorage_Postgres(t *testing.T) {
	url := os.Getenv("PROPCAST_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROPCAST_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	manager, err := NewManager(ctx, arbor.NewNoOpLogger(), &common.PostgresConfig{URL: url})
	require.NoError(t, err)
	defer manager.Close()

	storage := manager.CurveStorage()
	curve := &models.ProjectionCurve{
		Locality:     "Test Locality",
		PropertyType: "Test Type",
		Basis:        models.YieldBasisPerArea,
		Premium:      &models.ShortTermPremium{Mode: models.PremiumAdditive, Value: 2},
		Points:       []models.ProjectionPoint{{AppreciationPercent: 4, Yield: 18}},
	}
	require.NoError(t, storage.SaveCurve(ctx, curve))
	defer storage.DeleteCurve(ctx, "Test Locality", "Test Type")

	got, err := storage.GetCurve(ctx, "test locality", "TEST TYPE")
	require.NoError(t, err)
	assert.Equal(t, curve.Points, got.Points)
	assert.Equal(t, *curve.Premium, *got.Premium)

	require.NoError(t, storage.DeleteCurve(ctx, "Test Locality", "Test Type"))
	assert.ErrorIs(t, storage.DeleteCurve(ctx, "Test Locality", "Test Type"), interfaces.ErrCurveNotFound)
}
