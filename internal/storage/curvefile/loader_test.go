package curvefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

const tomlDataset = `
[[curve]]
locality = "Dubai Marina"
property_type = "Apartment"
basis = "direct_percentage"
points = [
  { appreciation_percent = 11.69, yield = 8.74 },
  { appreciation_percent = 26.88, yield = 9.61 },
]

[[curve]]
locality = "Downtown"
property_type = "Villa"
basis = "per_area"
premium = { mode = "multiplicative", value = 1.5 }
points = [
  { appreciation_percent = 5.0, yield = 20.0 },
]

[[curve]]
locality = "Broken"
property_type = "Curve"
basis = "weekly"
points = [
  { appreciation_percent = 5.0, yield = 20.0 },
]
`

const yamlDataset = `
curves:
  - locality: JVC
    property_type: Townhouse
    basis: direct_percentage
    points:
      - appreciation_percent: 6.5
        yield: 7.1
      - appreciation_percent: 13.2
        yield: 7.4
`

// memoryCurveStorage implements interfaces.CurveStorage for testing
type memoryCurveStorage struct {
	curves map[string]models.ProjectionCurve
}

func newMemoryCurveStorage() *memoryCurveStorage {
	return &memoryCurveStorage{curves: make(map[string]models.ProjectionCurve)}
}

func (m *memoryCurveStorage) SaveCurve(ctx context.Context, curve *models.ProjectionCurve) error {
	m.curves[models.CurveKey(curve.Locality, curve.PropertyType)] = *curve
	return nil
}

func (m *memoryCurveStorage) GetCurve(ctx context.Context, locality, propertyType string) (*models.ProjectionCurve, error) {
	curve, ok := m.curves[models.CurveKey(locality, propertyType)]
	if !ok {
		return nil, interfaces.ErrCurveNotFound
	}
	return &curve, nil
}

func (m *memoryCurveStorage) ListCurves(ctx context.Context) ([]models.ProjectionCurve, error) {
	var curves []models.ProjectionCurve
	for _, c := range m.curves {
		curves = append(curves, c)
	}
	return curves, nil
}

func (m *memoryCurveStorage) DeleteCurve(ctx context.Context, locality, propertyType string) error {
	delete(m.curves, models.CurveKey(locality, propertyType))
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "curves.toml", tomlDataset)

	curves, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, curves, 3)

	assert.Equal(t, "dubai marina|apartment", curves[0].Key)
	assert.Equal(t, models.YieldBasisDirectPercentage, curves[0].Basis)
	assert.Equal(t, 26.88, curves[0].Points[1].AppreciationPercent)
	assert.Nil(t, curves[0].Premium)

	require.NotNil(t, curves[1].Premium)
	assert.Equal(t, models.ShortTermPremium{Mode: models.PremiumMultiplicative, Value: 1.5}, *curves[1].Premium)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "curves.yaml", yamlDataset)

	curves, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Equal(t, "jvc|townhouse", curves[0].Key)
	assert.Equal(t, 7.4, curves[0].Points[1].Yield)
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseFile(writeFile(t, dir, "curves.json", "{}"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = ParseFile(writeFile(t, dir, "bad.toml", "[[curve]\nlocality ="))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadCurvesFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", tomlDataset)
	writeFile(t, dir, "b.yml", yamlDataset)
	writeFile(t, dir, "c.toml", "not = [valid")
	writeFile(t, dir, "README.md", "# curves")

	storage := newMemoryCurveStorage()
	require.NoError(t, LoadCurvesFromFiles(context.Background(), storage, dir, arbor.NewNoOpLogger()))

	assert.Len(t, storage.curves, 3, "the invalid basis curve is skipped")
	_, err := storage.GetCurve(context.Background(), "jvc", "townhouse")
	assert.NoError(t, err)
	_, err = storage.GetCurve(context.Background(), "Broken", "Curve")
	assert.ErrorIs(t, err, interfaces.ErrCurveNotFound)
}

func TestLoadCurvesFromFiles_MissingDir(t *testing.T) {
	storage := newMemoryCurveStorage()
	err := LoadCurvesFromFiles(context.Background(), storage, filepath.Join(t.TempDir(), "nope"), arbor.NewNoOpLogger())
	assert.NoError(t, err)
	assert.Empty(t, storage.curves)
}
