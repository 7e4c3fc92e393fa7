// Package curvefile reads projection curve datasets from TOML and YAML files.
//
// TOML files hold one [[curve]] table per curve; YAML files hold a top-level "curves" list.
// Both carry the same fields:
//
//	[[curve]]
//	locality = "Dubai Marina"
//	property_type = "Apartment"
//	basis = "direct_percentage"
//	points = [
//	  { appreciation_percent = 11.69, yield = 8.74 },
//	  { appreciation_percent = 26.88, yield = 9.61 },
//	]
package curvefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
	"gopkg.in/yaml.v3"
)

type dataset struct {
	Curves []models.ProjectionCurve `toml:"curve" yaml:"curves"`
}

// ParseFile reads every curve in a dataset file. The format follows the extension.
func ParseFile(path string) ([]models.ProjectionCurve, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curve file %s: %w", path, err)
	}

	var data dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(content, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &data)
	default:
		return nil, fmt.Errorf("unsupported curve file extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse curve file %s: %w", path, err)
	}

	for i := range data.Curves {
		data.Curves[i].Key = models.CurveKey(data.Curves[i].Locality, data.Curves[i].PropertyType)
	}
	return data.Curves, nil
}

// IsDatasetFile reports whether a file name has a supported dataset extension
func IsDatasetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadCurvesFromFiles stores every valid curve found in the dataset files of dirPath.
// A missing directory is not an error. Invalid curves and unreadable files are logged and skipped.
func LoadCurvesFromFiles(ctx context.Context, storage interfaces.CurveStorage, dirPath string, logger arbor.ILogger) error {
	if dirPath == "" {
		return nil
	}

	entries, err := os.ReadDir(dirPath)
	if os.IsNotExist(err) {
		logger.Debug().Str("dir", dirPath).Msg("Curves directory not found, skipping dataset load")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read curves directory %s: %w", dirPath, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && IsDatasetFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	loadedCount := 0
	skippedCount := 0
	errorCount := 0

	for _, name := range names {
		path := filepath.Join(dirPath, name)
		curves, err := ParseFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("Failed to load curve file")
			errorCount++
			continue
		}

		for i := range curves {
			curve := &curves[i]
			if err := curve.Validate(); err != nil {
				logger.Warn().Err(err).Str("file", name).Msg("Skipping invalid curve")
				skippedCount++
				continue
			}
			if err := storage.SaveCurve(ctx, curve); err != nil {
				logger.Error().Err(err).Str("file", name).Str("curve", curve.Key).Msg("Failed to store curve")
				errorCount++
				continue
			}
			loadedCount++
		}
	}

	logger.Info().
		Str("dir", dirPath).
		Int("loaded", loadedCount).
		Int("skipped", skippedCount).
		Int("errors", errorCount).
		Msg("Finished loading curves from files")

	return nil
}
