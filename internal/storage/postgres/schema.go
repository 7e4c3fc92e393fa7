package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projection_curves (
	curve_key     TEXT PRIMARY KEY,
	locality      TEXT NOT NULL,
	property_type TEXT NOT NULL,
	basis         TEXT NOT NULL,
	premium       JSONB,
	points        JSONB NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the curve table if it does not exist
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create projection_curves table: %w", err)
	}
	return nil
}
