package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
)

func TestNewStorageManager(t *testing.T) {
	ctx := context.Background()
	logger := arbor.NewNoOpLogger()

	config := common.NewDefaultConfig()
	config.Storage.Badger.InMemory = true

	manager, err := NewStorageManager(ctx, logger, config)
	require.NoError(t, err)
	require.NotNil(t, manager.CurveStorage())
	require.NoError(t, manager.Close())

	config.Storage.Type = "sqlite"
	_, err = NewStorageManager(ctx, logger, config)
	assert.ErrorContains(t, err, "unsupported storage type")
}
