package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/config"
	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without files or flags", func(t *testing.T) {
		isolateConfig(t)

		cfg, err := LoadConfig(context.Background(), &GlobalFlags{})
		require.NoError(t, err)
		assert.Empty(t, cfg.Identity.Email)
		assert.Equal(t, constants.SortFolder, cfg.View.DefaultSort)
		assert.True(t, cfg.View.ShowProgress)
	})

	t.Run("flags override files", func(t *testing.T) {
		isolateConfig(t)
		writeFile(t, constants.ProjectConfigName, "identity:\n  email: file@studio.example\nview:\n  default_sort: churn\n")

		dataDir := t.TempDir()
		cfg, err := LoadConfig(context.Background(), &GlobalFlags{Identity: testIdentity, DataDir: dataDir})
		require.NoError(t, err)
		assert.Equal(t, testIdentity, cfg.Identity.Email)
		assert.Equal(t, dataDir, cfg.Storage.DataDir)
		assert.Equal(t, constants.SortChurn, cfg.View.DefaultSort)
	})

	t.Run("invalid file value", func(t *testing.T) {
		isolateConfig(t)
		writeFile(t, constants.ProjectConfigName, "view:\n  default_sort: size\n")

		_, err := LoadConfig(context.Background(), &GlobalFlags{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})
}

func TestNewExecutionContext(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")

	ec, err := newExecutionContext(cfg, OutputJSON, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, cfg.Storage.DataDir, ec.DataDir)
	assert.Equal(t, cfg.Storage.DataDir, ec.Store.DataDir())
	assert.True(t, ec.JSON())

	_, err = ec.Store.CreateProject(context.Background(), testProject, ec.Actor())
	require.NoError(t, err)
	_, err = os.Stat(cfg.Storage.DataDir)
	require.NoError(t, err)
}

func TestWithExecutionContext(t *testing.T) {
	t.Parallel()

	ec := &ExecutionContext{OutputFormat: OutputText}
	ctx := WithExecutionContext(context.Background(), ec)

	assert.Same(t, ec, GetExecutionContext(ctx))
	got, err := requireExecutionContext(ctx)
	require.NoError(t, err)
	assert.Same(t, ec, got)
}

func TestGetExecutionContext_Missing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, GetExecutionContext(context.Background()))

	_, err := requireExecutionContext(context.Background())
	require.ErrorIs(t, err, atlaserrors.ErrConfigNil)
}

func TestExecutionContext_Actor(t *testing.T) {
	t.Parallel()

	ec := &ExecutionContext{Config: config.DefaultConfig()}
	assert.Empty(t, ec.Identity())
	assert.Equal(t, "unknown", ec.Actor())
	assert.False(t, ec.JSON())

	ec.Config.Identity.Email = testIdentity
	assert.Equal(t, testIdentity, ec.Actor())
}
