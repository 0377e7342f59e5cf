package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
)

// isolateConfig points HOME and the working directory at empty temp dirs.
// Returns the home directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestAddConfigCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "assetrack"}
	AddConfigCommand(root)

	cmd, _, err := root.Find([]string{"config", "show"})
	require.NoError(t, err)
	assert.Equal(t, "show", cmd.Name())
	assert.Contains(t, cmd.Long, "source annotations")
}

func TestRunConfigShow_Defaults(t *testing.T) {
	isolateConfig(t)

	ec := newTestContext(t, OutputText)
	ec.Config.Identity.Email = ""

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(context.Background(), ec, &buf, nil))

	out := plain(buf.String())
	assert.Contains(t, out, "Effective assetrack configuration")
	assert.Contains(t, out, "identity:")
	assert.Contains(t, out, "email: (not set)  # default")
	assert.Contains(t, out, "default_sort: folder  # default")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, ec.DataDir)
}

func TestRunConfigShow_Sources(t *testing.T) {
	home := isolateConfig(t)
	writeFile(t, filepath.Join(home, constants.AssetrackHome, constants.GlobalConfigName),
		"identity:\n  email: dana@studio.example\nlog:\n  max_backups: 7\n")
	writeFile(t, constants.ProjectConfigName, "view:\n  default_sort: recency\n  width: 120\n")
	t.Setenv("ASSETRACK_LOG_MAX_AGE_DAYS", "3")

	ec := newTestContext(t, OutputJSON)
	ec.Config.View.DefaultSort = "recency"

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(context.Background(), ec, &buf, map[string]bool{"storage.data_dir": true}))

	var annotated AnnotatedConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &annotated))

	sources := make(map[string]ConfigSource, len(annotated.Values))
	for _, v := range annotated.Values {
		sources[v.Key] = v.Source
	}
	assert.Equal(t, SourceGlobal, sources["identity.email"])
	assert.Equal(t, SourceGlobal, sources["log.max_backups"])
	assert.Equal(t, SourceProject, sources["view.default_sort"])
	assert.Equal(t, SourceProject, sources["view.width"])
	assert.Equal(t, SourceEnv, sources["log.max_age_days"])
	assert.Equal(t, SourceFlag, sources["storage.data_dir"])
	assert.Equal(t, SourceDefault, sources["storage.lock_timeout"])
	assert.Len(t, annotated.Values, 9)
	assert.Equal(t, ec.DataDir, annotated.DataDir)
}

func TestRunConfigShow_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runConfigShow(ctx, newTestContext(t, OutputText), &buf, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestDetermineSource(t *testing.T) {
	t.Parallel()

	global := configValues{"identity.email": "a@b", "view.width": 80}
	project := configValues{"view.width": 120}

	tests := []struct {
		name    string
		key     string
		flagged map[string]bool
		want    ConfigSource
	}{
		{name: "flag wins", key: "view.width", flagged: map[string]bool{"view.width": true}, want: SourceFlag},
		{name: "project over global", key: "view.width", want: SourceProject},
		{name: "global only", key: "identity.email", want: SourceGlobal},
		{name: "nowhere", key: "view.default_sort", want: SourceDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, determineSource(tc.key, tc.flagged, global, project))
		})
	}
}

func TestDetermineSource_EnvOverridesFiles(t *testing.T) {
	t.Setenv("ASSETRACK_VIEW_SHOW_PROGRESS", "false")

	project := configValues{"view.show_progress": true}
	assert.Equal(t, SourceEnv, determineSource("view.show_progress", nil, nil, project))
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "storage:\n  lock_timeout: 5s\nview:\n  width: 90\n")

	values := loadConfigFile(path)
	assert.Equal(t, "5s", values["storage.lock_timeout"])
	assert.Equal(t, 90, values["view.width"])

	assert.Nil(t, loadConfigFile(""))
	assert.Nil(t, loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, broken, "view: [unterminated")
	assert.Nil(t, loadConfigFile(broken))
}

func TestFormatConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "empty string", value: "", want: "(not set)"},
		{name: "string", value: "recency", want: "recency"},
		{name: "duration", value: 5 * time.Second, want: "5s"},
		{name: "bool", value: true, want: "true"},
		{name: "int", value: 120, want: "120"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, formatConfigValue(tc.value))
		})
	}
}

func TestGetSourceStyle(t *testing.T) {
	t.Parallel()

	styles := newConfigShowStyles()
	assert.Equal(t, styles.sourceFlg, getSourceStyle(SourceFlag, styles))
	assert.Equal(t, styles.sourceEnv, getSourceStyle(SourceEnv, styles))
	assert.Equal(t, styles.sourcePrj, getSourceStyle(SourceProject, styles))
	assert.Equal(t, styles.sourceGbl, getSourceStyle(SourceGlobal, styles))
	assert.Equal(t, styles.sourceDef, getSourceStyle(SourceDefault, styles))
	assert.Equal(t, styles.sourceDef, getSourceStyle(ConfigSource("bogus"), styles))
}
