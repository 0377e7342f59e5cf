package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
	"github.com/mrz1836/assetrack/internal/store"
)

const importFixture = `# delivery list
web/img/hero.png

/web//img/hero.png
web/css/site.css
readme.txt
`

func TestRunImport(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	_, err := ec.Store.CreateProject(context.Background(), testProject, testIdentity)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runImport(context.Background(), ec, &buf, testProject, strings.NewReader(importFixture)))

	out := plain(buf.String())
	assert.Contains(t, out, "Imported 3 items into website")
	assert.Contains(t, out, "Skipped 3 blank, comment or duplicate lines")

	items, err := ec.Store.ListItems(context.Background(), testProject)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, constants.ItemStatusPending, it.Status)
	}
}

func TestRunImport_SecondRunSkipsExisting(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runImport(context.Background(), ec, &buf, testProject, strings.NewReader("readme.txt\nweb/img/new.png\n")))

	out := plain(buf.String())
	assert.Contains(t, out, "Imported 1 item into website")
	assert.Contains(t, out, "Skipped 1 blank, comment or duplicate line")
}

func TestRunImport_JSON(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputJSON)
	_, err := ec.Store.CreateProject(context.Background(), testProject, testIdentity)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runImport(context.Background(), ec, &buf, testProject, strings.NewReader(importFixture)))

	var result store.ImportResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Len(t, result.Imported, 3)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, "web/img/hero.png", result.Imported[0].Path)
}

func TestRunImport_UnknownProject(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)

	var buf bytes.Buffer
	err := runImport(context.Background(), ec, &buf, "missing", strings.NewReader("a.png\n"))
	require.ErrorIs(t, err, atlaserrors.ErrProjectNotFound)
}

func TestReadLines_TooLong(t *testing.T) {
	t.Parallel()

	_, err := readLines(strings.NewReader(strings.Repeat("a", maxImportLineBytes+1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read paths")
}

func TestImportCommand_FromFileAndStdin(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	_, err := ec.Store.CreateProject(context.Background(), testProject, testIdentity)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "assets.txt")
	require.NoError(t, os.WriteFile(file, []byte("web/a.png\nweb/b.png\n"), 0o600))

	run := func(args []string, stdin string) error {
		root := &cobra.Command{Use: "assetrack"}
		AddImportCommand(root)
		root.SetArgs(args)
		root.SetIn(strings.NewReader(stdin))
		root.SetOut(&bytes.Buffer{})
		return root.ExecuteContext(WithExecutionContext(context.Background(), ec))
	}

	require.NoError(t, run([]string{"import", testProject, file}, ""))
	require.NoError(t, run([]string{"import", testProject, "-"}, "web/c.png\n"))
	require.Error(t, run([]string{"import", testProject, filepath.Join(t.TempDir(), "missing.txt")}, ""))

	items, err := ec.Store.ListItems(context.Background(), testProject)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
