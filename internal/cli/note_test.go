package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

func TestRunNote(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runNote(context.Background(), ec, &buf, testProject, "web/img/logo.svg", "  waiting on the retina export "))
	assert.Contains(t, plain(buf.String()), "web/img/logo.svg: note updated")
	assert.Equal(t, "waiting on the retina export", itemAt(t, ec, "web/img/logo.svg").Note)

	buf.Reset()
	require.NoError(t, runNote(context.Background(), ec, &buf, testProject, "web/img/logo.svg", ""))
	assert.Contains(t, plain(buf.String()), "web/img/logo.svg: note cleared")
	assert.Empty(t, itemAt(t, ec, "web/img/logo.svg").Note)
}

func TestNoteCommand_JoinsArguments(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	root := &cobra.Command{Use: "assetrack"}
	AddNoteCommand(root)
	root.SetArgs([]string{"note", testProject, "readme.txt", "check", "the", "license"})
	root.SetOut(&bytes.Buffer{})

	require.NoError(t, root.ExecuteContext(WithExecutionContext(context.Background(), ec)))
	assert.Equal(t, "check the license", itemAt(t, ec, "readme.txt").Note)
}

func TestRunNote_KeepsStatus(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	setStatus(t, ec, "readme.txt", "received")

	var buf bytes.Buffer
	require.NoError(t, runNote(context.Background(), ec, &buf, testProject, "readme.txt", "final copy from legal"))

	it := itemAt(t, ec, "readme.txt")
	assert.Equal(t, "received", string(it.Status))
	assert.Zero(t, it.RevisionCount)
}

func TestRunNote_WarnsWhenReplacingReworkReason(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	setStatus(t, ec, "readme.txt", "implemented")

	var buf bytes.Buffer
	require.NoError(t, runStatus(context.Background(), ec, &buf, statusRequest{
		project: testProject,
		ref:     "readme.txt",
		status:  "pending",
		reason:  "legal asked for a new clause",
	}, nil))

	buf.Reset()
	require.NoError(t, runNote(context.Background(), ec, &buf, testProject, "readme.txt", "waiting on legal"))

	out := plain(buf.String())
	assert.Contains(t, out, `⚠ Replacing the rework reason "legal asked for a new clause"`)
	assert.Contains(t, out, "readme.txt: note updated")
	assert.Equal(t, "waiting on legal", itemAt(t, ec, "readme.txt").Note)

	buf.Reset()
	require.NoError(t, runNote(context.Background(), ec, &buf, testProject, "readme.txt", "waiting on legal"))
	assert.NotContains(t, plain(buf.String()), "Replacing", "same text replaces nothing")
}

func TestRunNoteEditor(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	require.NoError(t, runNote(context.Background(), ec, &bytes.Buffer{}, testProject, "readme.txt", "first draft"))

	var gotPrompt, gotInitial string
	edit := func(prompt, initial string) (string, error) {
		gotPrompt, gotInitial = prompt, initial
		return initial + "\nsecond pass done\n", nil
	}

	var buf bytes.Buffer
	require.NoError(t, runNoteEditor(context.Background(), ec, &buf, testProject, "readme.txt", edit))

	assert.Equal(t, "Note for readme.txt", gotPrompt)
	assert.Equal(t, "first draft", gotInitial)
	assert.Equal(t, "first draft\nsecond pass done", itemAt(t, ec, "readme.txt").Note)
	assert.Contains(t, plain(buf.String()), "readme.txt: note updated")
}

func TestRunNoteEditor_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		edit      NoteEditor
		wantErr   error
		wantExit2 bool
	}{
		{
			name:      "no editor",
			wantErr:   atlaserrors.ErrInvalidArgument,
			wantExit2: true,
		},
		{
			name:      "editor canceled",
			edit:      func(string, string) (string, error) { return "", atlaserrors.ErrMenuCanceled },
			wantErr:   atlaserrors.ErrMenuCanceled,
			wantExit2: true,
		},
		{
			name:    "editor failed",
			edit:    func(string, string) (string, error) { return "", context.DeadlineExceeded },
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ec := newTestContext(t, OutputText)
			seedProject(t, ec)
			require.NoError(t, runNote(context.Background(), ec, &bytes.Buffer{}, testProject, "readme.txt", "keep me"))

			var buf bytes.Buffer
			err := runNoteEditor(context.Background(), ec, &buf, testProject, "readme.txt", tc.edit)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantExit2, atlaserrors.IsExitCode2Error(err))
			assert.Equal(t, "keep me", itemAt(t, ec, "readme.txt").Note)
		})
	}
}
