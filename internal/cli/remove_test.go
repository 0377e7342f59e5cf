package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

func TestRunRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		confirm     RemoveConfirmer
		wantDeleted bool
		wantOutput  string
		wantErr     error
	}{
		{
			name:        "forced",
			confirm:     nil,
			wantDeleted: true,
			wantOutput:  "Deleted web/css/site.css",
		},
		{
			name:        "confirmed",
			confirm:     func(string, bool) (bool, error) { return true, nil },
			wantDeleted: true,
			wantOutput:  "Deleted web/css/site.css",
		},
		{
			name:        "declined",
			confirm:     func(string, bool) (bool, error) { return false, nil },
			wantDeleted: false,
			wantOutput:  "Kept web/css/site.css",
		},
		{
			name:        "prompt canceled",
			confirm:     func(string, bool) (bool, error) { return false, atlaserrors.ErrMenuCanceled },
			wantDeleted: false,
			wantErr:     atlaserrors.ErrMenuCanceled,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ec := newTestContext(t, OutputText)
			seedProject(t, ec)

			var buf bytes.Buffer
			err := runRemove(context.Background(), ec, &buf, testProject, "web/css/site.css", tc.confirm)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, plain(buf.String()), tc.wantOutput)
			}

			_, getErr := ec.Store.GetItem(context.Background(), testProject, "web/css/site.css")
			if tc.wantDeleted {
				require.ErrorIs(t, getErr, atlaserrors.ErrItemNotFound)
			} else {
				require.NoError(t, getErr)
			}
		})
	}
}

func TestRunRemove_AsksWithPath(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	var message string
	var defaultYes bool
	confirm := func(msg string, def bool) (bool, error) {
		message, defaultYes = msg, def
		return false, nil
	}

	var buf bytes.Buffer
	require.NoError(t, runRemove(context.Background(), ec, &buf, testProject, "readme.txt", confirm))
	assert.Equal(t, "Delete readme.txt?", message)
	assert.False(t, defaultYes)
}

func TestRunRemove_KeepsHistory(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	setStatus(t, ec, "web/img/hero.png", "received")

	var buf bytes.Buffer
	require.NoError(t, runRemove(context.Background(), ec, &buf, testProject, "web/img/hero.png", nil))

	history, err := ec.Store.History(context.Background(), testProject, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "web/img/hero.png", history[0].ItemPath)
}

func TestRunRemove_UnknownItem(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)

	called := false
	confirm := func(string, bool) (bool, error) {
		called = true
		return true, nil
	}

	var buf bytes.Buffer
	err := runRemove(context.Background(), ec, &buf, testProject, "nope.txt", confirm)
	require.ErrorIs(t, err, atlaserrors.ErrItemNotFound)
	assert.False(t, called, "nothing to confirm for a missing item")
}
