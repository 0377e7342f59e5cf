package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/domain"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

func TestRunProjectCreate(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)

	var buf bytes.Buffer
	require.NoError(t, runProjectCreate(context.Background(), ec, &buf, "website"))

	out := plain(buf.String())
	assert.Contains(t, out, "Created project website")
	assert.Contains(t, out, "assetrack import website <file>")

	p, err := ec.Store.GetProject(context.Background(), "website")
	require.NoError(t, err)
	assert.Equal(t, testIdentity, p.CreatedBy)
}

func TestRunProjectCreate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		wantIs error
	}{
		{name: "duplicate", input: testProject, wantIs: atlaserrors.ErrProjectExists},
		{name: "uppercase", input: "Website", wantIs: atlaserrors.ErrInvalidProjectName},
		{name: "path traversal", input: "../escape", wantIs: atlaserrors.ErrInvalidProjectName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ec := newTestContext(t, OutputText)
			seedProject(t, ec)

			var buf bytes.Buffer
			err := runProjectCreate(context.Background(), ec, &buf, tc.input)
			require.ErrorIs(t, err, tc.wantIs)
		})
	}
}

func TestRunProjectCreate_JSON(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputJSON)

	var buf bytes.Buffer
	require.NoError(t, runProjectCreate(context.Background(), ec, &buf, "game-assets"))

	var p domain.Project
	require.NoError(t, json.Unmarshal(buf.Bytes(), &p))
	assert.Equal(t, "game-assets", p.Name)
	assert.NotEmpty(t, p.ID)
}

func TestRunProjectList(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)
	seedProject(t, ec)
	setStatus(t, ec, "readme.txt", "implemented")

	var buf bytes.Buffer
	require.NoError(t, runProjectList(context.Background(), ec, &buf))

	out := plain(buf.String())
	assert.Contains(t, out, "PROJECT")
	assert.Contains(t, out, testProject)
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "lead@studio.example")
}

func TestRunProjectList_Empty(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputText)

	var buf bytes.Buffer
	require.NoError(t, runProjectList(context.Background(), ec, &buf))
	assert.Contains(t, plain(buf.String()), "No projects.")
}

func TestRunProjectList_JSON(t *testing.T) {
	t.Parallel()

	ec := newTestContext(t, OutputJSON)
	seedProject(t, ec)

	var buf bytes.Buffer
	require.NoError(t, runProjectList(context.Background(), ec, &buf))

	var summaries []projectSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, testProject, summaries[0].Name)
	assert.Equal(t, 4, summaries[0].Items)
	assert.Zero(t, summaries[0].Implemented)
}
