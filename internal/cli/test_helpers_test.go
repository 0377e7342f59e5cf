package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/assetrack/internal/config"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/store"
)

// This file contains test utilities shared by the command tests.
// These helpers are only available in test files (*_test.go).

const (
	testIdentity = "dana@studio.example"
	testProject  = "website"
)

// testPaths is the default item set seeded by seedProject.
//
//nolint:gochecknoglobals // shared fixture
var testPaths = []string{
	"readme.txt",
	"web/img/hero.png",
	"web/img/logo.svg",
	"web/css/site.css",
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`) //nolint:gochecknoglobals // test helper

// plain strips ANSI styling so assertions hold with or without a color profile.
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// newTestContext returns an ExecutionContext backed by a store in a
// temporary directory.
func newTestContext(t *testing.T, format string) *ExecutionContext {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Identity.Email = testIdentity
	cfg.View.Width = 100
	cfg.Storage.LockTimeout = 500 * time.Millisecond
	cfg.Storage.DataDir = t.TempDir()

	s, err := store.NewFileStore(cfg.Storage.DataDir, store.WithLockTimeout(cfg.Storage.LockTimeout))
	require.NoError(t, err)

	return &ExecutionContext{
		Config:       cfg,
		DataDir:      cfg.Storage.DataDir,
		Store:        s,
		OutputFormat: format,
		Logger:       zerolog.Nop(),
	}
}

// seedProject creates testProject holding paths, or testPaths when none are given.
func seedProject(t *testing.T, ec *ExecutionContext, paths ...string) []*domain.Item {
	t.Helper()
	if len(paths) == 0 {
		paths = testPaths
	}

	ctx := context.Background()
	_, err := ec.Store.CreateProject(ctx, testProject, "lead@studio.example")
	require.NoError(t, err)
	res, err := ec.Store.ImportPaths(ctx, testProject, "lead@studio.example", paths)
	require.NoError(t, err)
	return res.Imported
}

// itemAt fetches the current state of the item at path.
func itemAt(t *testing.T, ec *ExecutionContext, path string) *domain.Item {
	t.Helper()
	it, err := ec.Store.GetItem(context.Background(), testProject, path)
	require.NoError(t, err)
	return it
}

// setStatus moves the item at path forward with the status command.
func setStatus(t *testing.T, ec *ExecutionContext, path, status string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, runStatus(context.Background(), ec, &buf, statusRequest{
		project: testProject,
		ref:     path,
		status:  status,
	}, nil))
}

// outputLines splits output into trimmed, unstyled lines.
func outputLines(s string) []string {
	lines := strings.Split(strings.TrimRight(plain(s), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
