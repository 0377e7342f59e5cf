package tui

import (
	"regexp"
	"strings"

	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/domain"
	"github.com/mrz1836/assetrack/internal/hierarchy"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// plain strips ANSI styling so assertions hold with or without a color profile.
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// plainLines splits s into lines with styling removed.
func plainLines(s string) []string {
	lines := strings.Split(strings.TrimRight(plain(s), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func testItem(path string, status constants.ItemStatus) *domain.Item {
	return &domain.Item{
		ID:         "item-" + path,
		ProjectID:  "proj-1",
		Name:       hierarchy.BaseName(path),
		Path:       path,
		ParentPath: hierarchy.ParentOf(path),
		Status:     status,
	}
}
