// Package render turns a hierarchy tree into nested view commands: collapsible
// folder headers and item rows. Folder expand/collapse state is keyed by folder
// path so it survives tree rebuilds.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/hierarchy, std lib
//   - MUST NOT import: internal/store, internal/cli, internal/tui
package render

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/assetrack/internal/constants"
)

// CollapseState tracks which folder paths are collapsed. Folders default to
// expanded, so only collapsed paths are stored. The zero value is ready to use.
type CollapseState struct {
	collapsed map[string]struct{}
}

// NewCollapseState returns a state with the given paths collapsed.
func NewCollapseState(collapsed ...string) *CollapseState {
	s := &CollapseState{collapsed: make(map[string]struct{}, len(collapsed))}
	for _, p := range collapsed {
		s.collapsed[p] = struct{}{}
	}
	return s
}

// IsExpanded reports whether the folder at path is expanded.
func (s *CollapseState) IsExpanded(path string) bool {
	if s == nil {
		return true
	}
	_, collapsed := s.collapsed[path]
	return !collapsed
}

// SetExpanded sets the folder state and reports whether it changed.
func (s *CollapseState) SetExpanded(path string, expanded bool) bool {
	if s.IsExpanded(path) == expanded {
		return false
	}
	if expanded {
		delete(s.collapsed, path)
		return true
	}
	if s.collapsed == nil {
		s.collapsed = make(map[string]struct{})
	}
	s.collapsed[path] = struct{}{}
	return true
}

// Toggle flips the folder state and returns the new expanded value.
func (s *CollapseState) Toggle(path string) bool {
	expanded := !s.IsExpanded(path)
	s.SetExpanded(path, expanded)
	return expanded
}

// Collapsed returns the collapsed paths in sorted order.
func (s *CollapseState) Collapsed() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.collapsed))
	for p := range s.collapsed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Reset expands every folder.
func (s *CollapseState) Reset() {
	s.collapsed = make(map[string]struct{})
}

// viewStateDoc is the on-disk form of a CollapseState.
type viewStateDoc struct {
	Version   int      `yaml:"version"`
	Collapsed []string `yaml:"collapsed"`
}

// MarshalYAML implements yaml.Marshaler.
func (s *CollapseState) MarshalYAML() (any, error) {
	return viewStateDoc{Version: constants.ViewStateVersion, Collapsed: s.Collapsed()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Documents from a newer version
// are still read; their collapsed list is the only field consulted.
func (s *CollapseState) UnmarshalYAML(node *yaml.Node) error {
	var doc viewStateDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*s = *NewCollapseState(doc.Collapsed...)
	return nil
}
