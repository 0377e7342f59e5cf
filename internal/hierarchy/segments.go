// Package hierarchy turns a flat list of items with slash-delimited paths into
// a folder/item tree.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, std lib
//   - MUST NOT import: internal/store, internal/cli, internal/tui
package hierarchy

import "strings"

// Separator delimits path segments.
const Separator = "/"

// Segments splits path on "/" and drops empty segments, so leading, trailing
// and repeated slashes are ignored.
func Segments(path string) []string {
	parts := strings.Split(path, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinSegments joins segments with "/".
func JoinSegments(segments []string) string {
	return strings.Join(segments, Separator)
}

// Normalize rewrites path without empty segments ("/a//b/" becomes "a/b").
func Normalize(path string) string {
	return JoinSegments(Segments(path))
}

// BaseName returns the last segment of path, or "" when there is none.
func BaseName(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// ParentOf returns the normalized folder containing path.
// Top-level paths have no parent and return nil.
func ParentOf(path string) *string {
	segs := Segments(path)
	if len(segs) < 2 {
		return nil
	}
	parent := JoinSegments(segs[:len(segs)-1])
	return &parent
}
