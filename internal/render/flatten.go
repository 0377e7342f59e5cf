package render

// Row is one visible line of a rendered tree.
type Row struct {
	*View
	// Last reports whether the row is the last child of its parent.
	Last bool
	// Guides holds, for each ancestor level, whether a vertical guide continues.
	Guides []bool
}

// Flatten lists the visible views below root in display order, parents before
// children. The root header itself is not included.
func Flatten(root *View) []Row {
	if root == nil {
		return nil
	}
	var rows []Row
	var walk func(v *View, guides []bool)
	walk = func(v *View, guides []bool) {
		for i, c := range v.Children {
			last := i == len(v.Children)-1
			rows = append(rows, Row{View: c, Last: last, Guides: append([]bool(nil), guides...)})
			if c.Kind == KindFolderHeader && c.Expanded {
				walk(c, append(guides, !last))
			}
		}
	}
	walk(root, nil)
	return rows
}

// FolderPaths returns the paths of every visible folder header below root.
// A collapsed folder is listed; folders inside it are not.
func FolderPaths(root *View) []string {
	var out []string
	for _, row := range Flatten(root) {
		if row.Kind == KindFolderHeader {
			out = append(out, row.Path)
		}
	}
	return out
}
