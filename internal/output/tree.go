package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where file descriptions start.
	descriptionColumn = 30
)

// FileState records what happened to a generated file after generation.
type FileState int

const (
	// FileKept is a file still present in the project.
	FileKept FileState = iota

	// FileRemoved is a file reconciliation deleted.
	FileRemoved

	// FileMoved is a file reconciliation relocated out of the project.
	FileMoved
)

// FileEntry is one generated file in a tree listing.
type FileEntry struct {
	Description string
	State       FileState

	// Note explains a removed or moved file, e.g. "moved to /repo".
	Note string
}

type fileNode struct {
	name     string
	entry    *FileEntry
	children []*fileNode
}

func (n *fileNode) isDir() bool {
	return n.entry == nil
}

// gone reports whether nothing under n is left in the project.
func (n *fileNode) gone() bool {
	if !n.isDir() {
		return n.entry.State != FileKept
	}
	for _, c := range n.children {
		if !c.gone() {
			return false
		}
	}
	return len(n.children) > 0
}

// RenderFileTree renders generated files as a tree rooted at rootName.
// Kept files show their description; removed and moved files are dimmed and
// annotated with their note. Directories sort before files.
func RenderFileTree(rootName string, files map[string]FileEntry) string {
	if len(files) == 0 {
		return ""
	}

	root := &fileNode{name: rootName}
	dirs := map[string]*fileNode{".": root}

	var dirFor func(dir string) *fileNode
	dirFor = func(dir string) *fileNode {
		if n, ok := dirs[dir]; ok {
			return n
		}
		parent := dirFor(path.Dir(dir))
		n := &fileNode{name: path.Base(dir)}
		parent.children = append(parent.children, n)
		dirs[dir] = n
		return n
	}

	for p, entry := range files {
		p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
		e := entry
		parent := dirFor(path.Dir(p))
		parent.children = append(parent.children, &fileNode{name: path.Base(p), entry: &e})
	}

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(rootName + "/"))
	sb.WriteString("\n")
	writeChildren(&sb, root, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, dir *fileNode, prefix string) {
	sort.Slice(dir.children, func(i, j int) bool {
		a, b := dir.children[i], dir.children[j]
		if a.isDir() != b.isDir() {
			return a.isDir()
		}
		return a.name < b.name
	})

	for i, n := range dir.children {
		last := i == len(dir.children)-1
		connector, childPrefix := treeEdge, prefix+treeVert
		if last {
			connector, childPrefix = treeLast, prefix+treeSpace
		}

		sb.WriteString(prefix + connector)
		sb.WriteString(fileLine(n, len([]rune(prefix+connector))))
		sb.WriteString("\n")

		if n.isDir() {
			writeChildren(sb, n, childPrefix)
		}
	}
}

// fileLine renders a node's name and annotation; indent is the visible width
// of the tree prefix before the name.
func fileLine(n *fileNode, indent int) string {
	name := n.name
	if n.isDir() {
		name += "/"
	}

	var annotation string
	switch {
	case n.isDir():
		if n.gone() {
			return StyleDim.Render(name)
		}
		return name
	case n.entry.State == FileKept:
		if n.entry.Description == "" {
			return name
		}
		annotation = StyleMuted.Render(n.entry.Description)
	default:
		note := n.entry.Note
		if note == "" {
			note = "removed"
			if n.entry.State == FileMoved {
				note = "moved"
			}
		}
		annotation = StatusStyle(StatusSkipped).Render("(" + note + ")")
		name = StyleDim.Render(name)
	}

	padding := descriptionColumn - indent - len([]rune(n.name))
	if padding < 2 {
		padding = 2
	}
	return name + strings.Repeat(" ", padding) + annotation
}
