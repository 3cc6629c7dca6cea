package output

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// treeLines splits rendered output into lines without terminal styling.
func treeLines(out string) []string {
	return strings.Split(strings.TrimRight(ansiSeq.ReplaceAllString(out, ""), "\n"), "\n")
}

func TestRenderFileTree(t *testing.T) {
	files := map[string]FileEntry{
		"package.json":      {Description: "Package manifest"},
		"src/index.ts":      {Description: "Entry point"},
		".husky/pre-commit": {},
	}

	lines := treeLines(RenderFileTree("my-app", files))
	require.Len(t, lines, 6)

	assert.Equal(t, "my-app/", lines[0])
	// Directories sort before files
	assert.Equal(t, "├── .husky/", lines[1])
	assert.Equal(t, "│   └── pre-commit", lines[2])
	assert.Equal(t, "├── src/", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "│   └── index.ts"))
	assert.True(t, strings.HasPrefix(lines[5], "└── package.json"))
}

func TestRenderFileTree_DescriptionsAligned(t *testing.T) {
	files := map[string]FileEntry{
		"package.json": {Description: "Package manifest"},
		"src/index.ts": {Description: "Entry point"},
	}

	lines := treeLines(RenderFileTree("my-app", files))

	col := func(line, desc string) int {
		return len([]rune(line[:strings.Index(line, desc)]))
	}
	assert.Equal(t, descriptionColumn, col(lines[2], "Entry point"))
	assert.Equal(t, descriptionColumn, col(lines[3], "Package manifest"))
}

func TestRenderFileTree_ReconciledFiles(t *testing.T) {
	files := map[string]FileEntry{
		"package.json":      {Description: "Package manifest"},
		".npmrc":            {Description: "Registry config", State: FileMoved, Note: "moved to /repo"},
		".husky/pre-commit": {State: FileRemoved},
	}

	out := RenderFileTree("ui", files)

	assert.Contains(t, out, "(moved to /repo)")
	assert.NotContains(t, out, "Registry config")
	assert.Contains(t, out, "(removed)")
	assert.Contains(t, out, "Package manifest")
}

func TestRenderFileTree_DefaultNotes(t *testing.T) {
	out := RenderFileTree("app", map[string]FileEntry{
		"a.txt": {State: FileMoved},
		"b.txt": {State: FileRemoved},
	})

	assert.Contains(t, out, "(moved)")
	assert.Contains(t, out, "(removed)")
}

func TestRenderFileTree_AbsoluteAndBackslashPaths(t *testing.T) {
	out := RenderFileTree("app", map[string]FileEntry{
		"/src/index.ts":    {},
		`src\lib\util.ts`: {},
	})

	lines := treeLines(out)
	assert.Equal(t, []string{
		"app/",
		"└── src/",
		"    ├── lib/",
		"    │   └── util.ts",
		"    └── index.ts",
	}, lines)
}

func TestFileNode_Gone(t *testing.T) {
	removed := &fileNode{name: "pre-commit", entry: &FileEntry{State: FileRemoved}}
	kept := &fileNode{name: "index.ts", entry: &FileEntry{}}

	assert.True(t, (&fileNode{name: ".husky", children: []*fileNode{removed}}).gone())
	assert.False(t, (&fileNode{name: "src", children: []*fileNode{removed, kept}}).gone())
	assert.False(t, (&fileNode{name: "empty"}).gone())
}

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("empty", nil))
}
