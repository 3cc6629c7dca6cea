package params

import (
	"path/filepath"
	"strings"
)

// ProjectContext locates the generated project relative to its workspace.
type ProjectContext struct {
	// Target is the absolute project directory.
	Target string

	// InWorkspace is true when Target lives inside a multi-package workspace.
	InWorkspace bool

	// Root is the workspace root, or Target itself outside a workspace.
	Root string
}

// NewProjectContext builds a context whose Root is always an ancestor-or-self
// of Target. A workspace root that does not contain target is ignored.
func NewProjectContext(target, workspaceRoot string, inWorkspace bool) ProjectContext {
	target = filepath.Clean(target)
	if !inWorkspace || workspaceRoot == "" || !isAncestorOrSelf(workspaceRoot, target) {
		return ProjectContext{Target: target, Root: target}
	}
	return ProjectContext{
		Target:      target,
		InWorkspace: true,
		Root:        filepath.Clean(workspaceRoot),
	}
}

func isAncestorOrSelf(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
