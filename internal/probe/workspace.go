package probe

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// ManifestFile is the package manifest that marks a package directory.
const ManifestFile = "package.json"

// WorkspaceMarkers are the files that turn a package directory into a workspace root.
var WorkspaceMarkers = []string{"pnpm-workspace.yaml", "pnpm-workspace.yml"}

// WorkspaceRoot walks upward from the parent of target to the nearest directory
// holding a package manifest. That directory is returned only if it also holds a
// workspace marker; otherwise, or when no manifest exists, ok is false.
func WorkspaceRoot(fs afero.Fs, target string) (root string, ok bool) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}

	dir := filepath.Dir(abs)
	for {
		if exists(fs, filepath.Join(dir, ManifestFile)) {
			for _, marker := range WorkspaceMarkers {
				if exists(fs, filepath.Join(dir, marker)) {
					return dir, true
				}
			}
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// exists collapses every stat error to "absent".
func exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
