package params

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProjectContext(t *testing.T) {
	root := filepath.FromSlash("/a")
	tgt := filepath.FromSlash("/a/pkg/b")

	tests := []struct {
		name        string
		workspace   string
		inWorkspace bool
		wantRoot    string
		wantIn      bool
	}{
		{"standalone", "", false, tgt, false},
		{"workspace", root, true, root, true},
		{"workspace root equals target", tgt, true, tgt, true},
		{"unrelated workspace ignored", filepath.FromSlash("/other"), true, tgt, false},
		{"sibling prefix is not an ancestor", filepath.FromSlash("/a/pk"), true, tgt, false},
		{"flag without root", "", true, tgt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewProjectContext(tgt, tt.workspace, tt.inWorkspace)
			assert.Equal(t, tgt, pc.Target)
			assert.Equal(t, tt.wantRoot, pc.Root)
			assert.Equal(t, tt.wantIn, pc.InWorkspace)
		})
	}
}
