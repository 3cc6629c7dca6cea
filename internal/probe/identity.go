package probe

import (
	"context"
	"strings"

	"github.com/kickstartjs/kickstart/internal/runner"
)

// Identity is the author identity found in git configuration.
type Identity struct {
	Name  string
	Email string
}

// GitIdentity reads user.name and user.email from git. Missing git or unset
// keys yield empty fields.
func GitIdentity(ctx context.Context, r runner.Runner) Identity {
	return Identity{
		Name:  gitConfig(ctx, r, "user.name"),
		Email: gitConfig(ctx, r, "user.email"),
	}
}

func gitConfig(ctx context.Context, r runner.Runner, key string) string {
	out, err := r.Output(ctx, "", "git", "config", "--get", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
