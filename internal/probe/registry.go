package probe

import (
	"context"
	"strings"

	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/runner"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org/"

// MirrorRegistry is the regional mirror offered as a built-in choice.
const MirrorRegistry = "https://registry.npmmirror.com/"

// DefaultRegistries are the URLs recognized as the public registry.
var DefaultRegistries = []string{
	"https://registry.npmjs.org/",
	"https://registry.npmjs.com/",
	"https://registry.yarnpkg.com/",
}

// MirrorRegistries are the URLs recognized as regional mirrors.
var MirrorRegistries = []string{
	"https://registry.npmmirror.com/",
	"https://registry.npm.taobao.org/",
}

// RegistryKind classifies a registry URL.
type RegistryKind string

const (
	// RegistryDefault is the public registry.
	RegistryDefault RegistryKind = "default"

	// RegistryMirror is a known regional mirror.
	RegistryMirror RegistryKind = "mirror"

	// RegistryCustom is anything else, typically a company registry.
	RegistryCustom RegistryKind = "custom"
)

// Classify places a registry URL in one of the allow-lists.
func Classify(url string) RegistryKind {
	normalized := NormalizeRegistry(url)
	for _, u := range DefaultRegistries {
		if normalized == u {
			return RegistryDefault
		}
	}
	for _, u := range MirrorRegistries {
		if normalized == u {
			return RegistryMirror
		}
	}
	return RegistryCustom
}

// NormalizeRegistry trims whitespace and guarantees a single trailing slash.
func NormalizeRegistry(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	return strings.TrimRight(url, "/") + "/"
}

// CustomRegistry reads the registry configured for pm and returns it when it
// is neither the public registry nor a known mirror.
func CustomRegistry(ctx context.Context, r runner.Runner, pm pkgmgr.Name) (string, bool) {
	out, err := r.Output(ctx, "", pm.String(), pm.RegistryArgs()...)
	if err != nil {
		return "", false
	}

	url := strings.TrimSpace(out)
	// npm prints "undefined" when nothing is configured.
	if url == "" || url == "undefined" {
		return "", false
	}
	if Classify(url) != RegistryCustom {
		return "", false
	}
	return url, true
}
