package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/runner/runnertest"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want RegistryKind
	}{
		{"https://registry.npmjs.org/", RegistryDefault},
		{"https://registry.npmjs.org", RegistryDefault},
		{"https://registry.yarnpkg.com/", RegistryDefault},
		{"https://registry.npmmirror.com", RegistryMirror},
		{"https://registry.npm.taobao.org/", RegistryMirror},
		{"https://npm.internal.example.com/", RegistryCustom},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.url))
		})
	}
}

func TestNormalizeRegistry(t *testing.T) {
	assert.Equal(t, "https://r.example.com/", NormalizeRegistry(" https://r.example.com// "))
	assert.Equal(t, "", NormalizeRegistry("  "))
}

func TestCustomRegistry(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		fail    bool
		wantURL string
		wantOK  bool
	}{
		{name: "custom registry", stdout: "https://npm.corp.example.com/\n", wantURL: "https://npm.corp.example.com/", wantOK: true},
		{name: "default registry", stdout: "https://registry.npmjs.org/\n"},
		{name: "mirror registry", stdout: "https://registry.npmmirror.com/\n"},
		{name: "unset", stdout: "undefined\n"},
		{name: "empty", stdout: ""},
		{name: "command fails", fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runnertest.NewRecorder()
			if tt.fail {
				rec.Fail("pnpm config get registry", "boom")
			} else {
				rec.On("pnpm config get registry", runnertest.Response{Stdout: tt.stdout})
			}

			url, ok := CustomRegistry(context.Background(), rec, pkgmgr.PNPM)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}
