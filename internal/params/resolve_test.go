package params

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/probe"
)

func target(name string) string {
	return filepath.Join(string(filepath.Separator), "work", name)
}

func TestResolve_Defaults(t *testing.T) {
	got, err := Resolve(RawChoices{Target: target("my-app")}, ProbeResults{PackageManagerMajor: 9})
	require.NoError(t, err)

	assert.Equal(t, InternalSource{TemplateID: "app"}, got.Source)
	assert.Equal(t, target("my-app"), got.Target)
	assert.Equal(t, "my-app", got.ProjectName)
	assert.Equal(t, pkgmgr.PNPM, got.PackageManager)
	assert.Equal(t, 9, got.PackageManagerMajor)
	assert.Equal(t, probe.DefaultRegistry, got.Registry)
	assert.Equal(t, probe.RegistryDefault, got.RegistryKind)
	assert.True(t, got.GitInit)
	assert.True(t, got.HooksRetained)
	assert.True(t, got.Install)
	assert.Empty(t, got.NpmrcExtra)
}

func TestResolve_EndToEndScenario(t *testing.T) {
	raw := RawChoices{
		Target:         target("app"),
		Template:       "app",
		PackageManager: "pnpm",
		SkipGit:        false,
		SkipInstall:    true,
	}

	got, err := Resolve(raw, ProbeResults{PackageManagerMajor: 9})
	require.NoError(t, err)
	assert.True(t, got.GitInit)
	assert.True(t, got.HooksRetained)
	assert.False(t, got.Install)
}

func TestResolve_HooksRetention(t *testing.T) {
	tests := []struct {
		name        string
		skipGit     bool
		inWorkspace bool
		wantGit     bool
		wantHooks   bool
	}{
		{"git, standalone", false, false, true, true},
		{"git, workspace", false, true, true, false},
		{"no git, standalone", true, false, false, false},
		{"no git, workspace", true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probes := ProbeResults{InWorkspace: tt.inWorkspace}
			if tt.inWorkspace {
				probes.WorkspaceRoot = "/work"
			}
			got, err := Resolve(RawChoices{Target: target("x"), SkipGit: tt.skipGit}, probes)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGit, got.GitInit)
			assert.Equal(t, tt.wantHooks, got.HooksRetained)
		})
	}
}

func TestResolve_StrictPeerConfig(t *testing.T) {
	tests := []struct {
		pm    string
		major int
		want  string
	}{
		{"pnpm", 7, pkgmgr.StrictPeerConfig},
		{"pnpm", 8, ""},
		{"pnpm", 6, ""},
		{"npm", 7, ""},
		{"yarn", 7, ""},
	}

	for _, tt := range tests {
		t.Run(tt.pm, func(t *testing.T) {
			got, err := Resolve(RawChoices{Target: target("x"), PackageManager: tt.pm}, ProbeResults{PackageManagerMajor: tt.major})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.NpmrcExtra)
		})
	}
}

func TestResolve_Registry(t *testing.T) {
	custom := ProbeResults{CustomRegistry: "https://npm.corp.example.com/", HasCustom: true}

	tests := []struct {
		name     string
		choice   string
		defaults string
		probes   ProbeResults
		wantURL  string
		wantKind probe.RegistryKind
		wantErr  bool
	}{
		{name: "unset", wantURL: probe.DefaultRegistry, wantKind: probe.RegistryDefault},
		{name: "default", choice: "default", wantURL: probe.DefaultRegistry, wantKind: probe.RegistryDefault},
		{name: "mirror", choice: "mirror", wantURL: probe.MirrorRegistry, wantKind: probe.RegistryMirror},
		{name: "custom detected", choice: "custom", probes: custom, wantURL: "https://npm.corp.example.com/", wantKind: probe.RegistryCustom},
		{name: "custom not detected", choice: "custom", wantURL: probe.DefaultRegistry, wantKind: probe.RegistryDefault},
		{name: "explicit URL", choice: "https://npm.example.org", wantURL: "https://npm.example.org", wantKind: probe.RegistryCustom},
		{name: "explicit mirror URL", choice: "https://registry.npmmirror.com/", wantURL: "https://registry.npmmirror.com/", wantKind: probe.RegistryMirror},
		{name: "config default", defaults: "mirror", wantURL: probe.MirrorRegistry, wantKind: probe.RegistryMirror},
		{name: "invalid URL", choice: "ftp://nope", wantErr: true},
		{name: "garbage", choice: "nonsense", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawChoices{Target: target("x"), Registry: tt.choice, Defaults: Defaults{Registry: tt.defaults}}
			got, err := Resolve(raw, tt.probes)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got.Registry)
			assert.Equal(t, tt.wantKind, got.RegistryKind)
		})
	}
}

func TestResolve_UseDefaultsIgnoresAnswers(t *testing.T) {
	raw := RawChoices{
		Target:         target("x"),
		Template:       "library",
		PackageManager: "yarn",
		Registry:       "mirror",
		Author:         "Someone Else",
		UseDefaults:    true,
		Defaults:       Defaults{PackageManager: "npm", Author: "Config Author"},
	}

	got, err := Resolve(raw, ProbeResults{Identity: probe.Identity{Name: "Git Name", Email: "git@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, InternalSource{TemplateID: "library"}, got.Source, "template is kept with defaults")
	assert.Equal(t, pkgmgr.NPM, got.PackageManager)
	assert.Equal(t, probe.DefaultRegistry, got.Registry)
	assert.Equal(t, "Config Author", got.Author)
	assert.Equal(t, "git@example.com", got.Email)
}

func TestResolve_AuthorPrecedence(t *testing.T) {
	id := probe.Identity{Name: "Git Name", Email: "git@example.com"}

	got, err := Resolve(RawChoices{Target: target("x"), Author: "Flag Name"}, ProbeResults{Identity: id})
	require.NoError(t, err)
	assert.Equal(t, "Flag Name", got.Author)
	assert.Equal(t, "git@example.com", got.Email)
}

func TestResolve_ExternalSource(t *testing.T) {
	got, err := Resolve(RawChoices{Target: target("x"), Template: "app", From: "@acme/template-web"}, ProbeResults{})
	require.NoError(t, err)
	assert.Equal(t, ExternalSource{Ref: "@acme/template-web"}, got.Source)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  RawChoices
	}{
		{"missing target", RawChoices{}},
		{"unknown package manager", RawChoices{Target: target("x"), PackageManager: "bun"}},
		{"invalid project name", RawChoices{Target: target("x"), ProjectName: "Has Spaces"}},
		{"unknown template", RawChoices{Target: target("x"), Template: "monorepo"}},
		{"plugin without name", RawChoices{Target: target("x"), Template: "plugin"}},
		{"invalid plugin name", RawChoices{Target: target("x"), Template: "plugin", PluginName: "Svg Icons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.raw, ProbeResults{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestResolve_PluginTemplate(t *testing.T) {
	got, err := Resolve(RawChoices{Target: target("vite-plugin-svg"), Template: "plugin", PluginName: " svg-icons "}, ProbeResults{})
	require.NoError(t, err)
	assert.Equal(t, InternalSource{TemplateID: "plugin"}, got.Source)
	assert.Equal(t, "svg-icons", got.PluginName)
}

func TestSelectSource(t *testing.T) {
	assert.Equal(t, InternalSource{TemplateID: "app"}, SelectSource(RawChoices{}))
	assert.Equal(t, InternalSource{TemplateID: "plugin"}, SelectSource(RawChoices{Defaults: Defaults{Template: "plugin"}}))
	assert.Equal(t, ExternalSource{Ref: "create-thing"}, SelectSource(RawChoices{From: " create-thing "}))
}

func TestSelectPackageManager(t *testing.T) {
	pm, err := SelectPackageManager(RawChoices{Defaults: Defaults{PackageManager: "yarn"}})
	require.NoError(t, err)
	assert.Equal(t, pkgmgr.Yarn, pm)

	pm, err = SelectPackageManager(RawChoices{PackageManager: "npm", Defaults: Defaults{PackageManager: "yarn"}})
	require.NoError(t, err)
	assert.Equal(t, pkgmgr.NPM, pm)
}

func TestBuilder_StickyError(t *testing.T) {
	b := NewBuilder(RawChoices{}).Source().Target()
	_, err := b.PackageManager(8).Registry(ProbeResults{}).Author(probe.Identity{}).Git(false).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target directory is required")
}

func TestBuilder_IncompleteBuild(t *testing.T) {
	_, err := NewBuilder(RawChoices{Target: target("x")}).Source().Build()
	assert.Error(t, err)
}
