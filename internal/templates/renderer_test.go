package templates

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func appRequest(target string) RenderRequest {
	return RenderRequest{
		TemplateID: "app",
		TargetDir:  target,
		Data: TemplateData{
			ProjectName:    "my-app",
			Author:         "Ada",
			Email:          "ada@example.com",
			PackageManager: "pnpm",
			Registry:       "https://registry.npmjs.org/",
			Hooks:          true,
		},
	}
}

func TestRender_App(t *testing.T) {
	fs := afero.NewMemMapFs()
	target := "/work/my-app"

	result, err := NewRenderer(fs).Render(appRequest(target))
	require.NoError(t, err)

	assert.Equal(t, "app", result.Template.Name)
	assert.Equal(t, target, result.TargetDir)
	assert.ElementsMatch(t, []string{
		"package.json",
		"tsconfig.json",
		"src/index.ts",
		"README.md",
		".npmrc",
		".gitignore",
		".husky/pre-commit",
	}, result.Files)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, filepath.Join(target, "package.json"))), &manifest))
	assert.Equal(t, "my-app", manifest["name"])
	assert.Equal(t, DefaultVersion, manifest["version"])
	assert.Equal(t, "Ada <ada@example.com>", manifest["author"])
	assert.Contains(t, manifest["devDependencies"], "husky")

	assert.Equal(t, "registry=https://registry.npmjs.org/\n", readFile(t, fs, filepath.Join(target, ".npmrc")))
	assert.Contains(t, readFile(t, fs, filepath.Join(target, "README.md")), "pnpm dev")

	info, err := fs.Stat(filepath.Join(target, ".husky", "pre-commit"))
	require.NoError(t, err)
	assert.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())
}

func TestRender_WithoutHooksOmitsHusky(t *testing.T) {
	fs := afero.NewMemMapFs()
	req := appRequest("/work/my-app")
	req.Data.Hooks = false
	req.Data.Author = ""

	_, err := NewRenderer(fs).Render(req)
	require.NoError(t, err)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, "/work/my-app/package.json")), &manifest))
	assert.NotContains(t, manifest, "author")
	assert.NotContains(t, manifest, "lint-staged")
	assert.NotContains(t, manifest["devDependencies"], "husky")
}

func TestRender_PackageManifestEscapesAuthor(t *testing.T) {
	for _, id := range []string{"app", "library", "plugin"} {
		t.Run(id, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			req := appRequest("/p")
			req.TemplateID = id
			req.Data.PluginName = "svg-icons"
			req.Data.Author = `Jane "JJ" Doe \ Co`
			req.Data.Email = "jane@example.com"

			_, err := NewRenderer(fs).Render(req)
			require.NoError(t, err)

			var manifest map[string]any
			require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, "/p/package.json")), &manifest))
			assert.Equal(t, `Jane "JJ" Doe \ Co <jane@example.com>`, manifest["author"])
			assert.Equal(t, "my-app", manifest["name"])
		})
	}
}

func TestRender_PackageManifestAuthorWithoutEmail(t *testing.T) {
	fs := afero.NewMemMapFs()
	req := appRequest("/p")
	req.Data.Author = `O'Brien "Ops"`
	req.Data.Email = ""

	_, err := NewRenderer(fs).Render(req)
	require.NoError(t, err)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, "/p/package.json")), &manifest))
	assert.Equal(t, `O'Brien "Ops"`, manifest["author"])
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"Ada <ada@example.com>", `"Ada <ada@example.com>"`},
	}

	for _, tt := range tests {
		got, err := toJSON(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRender_NpmrcExtraLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	req := appRequest("/work/my-app")
	req.Data.NpmrcExtra = "strict-peer-dependencies=false"

	_, err := NewRenderer(fs).Render(req)
	require.NoError(t, err)

	assert.Equal(t,
		"registry=https://registry.npmjs.org/\nstrict-peer-dependencies=false\n",
		readFile(t, fs, "/work/my-app/.npmrc"))
}

func TestRender_LibraryUsesPackageManagerForScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	req := appRequest("/work/lib")
	req.TemplateID = "library"
	req.Data.ProjectName = "@acme/lib"
	req.Data.PackageManager = "npm"

	_, err := NewRenderer(fs).Render(req)
	require.NoError(t, err)

	assert.Contains(t, readFile(t, fs, "/work/lib/.husky/pre-commit"), "npm run test")
	exists, err := afero.Exists(fs, "/work/lib/src/index.test.ts")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRender_Plugin(t *testing.T) {
	fs := afero.NewMemMapFs()
	req := appRequest("/work/vite-plugin-svg-icons")
	req.TemplateID = "plugin"
	req.Data.ProjectName = "vite-plugin-svg-icons"
	req.Data.PluginName = "svg-icons"

	_, err := NewRenderer(fs).Render(req)
	require.NoError(t, err)

	index := readFile(t, fs, "/work/vite-plugin-svg-icons/src/index.ts")
	assert.Contains(t, index, "export interface SvgIconsOptions")
	assert.Contains(t, index, "export default function svgIcons(")
	assert.Contains(t, index, `name: "svg-icons"`)
}

func TestRender_PluginRequiresName(t *testing.T) {
	req := appRequest("/work/p")
	req.TemplateID = "plugin"

	_, err := NewRenderer(afero.NewMemMapFs()).Render(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin name cannot be empty")
}

func TestRender_UnknownTemplate(t *testing.T) {
	req := appRequest("/work/x")
	req.TemplateID = "monorepo"

	_, err := NewRenderer(afero.NewMemMapFs()).Render(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestRender_InvalidProjectName(t *testing.T) {
	req := appRequest("/work/x")
	req.Data.ProjectName = "My App"

	_, err := NewRenderer(afero.NewMemMapFs()).Render(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be lowercase")
}

func TestRender_NonEmptyTarget(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/my-app/notes.txt", []byte("keep"), 0o644))

	_, err := NewRenderer(fs).Render(appRequest("/work/my-app"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")

	req := appRequest("/work/my-app")
	req.Force = true
	_, err = NewRenderer(fs).Render(req)
	require.NoError(t, err)
	assert.Equal(t, "keep", readFile(t, fs, "/work/my-app/notes.txt"))
}

func TestRender_TargetIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/my-app", []byte("x"), 0o644))

	_, err := NewRenderer(fs).Render(appRequest("/work/my-app"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"package.json.tmpl", "package.json"},
		{"_gitignore", ".gitignore"},
		{"_npmrc.tmpl", ".npmrc"},
		{"_husky/pre-commit", ".husky/pre-commit"},
		{"src/index.ts.tmpl", "src/index.ts"},
		{"src/my_file.ts", "src/my_file.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TargetPath(tt.input))
		})
	}
}

func TestRenderFile_ParseError(t *testing.T) {
	_, err := RenderFile("broken.tmpl", []byte("{{ .ProjectName "), TemplateData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template broken.tmpl")
}
