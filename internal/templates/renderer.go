package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
)

// Renderer writes bundled templates to a filesystem.
type Renderer struct {
	fs   afero.Fs
	tmpl fs.FS
}

// NewRenderer creates a renderer that writes to fsys.
func NewRenderer(fsys afero.Fs) *Renderer {
	return &Renderer{fs: fsys, tmpl: TemplateFS}
}

// Render renders a template into req.TargetDir.
func (r *Renderer) Render(req RenderRequest) (*RenderResult, error) {
	tmpl, err := Get(req.TemplateID)
	if err != nil {
		return nil, err
	}

	if err := validateData(tmpl, req.Data); err != nil {
		return nil, err
	}

	if err := r.checkTargetDir(req.TargetDir, req.Force); err != nil {
		return nil, err
	}

	data := req.Data
	if data.Version == "" {
		data.Version = DefaultVersion
	}

	files, err := r.renderFiles(tmpl.Name, data)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", tmpl.Name, err)
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		targetPath := filepath.Join(req.TargetDir, filepath.FromSlash(f.TargetPath))

		if err := r.fs.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", targetPath, err)
		}

		if err := afero.WriteFile(r.fs, targetPath, f.Content, f.Mode); err != nil {
			return nil, fmt.Errorf("writing %s: %w", targetPath, err)
		}

		output.Debug("created file", "path", f.TargetPath)
		created = append(created, f.TargetPath)
	}

	return &RenderResult{
		Files:     created,
		Template:  tmpl,
		TargetDir: req.TargetDir,
	}, nil
}

// TemplateFile represents a file to be generated from a template.
type TemplateFile struct {
	// SourcePath is the path within the template filesystem.
	SourcePath string

	// TargetPath is the slash-separated output path.
	TargetPath string

	// Content is the rendered content.
	Content []byte

	Mode os.FileMode
}

// renderFiles renders every file of a template in memory.
func (r *Renderer) renderFiles(templateID string, data TemplateData) ([]TemplateFile, error) {
	var files []TemplateFile

	err := fs.WalkDir(r.tmpl, templateID, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(p, templateID+"/")
		if relPath == manifestFile {
			return nil
		}

		content, err := fs.ReadFile(r.tmpl, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		if strings.HasSuffix(relPath, ".tmpl") {
			content, err = RenderFile(p, content, data)
			if err != nil {
				return err
			}
		}

		mode := os.FileMode(0o644)
		if strings.HasPrefix(relPath, "_husky/") {
			mode = 0o755
		}

		files = append(files, TemplateFile{
			SourcePath: p,
			TargetPath: TargetPath(relPath),
			Content:    content,
			Mode:       mode,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// RenderFile executes a single template file.
func RenderFile(name string, content []byte, data TemplateData) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(funcMap(data)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func funcMap(data TemplateData) template.FuncMap {
	return template.FuncMap{
		"pascal": ToPascalCase,
		"camel":  ToCamelCase,
		"json": toJSON,
		"run": func(script string) string {
			pm, err := pkgmgr.Parse(data.PackageManager)
			if err != nil {
				pm = pkgmgr.Default
			}
			return pm.RunScript(script)
		},
	}
}

// toJSON renders v as a JSON literal for values placed in JSON files.
func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// TargetPath maps a template-relative path to its rendered path: the .tmpl
// suffix is dropped and a leading '_' on any segment becomes '.'.
func TargetPath(relPath string) string {
	relPath = strings.TrimSuffix(relPath, ".tmpl")
	parts := strings.Split(relPath, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "_") {
			parts[i] = "." + strings.TrimPrefix(part, "_")
		}
	}
	return strings.Join(parts, "/")
}

// checkTargetDir validates the target directory.
func (r *Renderer) checkTargetDir(dir string, force bool) error {
	info, err := r.fs.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return fmt.Errorf("reading target directory: %w", err)
	}

	if len(entries) > 0 && !force {
		return fmt.Errorf("directory %s is not empty; use --force to overwrite existing files", dir)
	}

	return nil
}

// ListTemplateFiles returns the rendered paths of a template without rendering.
func ListTemplateFiles(templateID string) ([]string, error) {
	if _, err := Get(templateID); err != nil {
		return nil, err
	}

	var files []string
	err := fs.WalkDir(TemplateFS, templateID, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		relPath := strings.TrimPrefix(p, templateID+"/")
		if relPath == manifestFile {
			return nil
		}
		files = append(files, TargetPath(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing template %s: %w", templateID, err)
	}
	return files, nil
}
