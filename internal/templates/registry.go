package templates

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultTemplateName is the template used when none is specified.
const DefaultTemplateName = "app"

// manifestFile describes a template and is never rendered.
const manifestFile = "template.yaml"

var (
	loadOnce sync.Once
	loaded   map[string]Template
	loadErr  error
)

// registry returns the manifests of every bundled template.
func registry() (map[string]Template, error) {
	loadOnce.Do(func() {
		loaded, loadErr = loadManifests(TemplateFS)
	})
	return loaded, loadErr
}

// loadManifests reads <dir>/template.yaml for each top-level directory of fsys.
func loadManifests(fsys fs.FS) (map[string]Template, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	result := make(map[string]Template, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(e.Name(), manifestFile))
		if err != nil {
			return nil, fmt.Errorf("reading manifest for template %s: %w", e.Name(), err)
		}

		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing manifest for template %s: %w", e.Name(), err)
		}
		if t.Name != e.Name() {
			return nil, fmt.Errorf("template directory %s declares name %q", e.Name(), t.Name)
		}
		result[t.Name] = t
	}
	return result, nil
}

// Get returns a template by name.
func Get(name string) (Template, error) {
	all, err := registry()
	if err != nil {
		return Template{}, err
	}
	t, ok := all[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// List returns all available templates sorted by name.
func List() []Template {
	all, err := registry()
	if err != nil {
		return nil
	}
	list := make([]Template, 0, len(all))
	for _, t := range all {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Names returns all template names sorted.
func Names() []string {
	list := List()
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return names
}

// IsValid reports whether name is a bundled template.
func IsValid(name string) bool {
	_, err := Get(name)
	return err == nil
}
