package templates

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// npm package names: optional @scope/, then URL-safe lowercase characters.
var packageNameRegex = regexp.MustCompile(`^(?:@[a-z0-9][a-z0-9._~-]*/)?[a-z0-9][a-z0-9._~-]*$`)

// maxPackageNameLength is the npm registry limit.
const maxPackageNameLength = 214

// pluginNameRegex accepts kebab-case identifiers.
var pluginNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)

// ValidatePackageName checks name against npm's package naming rules.
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > maxPackageNameLength {
		return fmt.Errorf("invalid project name %q: longer than %d characters", name, maxPackageNameLength)
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("invalid project name %q: must be lowercase", name)
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must be URL-safe and may not start with '.' or '_'", name)
	}
	if name == "node_modules" || name == "favicon.ico" {
		return fmt.Errorf("invalid project name %q: reserved name", name)
	}
	return nil
}

// ValidatePluginName checks that a plugin name is kebab-case.
func ValidatePluginName(name string) error {
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if !pluginNameRegex.MatchString(name) {
		return fmt.Errorf("invalid plugin name %q: use lowercase kebab-case, e.g. svg-icons", name)
	}
	return nil
}

// validateData checks template data against the template's requirements.
func validateData(t Template, data TemplateData) error {
	if err := ValidatePackageName(data.ProjectName); err != nil {
		return err
	}
	if t.RequiresPlugin {
		if err := ValidatePluginName(data.PluginName); err != nil {
			return fmt.Errorf("template %s: %w", t.Name, err)
		}
	}
	return nil
}

// ToPascalCase converts a kebab-case or snake_case string to PascalCase.
// Examples: "svg-icons" -> "SvgIcons", "my_plugin" -> "MyPlugin"
func ToPascalCase(s string) string {
	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '-' || r == '_' || r == '.' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a kebab-case or snake_case string to camelCase.
func ToCamelCase(s string) string {
	pascal := []rune(ToPascalCase(s))
	if len(pascal) == 0 {
		return ""
	}
	pascal[0] = unicode.ToLower(pascal[0])
	return string(pascal)
}
