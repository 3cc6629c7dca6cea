package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/templates"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List bundled templates",
		Long: `List the templates bundled with kickstart.

Use a template with 'kickstart new <dir> --template <name>'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Print(formatTemplateList(templates.List()))
			return nil
		},
	}
}

// formatTemplateList renders one block per template with its files.
func formatTemplateList(list []templates.Template) string {
	var sb strings.Builder
	for i, t := range list {
		if i > 0 {
			sb.WriteString("\n")
		}
		name := output.StyleNoun.Render(t.Name)
		if t.Default {
			name += " " + output.StyleDim.Render("(default)")
		}
		fmt.Fprintf(&sb, "%s  %s\n", name, t.Description)
		if t.UseCase != "" {
			sb.WriteString("  " + output.StyleMuted.Render(t.UseCase) + "\n")
		}
		if t.RequiresPlugin {
			sb.WriteString("  " + output.StyleMuted.Render("requires --plugin-name") + "\n")
		}
		sb.WriteString(output.RenderFileTree(t.Name, templateFiles(t)))
	}
	return sb.String()
}

// templateFiles lists every file a template renders, with the descriptions
// its manifest gives. Templates not found in the bundle fall back to the
// manifest listing.
func templateFiles(t templates.Template) map[string]output.FileEntry {
	paths, err := templates.ListTemplateFiles(t.Name)
	if err != nil {
		paths = make([]string, 0, len(t.Files))
		for p := range t.Files {
			paths = append(paths, p)
		}
	}

	files := make(map[string]output.FileEntry, len(paths))
	for _, p := range paths {
		files[p] = output.FileEntry{Description: t.Files[p]}
	}
	return files
}
