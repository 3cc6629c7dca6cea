// Package templates provides the project templates bundled with kickstart and
// renders them into a target directory.
package templates

import (
	"embed"
	"io/fs"
)

// The all: prefix keeps _-prefixed files, which become dotfiles on render.
//
//go:embed all:files
var embedded embed.FS

// TemplateFS is the root of the bundled templates; each top-level directory is one template.
var TemplateFS fs.FS = mustSub(embedded, "files")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
