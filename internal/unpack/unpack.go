// Package unpack materializes externally published templates.
//
// An external template is any npm package reference understood by `npm pack`
// (name, name@version, tarball URL, or local path). The package tarball is
// fetched into a temporary directory and its package/ contents are extracted
// into the target directory.
package unpack

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/runner"
)

// packagePrefix is the directory npm places package contents under in a tarball.
const packagePrefix = "package/"

// NpmUnpacker fetches templates with `npm pack`.
type NpmUnpacker struct {
	fs     afero.Fs
	runner runner.Runner
}

// NewNpmUnpacker creates an unpacker writing to fsys.
func NewNpmUnpacker(fsys afero.Fs, r runner.Runner) *NpmUnpacker {
	return &NpmUnpacker{fs: fsys, runner: r}
}

// Unpack fetches ref from registry and extracts it into dest.
// It returns the extracted file paths relative to dest.
func (u *NpmUnpacker) Unpack(ctx context.Context, ref, dest, registry string) ([]string, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("template reference cannot be empty")
	}

	tmpDir, err := afero.TempDir(u.fs, "", "kickstart-pack-")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer func() {
		if err := u.fs.RemoveAll(tmpDir); err != nil {
			output.Debug("could not remove temporary directory", "path", tmpDir, "error", err)
		}
	}()

	var stdout string
	err = output.RunWithSpinner(ctx, func() error {
		var packErr error
		stdout, packErr = u.runner.Output(ctx, tmpDir, "npm", PackArgs(ref, registry, tmpDir)...)
		return packErr
	}, output.WithTitle(fmt.Sprintf("Fetching %s", ref)))
	if err != nil {
		return nil, fmt.Errorf("fetching template %s: %w", ref, err)
	}

	tarball, err := tarballName(stdout)
	if err != nil {
		return nil, fmt.Errorf("fetching template %s: %w", ref, err)
	}
	output.Debug("fetched template", "ref", ref, "tarball", tarball)

	f, err := u.fs.Open(filepath.Join(tmpDir, tarball))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", tarball, err)
	}
	defer f.Close()

	files, err := Extract(u.fs, f, dest)
	if err != nil {
		return nil, fmt.Errorf("extracting template %s: %w", ref, err)
	}
	return files, nil
}

// PackArgs returns the npm arguments that fetch ref into dir.
func PackArgs(ref, registry, dir string) []string {
	args := []string{"pack", ref}
	if registry != "" {
		args = append(args, "--registry", registry)
	}
	return append(args, "--pack-destination", dir)
}

// tarballName returns the last non-empty line of npm pack output.
func tarballName(stdout string) (string, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	name := strings.TrimSpace(lines[len(lines)-1])
	if name == "" {
		return "", fmt.Errorf("npm pack reported no tarball")
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("unexpected tarball name %q", name)
	}
	return name, nil
}

// Extract writes the package/ entries of a gzipped tarball into dest.
// Entries outside package/ are ignored; entries escaping dest are rejected.
func Extract(fsys afero.Fs, r io.Reader, dest string) ([]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	if err := fsys.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}

	var files []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}

		rel, ok := strings.CutPrefix(hdr.Name, packagePrefix)
		if !ok || rel == "" {
			continue
		}

		rel, err = safeRelPath(rel)
		if err != nil {
			return nil, err
		}
		target := filepath.Join(dest, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, 0o755); err != nil {
				return nil, fmt.Errorf("creating %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := writeEntry(fsys, target, tr, fileMode(hdr.Mode)); err != nil {
				return nil, fmt.Errorf("writing %s: %w", rel, err)
			}
			files = append(files, rel)
		default:
			output.Debug("skipping tar entry", "name", hdr.Name, "type", string(hdr.Typeflag))
		}
	}

	return files, nil
}

// safeRelPath cleans a tar entry path and rejects absolute or escaping paths.
func safeRelPath(name string) (string, error) {
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return "", fmt.Errorf("tar entry %q has an absolute path", name)
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("tar entry %q escapes the target directory", name)
	}
	return cleaned, nil
}

func writeEntry(fsys afero.Fs, target string, r io.Reader, mode os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// fileMode keeps permission bits from the archive, defaulting to 0644.
func fileMode(mode int64) os.FileMode {
	perm := os.FileMode(mode).Perm()
	if perm == 0 {
		return 0o644
	}
	return perm
}
