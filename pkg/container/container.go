// SPDX-License-Identifier: MPL-2.0

// Package container provides scoped, read-only access to the resources of a
// packaged build artifact. An artifact can be a zip-based archive (.jar,
// .zip), a tar archive (.tar, .tar.gz, .tgz), or an unpacked output
// directory; all three are exposed uniformly through io/fs semantics keyed
// by slash-separated resource paths.
//
// A Container never writes to or executes anything from the artifact. It is
// scoped to one extraction phase: open, read named entries, close.
package container

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	tarfs "github.com/nlepage/go-tarfs"
)

// ErrUnsupportedArtifact is returned by Open for artifact files whose type
// is not recognized as a readable resource container.
var ErrUnsupportedArtifact = errors.New("unsupported artifact type")

// Container is a read-only view over one artifact's resources.
type Container struct {
	path    string
	fsys    fs.FS
	closers []io.Closer
}

// Open opens the artifact at path as a resource container. Directories are
// served directly from disk; archives are indexed up front. The caller must
// Close the container when extraction is done.
func Open(path string) (*Container, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}

	if info.IsDir() {
		return &Container{path: path, fsys: os.DirFS(path)}, nil
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".jar"), strings.HasSuffix(lower, ".zip"):
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		return &Container{path: path, fsys: &r.Reader, closers: []io.Closer{r}}, nil

	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		fsys, err := tarfs.New(gz)
		if err != nil {
			_ = gz.Close()
			_ = f.Close()
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		return &Container{path: path, fsys: fsys, closers: []io.Closer{gz, f}}, nil

	case strings.HasSuffix(lower, ".tar"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		fsys, err := tarfs.New(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open artifact %s: %w", path, err)
		}
		return &Container{path: path, fsys: fsys, closers: []io.Closer{f}}, nil

	default:
		return nil, fmt.Errorf("open artifact %s: %w", path, ErrUnsupportedArtifact)
	}
}

// Path returns the artifact location this container was opened from.
func (c *Container) Path() string {
	return c.path
}

// ReadText reads the named resource and decodes it as text. A missing
// resource reports fs.ErrNotExist through the error chain; callers decide
// whether absence is fatal.
func (c *Container) ReadText(name string) (string, error) {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return "", fmt.Errorf("read %s from %s: %w", name, c.path, err)
	}
	return string(data), nil
}

// Close releases any file handles held by the container. Safe to call on a
// directory-backed container, which holds none.
func (c *Container) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
