// Package export writes meshes to printable file formats and records what a
// build produced in a manifest.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/chazu/laybell/pkg/kernel"
)

// DefaultDir is where components are written unless told otherwise.
const DefaultDir = "models/components"

// ErrEmptyMesh is returned when asked to write a mesh with no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Writer persists a mesh to a file.
type Writer interface {
	Write(path string, m *kernel.Mesh) error
	// Ext is the file extension including the dot.
	Ext() string
}

// Error reports a failed write and the file it was aimed at.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("export: write %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Formats lists the names accepted by ForFormat.
var Formats = []string{"stl", "stl-ascii", "3mf"}

// ForFormat returns the writer for a format name.
func ForFormat(name string) (Writer, error) {
	switch strings.ToLower(name) {
	case "", "stl":
		return STL{}, nil
	case "stl-ascii":
		return STL{ASCII: true}, nil
	case "3mf":
		return ThreeMF{}, nil
	}
	return nil, fmt.Errorf("export: unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
}

// FormatName is the inverse of ForFormat.
func FormatName(w Writer) string {
	switch w := w.(type) {
	case STL:
		if w.ASCII {
			return "stl-ascii"
		}
		return "stl"
	case ThreeMF:
		return "3mf"
	}
	return strings.TrimPrefix(w.Ext(), ".")
}

// replace runs write against a temporary sibling of path and renames it into
// place once write succeeds. A failed write leaves any previous file intact.
func replace(path string, m *kernel.Mesh, write func(tmp string) error) error {
	if m == nil || m.TriangleCount() == 0 {
		return &Error{Path: path, Err: ErrEmptyMesh}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Path: path, Err: err}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		return &Error{Path: path, Err: discard(tmp, err)}
	}

	if err := write(tmp); err != nil {
		return &Error{Path: path, Err: discard(tmp, err)}
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return &Error{Path: path, Err: discard(tmp, err)}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &Error{Path: path, Err: discard(tmp, err)}
	}
	return nil
}

// discard removes the temporary file after a failed write and folds a
// failed removal into err.
func discard(tmp string, err error) error {
	if rerr := os.Remove(tmp); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
		return multierr.Append(err, fmt.Errorf("remove temporary file: %w", rerr))
	}
	return err
}
