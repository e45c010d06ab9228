package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chazu/laybell/pkg/kernel"
)

// ManifestFile is the manifest's name inside the output directory.
const ManifestFile = "manifest.json"

// Manifest records one build run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Kernel      string    `json:"kernel"`
	Format      string    `json:"format"`
	Profile     string    `json:"profile,omitempty"`
	Config      string    `json:"config,omitempty"`
	Components  []Entry   `json:"components"`
}

// Entry describes one component's artifact, or why it has none.
type Entry struct {
	Name       string         `json:"name"`
	File       string         `json:"file"`
	Format     string         `json:"format"`
	Triangles  int            `json:"triangles"`
	Vertices   int            `json:"vertices"`
	Bounds     *[2][3]float64 `json:"bounds,omitempty"` // min, max
	Volume     float64        `json:"volume_mm3"`
	Watertight bool           `json:"watertight"`
	Error      string         `json:"error,omitempty"`
}

// Describe summarises a written mesh.
func Describe(name, file, format string, m *kernel.Mesh) Entry {
	lo, hi := m.BoundingBox()
	return Entry{
		Name:       name,
		File:       file,
		Format:     format,
		Triangles:  m.TriangleCount(),
		Vertices:   m.VertexCount(),
		Bounds:     &[2][3]float64{lo, hi},
		Volume:     m.Volume(),
		Watertight: m.Watertight(),
	}
}

// Failed records a component that produced no file.
func Failed(name, file, format string, err error) Entry {
	return Entry{Name: name, File: file, Format: format, Error: err.Error()}
}

// OK reports whether the entry has an artifact.
func (e Entry) OK() bool { return e.Error == "" }

// WriteManifest writes m as indented JSON into dir and returns its path.
func WriteManifest(dir string, m *Manifest) (string, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Path: path, Err: err}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("export: %s: %w", path, err)
	}
	return m, nil
}
