package export

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpinc/go3mf"
	"github.com/hschendel/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/laybell/pkg/kernel"
)

// tetra is a closed unit right tetrahedron with outward winding.
func tetra() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
		Indices:  []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
		PartName: "tetra",
	}
}

// soup repeats every vertex per triangle the way marching cubes does.
func soup(m *kernel.Mesh) *kernel.Mesh {
	out := &kernel.Mesh{PartName: m.PartName}
	for t, i := range m.Indices {
		v := m.Vertex(i)
		out.Vertices = append(out.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
		out.Indices = append(out.Indices, uint32(t))
	}
	return out
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats {
		w, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, FormatName(w))
	}
	w, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, ".stl", w.Ext())

	_, err = ForFormat("obj")
	assert.ErrorContains(t, err, "stl-ascii")
}

func TestSTLRoundTrip(t *testing.T) {
	for _, ascii := range []bool{false, true} {
		t.Run(map[bool]string{false: "binary", true: "ascii"}[ascii], func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "dir", "tetra.stl")
			require.NoError(t, STL{ASCII: ascii}.Write(path, soup(tetra())))

			s, err := stl.ReadFile(path)
			require.NoError(t, err)
			require.Len(t, s.Triangles, 4)
			if ascii {
				assert.Equal(t, "tetra", s.Name)
			}

			// The bottom face points down.
			n := s.Triangles[0].Normal
			assert.InDelta(t, -1, n[2], 1e-6)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files left behind")
		})
	}
}

func TestThreeMFWeldsVertices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.3mf")
	require.NoError(t, ThreeMF{}.Write(path, soup(tetra())))

	r, err := go3mf.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	var model go3mf.Model
	require.NoError(t, r.Decode(&model))

	assert.Equal(t, go3mf.UnitMillimeter, model.Units)
	require.Len(t, model.Resources.Objects, 1)
	obj := model.Resources.Objects[0]
	assert.Equal(t, "tetra", obj.Name)
	require.NotNil(t, obj.Mesh)
	assert.Len(t, obj.Mesh.Vertices.Vertex, 4)
	assert.Len(t, obj.Mesh.Triangles.Triangle, 4)
	require.Len(t, model.Build.Items, 1)
	assert.Equal(t, obj.ID, model.Build.Items[0].ObjectID)
}

func TestWriteErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	for _, w := range []Writer{STL{}, ThreeMF{}} {
		path := filepath.Join(blocker, "part"+w.Ext())
		err := w.Write(path, tetra())
		var ee *Error
		require.True(t, errors.As(err, &ee), "error = %v", err)
		assert.Equal(t, path, ee.Path)

		err = w.Write(filepath.Join(dir, "empty"+w.Ext()), &kernel.Mesh{})
		assert.ErrorIs(t, err, ErrEmptyMesh)
		assert.NoFileExists(t, filepath.Join(dir, "empty"+w.Ext()))
	}
}

func TestFailedWriteKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, STL{}.Write(path, tetra()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Error(t, STL{}.Write(path, &kernel.Mesh{}))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFailedWriteCleansUp(t *testing.T) {
	encode := errors.New("encoder broke")

	t.Run("temporary file removed", func(t *testing.T) {
		dir := t.TempDir()
		err := replace(filepath.Join(dir, "part.stl"), tetra(), func(string) error { return encode })
		var ee *Error
		require.ErrorAs(t, err, &ee)
		assert.ErrorIs(t, err, encode)
		assert.NotContains(t, err.Error(), "remove temporary file")
		entries, rerr := os.ReadDir(dir)
		require.NoError(t, rerr)
		assert.Empty(t, entries)
	})

	t.Run("already gone", func(t *testing.T) {
		err := replace(filepath.Join(t.TempDir(), "part.stl"), tetra(), func(tmp string) error {
			require.NoError(t, os.Remove(tmp))
			return encode
		})
		assert.ErrorIs(t, err, encode)
		assert.NotContains(t, err.Error(), "remove temporary file")
	})

	t.Run("removal fails", func(t *testing.T) {
		err := replace(filepath.Join(t.TempDir(), "part.stl"), tetra(), func(tmp string) error {
			// A non-empty directory in place of the temp file cannot be removed.
			require.NoError(t, os.Remove(tmp))
			require.NoError(t, os.MkdirAll(filepath.Join(tmp, "child"), 0o755))
			return encode
		})
		assert.ErrorIs(t, err, encode)
		assert.ErrorContains(t, err, "remove temporary file")
	})
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		RunID:       "run",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Kernel:      "sdfx",
		Format:      "stl",
		Components: []Entry{
			Describe("tetra", "tetra.stl", "stl", soup(tetra())),
			Failed("broken", "broken.stl", "stl", errors.New("boom")),
		},
	}
	path, err := WriteManifest(dir, m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ManifestFile), path)

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
	require.Len(t, got.Components, 2)

	ok := got.Components[0]
	assert.True(t, ok.OK())
	assert.Equal(t, 4, ok.Triangles)
	assert.Equal(t, 12, ok.Vertices)
	assert.True(t, ok.Watertight)
	assert.InDelta(t, 1.0/6, ok.Volume, 1e-6)
	require.NotNil(t, ok.Bounds)
	assert.Equal(t, [3]float64{1, 1, 1}, ok.Bounds[1])

	bad := got.Components[1]
	assert.False(t, bad.OK())
	assert.Equal(t, "boom", bad.Error)
	assert.Nil(t, bad.Bounds)
	assert.False(t, math.IsNaN(bad.Volume))
}
