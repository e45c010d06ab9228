package export

import (
	"github.com/hschendel/stl"

	"github.com/chazu/laybell/pkg/kernel"
)

// STL writes binary STL, or ASCII STL when ASCII is set.
type STL struct {
	ASCII bool
}

var _ Writer = STL{}

func (STL) Ext() string { return ".stl" }

func (w STL) Write(path string, m *kernel.Mesh) error {
	return replace(path, m, func(tmp string) error {
		return toSolid(m, w.ASCII).WriteFile(tmp)
	})
}

// toSolid copies the mesh into an stl.Solid. Facet normals are recomputed
// from the winding; the kernel's per-vertex normals are not facet normals.
func toSolid(m *kernel.Mesh, ascii bool) *stl.Solid {
	s := &stl.Solid{
		Name:      m.PartName,
		IsAscii:   ascii,
		Triangles: make([]stl.Triangle, m.TriangleCount()),
	}
	for t := range s.Triangles {
		for j := 0; j < 3; j++ {
			i := m.Indices[t*3+j]
			s.Triangles[t].Vertices[j] = stl.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		}
	}
	s.RecalculateNormals()
	return s
}
