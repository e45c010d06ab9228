package export

import (
	"github.com/hpinc/go3mf"

	"github.com/chazu/laybell/pkg/kernel"
)

// ThreeMF writes a single-object 3MF package in millimetres.
type ThreeMF struct{}

var _ Writer = ThreeMF{}

func (ThreeMF) Ext() string { return ".3mf" }

func (ThreeMF) Write(path string, m *kernel.Mesh) error {
	return replace(path, m, func(tmp string) error {
		w, err := go3mf.CreateWriter(tmp)
		if err != nil {
			return err
		}
		if err := w.Encode(toModel(m)); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}

// toModel welds the mesh, since 3MF stores shared vertices, and places it
// as the only build item.
func toModel(m *kernel.Mesh) *go3mf.Model {
	welded := m.Weld()
	mesh := new(go3mf.Mesh)
	mesh.Vertices.Vertex = make([]go3mf.Point3D, welded.VertexCount())
	for i := range mesh.Vertices.Vertex {
		mesh.Vertices.Vertex[i] = go3mf.Point3D{
			welded.Vertices[i*3], welded.Vertices[i*3+1], welded.Vertices[i*3+2],
		}
	}
	mesh.Triangles.Triangle = make([]go3mf.Triangle, welded.TriangleCount())
	for t := range mesh.Triangles.Triangle {
		mesh.Triangles.Triangle[t] = go3mf.Triangle{
			V1: welded.Indices[t*3], V2: welded.Indices[t*3+1], V3: welded.Indices[t*3+2],
		}
	}

	model := &go3mf.Model{Units: go3mf.UnitMillimeter}
	model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
		ID:   1,
		Name: m.PartName,
		Mesh: mesh,
	})
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})
	return model
}
