package kernel

import "math"

// Mesh is a triangle mesh suitable for export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which component this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i uint32) [3]float64 {
	return [3]float64{
		float64(m.Vertices[i*3]),
		float64(m.Vertices[i*3+1]),
		float64(m.Vertices[i*3+2]),
	}
}

// BoundingBox returns the axis-aligned bounds of the referenced vertices.
// An empty mesh returns zero bounds.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for a := 0; a < 3; a++ {
		min[a] = math.Inf(1)
		max[a] = math.Inf(-1)
	}
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(uint32(i))
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max
}

// Volume returns the enclosed volume using the divergence theorem
// (sum of signed tetrahedra against the origin). It is only meaningful
// for closed, consistently wound meshes.
func (m *Mesh) Volume() float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		a := m.Vertex(m.Indices[t*3])
		b := m.Vertex(m.Indices[t*3+1])
		c := m.Vertex(m.Indices[t*3+2])
		sum += a[0]*(b[1]*c[2]-b[2]*c[1]) -
			a[1]*(b[0]*c[2]-b[2]*c[0]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])
	}
	return sum / 6
}

// weldTolerance is the grid used to merge coincident vertices (mm).
const weldTolerance = 1e-4

type vertexKey [3]int64

func keyOf(v [3]float64) vertexKey {
	return vertexKey{
		int64(math.Round(v[0] / weldTolerance)),
		int64(math.Round(v[1] / weldTolerance)),
		int64(math.Round(v[2] / weldTolerance)),
	}
}

// Weld merges coincident vertices and returns a shared-vertex copy of the
// mesh. Marching-cubes output repeats every vertex per triangle; indexed
// formats such as 3MF and edge analysis need them shared. Triangles that
// collapse to fewer than three distinct vertices are dropped. Normals are
// not carried over.
func (m *Mesh) Weld() *Mesh {
	out := &Mesh{PartName: m.PartName}
	index := make(map[vertexKey]uint32, m.VertexCount())
	lookup := func(i uint32) uint32 {
		v := m.Vertex(i)
		k := keyOf(v)
		if id, ok := index[k]; ok {
			return id
		}
		id := uint32(len(out.Vertices) / 3)
		out.Vertices = append(out.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
		index[k] = id
		return id
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a := lookup(m.Indices[t*3])
		b := lookup(m.Indices[t*3+1])
		c := lookup(m.Indices[t*3+2])
		if a == b || b == c || a == c {
			continue
		}
		out.Indices = append(out.Indices, a, b, c)
	}
	return out
}

// Watertight reports whether every edge of the welded mesh is shared by
// exactly two triangles traversing it in opposite directions.
func (m *Mesh) Watertight() bool {
	if m.TriangleCount() == 0 {
		return false
	}
	w := m.Weld()
	type edge struct{ a, b uint32 }
	directed := make(map[edge]int, len(w.Indices))
	for t := 0; t < w.TriangleCount(); t++ {
		tri := w.Indices[t*3 : t*3+3]
		for j := 0; j < 3; j++ {
			directed[edge{tri[j], tri[(j+1)%3]}]++
		}
	}
	for e, n := range directed {
		if n != 1 || directed[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

// SmoothNormals replaces Normals with per-vertex normals: the area-weighted
// sum of the incident face normals, normalised. Vertices on no triangle get
// a zero normal.
func (m *Mesh) SmoothNormals() {
	acc := make([]float64, len(m.Vertices))
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Indices[t*3 : t*3+3]
		a, b, c := m.Vertex(tri[0]), m.Vertex(tri[1]), m.Vertex(tri[2])
		e1 := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, i := range tri {
			for a := 0; a < 3; a++ {
				acc[int(i)*3+a] += n[a]
			}
		}
	}
	m.Normals = make([]float32, len(m.Vertices))
	for i := 0; i < len(acc); i += 3 {
		l := math.Sqrt(acc[i]*acc[i] + acc[i+1]*acc[i+1] + acc[i+2]*acc[i+2])
		if l < 1e-12 {
			continue
		}
		for a := 0; a < 3; a++ {
			m.Normals[i+a] = float32(acc[i+a] / l)
		}
	}
}
