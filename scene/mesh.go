package scene

import (
	"render-engine/core"
)

// Mesh is a CPU-side triangle mesh: vertex attributes, a 32-bit index
// buffer (always a multiple of three, per spec §6's Geometry-source
// contract), and the material it is rendered with. GPU upload is an
// external collaborator's concern (the rasterizer/GPU path, out of scope
// here per spec §1) and is not modelled by this type.
type Mesh struct {
	Name         string
	Vertices     []core.Vertex
	Indices      []uint32
	Material     *Material
	MaterialName string // used by loaders before material resolution completes
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]core.Vertex, 0),
		Indices:  make([]uint32, 0),
	}
}

// CreateMeshFromData builds a Mesh from already-assembled vertex/index data.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// TriangleCount returns the number of triangles this mesh contributes.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Update is a vestigial per-frame hook (vertex animation, skinning) kept to
// match the scene graph's Update fan-out; the path-tracing core never
// mutates mesh data mid-sample.
func (m *Mesh) Update(deltaTime float32) {}
