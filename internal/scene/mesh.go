// Package scene holds the static wireframe geometry shown by the viewer.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"wireview/internal/math3d"
)

// ErrNoVertices is returned when a mesh is built without any vertices
var ErrNoVertices = errors.New("mesh has no vertices")

// Edge joins two vertices of a mesh by index
type Edge struct {
	A, B int
}

// Mesh is an immutable set of vertices joined by edges and drawn in one colour.
// The slices returned by its accessors must not be modified.
type Mesh struct {
	name     string
	vertices []math3d.Vec3
	edges    []Edge
	color    color.RGBA
}

// NewMesh validates and copies the given geometry. Every edge must reference
// existing vertices.
func NewMesh(name string, vertices []math3d.Vec3, edges []Edge, col color.RGBA) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh %q: %w", name, ErrNoVertices)
	}
	for i, e := range edges {
		if e.A < 0 || e.A >= len(vertices) || e.B < 0 || e.B >= len(vertices) {
			return nil, fmt.Errorf("mesh %q: edge %d (%d, %d) out of range for %d vertices",
				name, i, e.A, e.B, len(vertices))
		}
	}

	return &Mesh{
		name:     name,
		vertices: append([]math3d.Vec3(nil), vertices...),
		edges:    append([]Edge(nil), edges...),
		color:    col,
	}, nil
}

// MustMesh is like NewMesh but panics on invalid input. It is meant for static geometry.
func MustMesh(name string, vertices []math3d.Vec3, edges []Edge, col color.RGBA) *Mesh {
	m, err := NewMesh(name, vertices, edges, col)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mesh) Name() string { return m.name }
func (m *Mesh) Vertices() []math3d.Vec3 { return m.vertices }
func (m *Mesh) Edges() []Edge { return m.edges }
func (m *Mesh) Color() color.RGBA { return m.color }
func (m *Mesh) Vertex(i int) math3d.Vec3 { return m.vertices[i] }
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// Centroid returns the mean of the mesh's vertices in world space
func (m *Mesh) Centroid() math3d.Vec3 {
	var sum math3d.Vec3
	for _, v := range m.vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(m.vertices)))
}

// Summary counts the geometry in a scene
type Summary struct {
	Meshes   int
	Vertices int
	Edges    int
}

// Stats summarises the given meshes
func Stats(meshes []*Mesh) Summary {
	s := Summary{Meshes: len(meshes)}
	for _, m := range meshes {
		s.Vertices += len(m.vertices)
		s.Edges += len(m.edges)
	}
	return s
}
