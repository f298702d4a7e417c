package scene

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"wireview/internal/math3d"
)

// LoadGLTF reads every mesh primitive in a .gltf or .glb file as a wireframe.
// Triangle primitives are reduced to their unique edges. A primitive's material
// base colour is used when present, otherwise fallback.
func LoadGLTF(path string, fallback color.RGBA, logger *slog.Logger) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var meshes []*Mesh
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			name := mesh.Name
			if name == "" {
				name = fmt.Sprintf("mesh%d", mi)
			}
			if len(mesh.Primitives) > 1 {
				name = fmt.Sprintf("%s.%d", name, pi)
			}

			m, err := loadPrimitive(doc, prim, name, fallback)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, name, err)
			}
			if m == nil {
				logger.Debug("skipping primitive", "mesh", name, "mode", prim.Mode)
				continue
			}
			meshes = append(meshes, m)
		}
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("%s: no drawable mesh primitives", path)
	}
	logger.Info("loaded model", "path", path, "meshes", len(meshes))
	return meshes, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, name string, fallback color.RGBA) (*Mesh, error) {
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var edges []Edge
	switch prim.Mode {
	case gltf.PrimitiveTriangles:
		edges = triangleEdges(indices)
	case gltf.PrimitiveTriangleStrip:
		edges = triangleEdges(stripToTriangles(indices))
	case gltf.PrimitiveTriangleFan:
		edges = triangleEdges(fanToTriangles(indices))
	case gltf.PrimitiveLines:
		edges = lineEdges(indices, 2, false)
	case gltf.PrimitiveLineStrip:
		edges = lineEdges(indices, 1, false)
	case gltf.PrimitiveLineLoop:
		edges = lineEdges(indices, 1, true)
	default:
		return nil, nil
	}

	vertices := make([]math3d.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = math3d.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
	}

	return NewMesh(name, vertices, edges, materialColor(doc, prim, fallback))
}

func materialColor(doc *gltf.Document, prim *gltf.Primitive, fallback color.RGBA) color.RGBA {
	if prim.Material == nil {
		return fallback
	}
	mat := doc.Materials[*prim.Material]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return fallback
	}
	c := mat.PBRMetallicRoughness.BaseColorFactor
	return color.RGBA{
		R: unitToByte(float64(c[0])),
		G: unitToByte(float64(c[1])),
		B: unitToByte(float64(c[2])),
		A: 0xff,
	}
}

func unitToByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 0xff
	}
	return uint8(f*255 + 0.5)
}

// triangleEdges returns the unique undirected edges of a triangle list in
// first-seen order
func triangleEdges(indices []uint32) []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	add := func(a, b uint32) {
		e := Edge{int(a), int(b)}
		if e.A > e.B {
			e.A, e.B = e.B, e.A
		}
		if e.A == e.B || seen[e] {
			return
		}
		seen[e] = true
		edges = append(edges, e)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return edges
}

// lineEdges pairs indices with the given stride: 2 for line lists, 1 for strips
func lineEdges(indices []uint32, stride int, loop bool) []Edge {
	var edges []Edge
	for i := 0; i+1 < len(indices); i += stride {
		edges = append(edges, Edge{int(indices[i]), int(indices[i+1])})
	}
	if loop && len(indices) > 2 {
		edges = append(edges, Edge{int(indices[len(indices)-1]), int(indices[0])})
	}
	return edges
}

func stripToTriangles(indices []uint32) []uint32 {
	var out []uint32
	for i := 0; i+2 < len(indices); i++ {
		out = append(out, indices[i], indices[i+1], indices[i+2])
	}
	return out
}

func fanToTriangles(indices []uint32) []uint32 {
	var out []uint32
	for i := 1; i+1 < len(indices); i++ {
		out = append(out, indices[0], indices[i], indices[i+1])
	}
	return out
}
