package scene

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"wireview/internal/math3d"
)

// Ridge selects the axis a prism roof's ridge runs along
type Ridge int

const (
	RidgeZ Ridge = iota
	RidgeX
)

// boxEdges are the 12 edges of a box whose first four vertices are the bottom
// face and last four the top face, both wound the same way
var boxEdges = []Edge{
	// Bottom face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Pillars
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Named looks up an SVG/CSS colour name such as "saddlebrown"
func Named(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[name]
	return c, ok
}

func mustNamed(name string) color.RGBA {
	c, ok := Named(name)
	if !ok {
		panic(fmt.Sprintf("unknown colour %q", name))
	}
	return c
}

func rect(cx, y, cz, halfW, halfD float64) []math3d.Vec3 {
	return []math3d.Vec3{
		{X: cx - halfW, Y: y, Z: cz - halfD},
		{X: cx + halfW, Y: y, Z: cz - halfD},
		{X: cx + halfW, Y: y, Z: cz + halfD},
		{X: cx - halfW, Y: y, Z: cz + halfD},
	}
}

// Box builds an axis-aligned box whose bottom face sits at baseY
func Box(name string, cx, baseY, cz, width, height, depth float64, col color.RGBA) *Mesh {
	vertices := append(rect(cx, baseY, cz, width/2, depth/2), rect(cx, baseY+height, cz, width/2, depth/2)...)
	return MustMesh(name, vertices, boxEdges, col)
}

// PrismRoof builds a triangular prism sitting on a width x depth rectangle at baseY
// with its ridge peakHeight above the base
func PrismRoof(name string, cx, baseY, cz, width, peakHeight, depth float64, ridge Ridge, col color.RGBA) *Mesh {
	halfW, halfD := width/2, depth/2
	top := baseY + peakHeight
	vertices := rect(cx, baseY, cz, halfW, halfD)

	var slopes []Edge
	switch ridge {
	case RidgeX:
		vertices = append(vertices,
			math3d.Vec3{X: cx - halfW, Y: top, Z: cz},
			math3d.Vec3{X: cx + halfW, Y: top, Z: cz},
		)
		slopes = []Edge{{0, 4}, {3, 4}, {1, 5}, {2, 5}}
	default:
		vertices = append(vertices,
			math3d.Vec3{X: cx, Y: top, Z: cz - halfD},
			math3d.Vec3{X: cx, Y: top, Z: cz + halfD},
		)
		slopes = []Edge{{0, 4}, {1, 4}, {2, 5}, {3, 5}}
	}

	edges := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	edges = append(edges, slopes...)
	edges = append(edges, Edge{4, 5})
	return MustMesh(name, vertices, edges, col)
}

// Cube builds a cube of the given edge length centred on the origin
func Cube(size float64, col color.RGBA) *Mesh {
	return Box("cube", 0, -size/2, 0, size, size, size, col)
}
