// Package render runs the per-frame wireframe pipeline: input, camera easing,
// back-to-front mesh ordering, projection and culling.
package render

import (
	"cmp"
	"image/color"
	"slices"

	"wireview/internal/camera"
	"wireview/internal/input"
	"wireview/internal/math3d"
	"wireview/internal/scene"
)

// Line is one draw instruction. Lines must be drawn in the order they are
// emitted so that nearer meshes paint over farther ones.
type Line struct {
	A, B  math3d.ScreenPoint
	Color color.RGBA
}

// Canvas receives draw instructions in screen space
type Canvas interface {
	DrawLine(a, b math3d.ScreenPoint, c color.RGBA)
}

// FrameStats describes the last frame
type FrameStats struct {
	Meshes int
	Lines  int
	Culled int
}

// Options configures a Renderer
type Options struct {
	Projector math3d.Projector
	Viewport  math3d.Viewport
	Mapper    input.Mapper
}

type depthEntry struct {
	mesh  *scene.Mesh
	depth float64
}

// Renderer owns the camera and held-key state for one view of a scene
type Renderer struct {
	meshes []*scene.Mesh
	cam    *camera.Camera
	keys   *input.HeldKeys
	opts   Options

	order []depthEntry
	lines []Line
	stats FrameStats
}

// New creates a renderer for meshes. The meshes are never modified.
func New(meshes []*scene.Mesh, cam *camera.Camera, keys *input.HeldKeys, opts Options) *Renderer {
	return &Renderer{
		meshes: meshes,
		cam:    cam,
		keys:   keys,
		opts:   opts,
		order:  make([]depthEntry, 0, len(meshes)),
	}
}

// Camera returns the renderer's camera. Callers outside the frame loop should
// only read from it.
func (r *Renderer) Camera() *camera.Camera { return r.cam }

// Keys returns the held-key set fed by the host window
func (r *Renderer) Keys() *input.HeldKeys { return r.keys }

// Meshes returns the scene in its original order
func (r *Renderer) Meshes() []*scene.Mesh { return r.meshes }

// Stats returns the statistics of the last frame
func (r *Renderer) Stats() FrameStats { return r.stats }

// Frame advances the camera by one tick and returns the frame's draw
// instructions. The returned slice is reused by the next call.
func (r *Renderer) Frame() []Line {
	r.opts.Mapper.Apply(r.keys.Snapshot(), r.cam)
	r.cam.Step()

	view := r.cam.Current()
	r.lines = r.lines[:0]
	r.stats = FrameStats{Meshes: len(r.meshes)}

	for _, e := range r.sortByDepth(view) {
		r.emit(e.mesh, view)
	}
	r.stats.Lines = len(r.lines)
	return r.lines
}

// Render runs one frame and draws it onto c
func (r *Renderer) Render(c Canvas) FrameStats {
	for _, l := range r.Frame() {
		c.DrawLine(l.A, l.B, l.Color)
	}
	return r.stats
}

// sortByDepth orders meshes farthest first by the mean view-space Z of their
// vertices. Equal depths keep scene order.
func (r *Renderer) sortByDepth(view camera.State) []depthEntry {
	r.order = r.order[:0]
	for _, m := range r.meshes {
		r.order = append(r.order, depthEntry{mesh: m, depth: MeanDepth(m, view)})
	}
	slices.SortStableFunc(r.order, func(a, b depthEntry) int {
		return cmp.Compare(b.depth, a.depth)
	})
	return r.order
}

func (r *Renderer) emit(m *scene.Mesh, view camera.State) {
	pr, vp := r.opts.Projector, r.opts.Viewport
	for _, e := range m.Edges() {
		a := pr.Project(view.Apply(m.Vertex(e.A)))
		b := pr.Project(view.Apply(m.Vertex(e.B)))
		if vp.OffScreen(a) || vp.OffScreen(b) {
			r.stats.Culled++
			continue
		}
		r.lines = append(r.lines, Line{
			A:     a.Add(view.PanX, view.PanY),
			B:     b.Add(view.PanX, view.PanY),
			Color: m.Color(),
		})
	}
}

// MeanDepth is the average Z of the mesh's vertices after the camera transform
func MeanDepth(m *scene.Mesh, view camera.State) float64 {
	var sum float64
	for _, v := range m.Vertices() {
		sum += view.Apply(v).Z
	}
	return sum / float64(m.NumVertices())
}
