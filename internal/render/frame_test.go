package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"wireview/internal/camera"
	"wireview/internal/input"
	"wireview/internal/math3d"
	"wireview/internal/scene"
)

var opts = Options{
	Projector: math3d.Projector{Focal: 5, Scale: 100, Epsilon: 0.001},
	Viewport:  math3d.Viewport{Width: 1200, Height: 800, Multiplier: 8},
	Mapper:    input.Mapper{RotationSpeed: 0.01, ZoomSpeed: 0.1, PanSpeed: 5},
}

func headOn(blend float64) *camera.Camera {
	return camera.New(camera.State{Zoom: 1}, blend, 0.1)
}

// recorder is a Canvas that keeps every instruction it receives
type recorder struct {
	lines []Line
}

func (r *recorder) DrawLine(a, b math3d.ScreenPoint, c color.RGBA) {
	r.lines = append(r.lines, Line{A: a, B: b, Color: c})
}

func translated(name string, m *scene.Mesh, offset math3d.Vec3, col color.RGBA) *scene.Mesh {
	verts := make([]math3d.Vec3, m.NumVertices())
	for i, v := range m.Vertices() {
		verts[i] = v.Add(offset)
	}
	return scene.MustMesh(name, verts, m.Edges(), col)
}

func TestHeadOnCube(t *testing.T) {
	r := New([]*scene.Mesh{scene.Cube(1, colornames.Black)}, headOn(0.12), &input.HeldKeys{}, opts)

	lines := r.Frame()
	require.Len(t, lines, 12)
	assert.Equal(t, FrameStats{Meshes: 1, Lines: 12, Culled: 0}, r.Stats())

	// Edge 5 runs from (0.5, 0.5, -0.5) to (0.5, 0.5, 0.5)
	far := lines[5].B
	assert.InDelta(t, 45.4545, far.X, 1e-3)
	assert.InDelta(t, 45.4545, far.Y, 1e-3)
	near := lines[5].A
	assert.InDelta(t, 55.5556, near.X, 1e-3)

	for _, l := range lines {
		assert.Equal(t, colornames.Black, l.Color)
	}
}

func TestPanIsAppliedAfterProjection(t *testing.T) {
	cam := headOn(1)
	cam.Pan(10, -20)
	r := New([]*scene.Mesh{scene.Cube(1, colornames.Black)}, cam, &input.HeldKeys{}, opts)

	lines := r.Frame()
	require.Len(t, lines, 12)
	assert.InDelta(t, 45.4545+10, lines[5].B.X, 1e-3)
	assert.InDelta(t, 45.4545-20, lines[5].B.Y, 1e-3)
}

func TestFarthestMeshDrawnFirst(t *testing.T) {
	cube := scene.Cube(1, colornames.Black)
	near := translated("near", cube, math3d.Vec3{Z: -2}, colornames.Red)
	far := translated("far", cube, math3d.Vec3{Z: 3}, colornames.Blue)
	r := New([]*scene.Mesh{near, far}, headOn(0.12), &input.HeldKeys{}, opts)

	lines := r.Frame()
	require.Len(t, lines, 24)
	for i, l := range lines {
		if i < 12 {
			assert.Equal(t, colornames.Blue, l.Color, "line %d", i)
		} else {
			assert.Equal(t, colornames.Red, l.Color, "line %d", i)
		}
	}
	assert.Equal(t, []*scene.Mesh{near, far}, r.Meshes(), "scene order must not change")
}

func TestEqualDepthKeepsSceneOrder(t *testing.T) {
	cube := scene.Cube(1, colornames.Black)
	first := translated("first", cube, math3d.Vec3{X: -2}, colornames.Red)
	second := translated("second", cube, math3d.Vec3{X: 2}, colornames.Green)
	third := translated("third", cube, math3d.Vec3{Y: 2}, colornames.Blue)

	view := camera.State{Zoom: 1}
	require.Equal(t, MeanDepth(first, view), MeanDepth(second, view))
	require.Equal(t, MeanDepth(first, view), MeanDepth(third, view))

	r := New([]*scene.Mesh{first, second, third}, headOn(0.12), &input.HeldKeys{}, opts)
	for frame := 0; frame < 5; frame++ {
		lines := r.Frame()
		require.Len(t, lines, 36)
		assert.Equal(t, colornames.Red, lines[0].Color)
		assert.Equal(t, colornames.Green, lines[12].Color)
		assert.Equal(t, colornames.Blue, lines[24].Color)
	}
}

func TestOffScreenEdgesAreCulled(t *testing.T) {
	// At z = 0 the projection multiplies x by Scale, so x = 60 lands at 10x
	// the 600px half width and x = 47.9 just inside the 8x threshold
	verts := []math3d.Vec3{{}, {X: 60}, {X: 47.9}, {Y: 1}}
	edges := []scene.Edge{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 3}, {A: 2, B: 3}}
	m := scene.MustMesh("spikes", verts, edges, colornames.Black)
	r := New([]*scene.Mesh{m}, headOn(0.12), &input.HeldKeys{}, opts)

	lines := r.Frame()
	assert.Equal(t, FrameStats{Meshes: 1, Lines: 2, Culled: 2}, r.Stats())
	require.Len(t, lines, 2)
	assert.InDelta(t, 4790, lines[0].B.X, 1e-6)
	assert.InDelta(t, 4790, lines[1].A.X, 1e-6)
}

func TestBehindCameraIsCulledNotInfinite(t *testing.T) {
	verts := []math3d.Vec3{{X: 1, Z: -5}, {X: 1, Z: -6}, {X: 0.1, Z: 0}}
	m := scene.MustMesh("behind", verts, []scene.Edge{{A: 0, B: 1}, {A: 0, B: 2}, {A: 2, B: 2}}, colornames.Black)
	r := New([]*scene.Mesh{m}, headOn(0.12), &input.HeldKeys{}, opts)

	lines := r.Frame()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, r.Stats().Culled)
}

func TestFrameAppliesHeldKeys(t *testing.T) {
	keys := &input.HeldKeys{}
	cam := camera.New(camera.State{RotationX: 0.45, RotationY: 3.11, Zoom: 0.34}, 0.12, 0.1)
	r := New(scene.Suburb(), cam, keys, opts)

	keys.Press(input.ZoomOut)
	for i := 0; i < 10; i++ {
		r.Frame()
		assert.GreaterOrEqual(t, cam.Current().Zoom, 0.1)
	}
	assert.Equal(t, 0.1, cam.Target().Zoom)

	keys.Release(input.ZoomOut)
	for i := 0; i < 150; i++ {
		r.Frame()
		require.GreaterOrEqual(t, cam.Current().Zoom, 0.1)
	}
	assert.InDelta(t, 0.1, cam.Current().Zoom, 1e-6)

	keys.Press(input.PitchUp)
	keys.Press(input.YawLeft)
	before := cam.Target()
	r.Frame()
	after := cam.Target()
	assert.InDelta(t, before.RotationX+0.01, after.RotationX, 1e-12)
	assert.InDelta(t, before.RotationY-0.01, after.RotationY, 1e-12)
}

func TestRenderDrawsInFrameOrder(t *testing.T) {
	cube := scene.Cube(1, colornames.Black)
	meshes := []*scene.Mesh{
		translated("a", cube, math3d.Vec3{Z: -1}, colornames.Red),
		translated("b", cube, math3d.Vec3{Z: 1}, colornames.Green),
	}
	r := New(meshes, headOn(0.12), &input.HeldKeys{}, opts)

	rec := &recorder{}
	stats := r.Render(rec)
	assert.Equal(t, 24, stats.Lines)
	require.Len(t, rec.lines, 24)
	assert.Equal(t, colornames.Green, rec.lines[0].Color)
	assert.Equal(t, colornames.Red, rec.lines[23].Color)
}

func TestSuburbDefaultViewDrawsSomething(t *testing.T) {
	cam := camera.New(camera.State{RotationX: 0.45, RotationY: 3.11, Zoom: 0.34}, 0.12, 0.1)
	r := New(scene.Suburb(), cam, &input.HeldKeys{}, opts)
	r.Frame()
	s := r.Stats()
	assert.Equal(t, 88, s.Meshes)
	assert.Positive(t, s.Lines)
}

func TestNaNProjectionIsCulled(t *testing.T) {
	o := opts
	o.Projector.Focal = math.Inf(1)
	r := New([]*scene.Mesh{scene.Cube(1, colornames.Black)}, headOn(0.12), &input.HeldKeys{}, o)

	assert.Empty(t, r.Frame())
	assert.Equal(t, FrameStats{Meshes: 1, Lines: 0, Culled: 12}, r.Stats())
}
