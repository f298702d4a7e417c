package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance)
	assert.InDelta(t, want.Y, got.Y, tolerance)
	assert.InDelta(t, want.Z, got.Z, tolerance)
}

func TestRotationRoundTrip(t *testing.T) {
	points := []Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: -2, Z: 3.25},
		{X: -7, Y: 4, Z: -1},
	}
	angles := []float64{0, 1e-6, 0.01, 0.45, 1, math.Pi, 2 * math.Pi, 3 * math.Pi, -math.Pi / 2}
	axes := map[string]func(Vec3, float64) Vec3{
		"x": Vec3.RotateX,
		"y": Vec3.RotateY,
		"z": Vec3.RotateZ,
	}

	for name, rotate := range axes {
		for _, p := range points {
			for _, a := range angles {
				got := rotate(rotate(p, a), -a)
				assertVecNear(t, p, got)
			}
		}
		t.Run(name+" preserves length", func(t *testing.T) {
			p := Vec3{X: 1, Y: 2, Z: 3}
			r := rotate(p, 0.7)
			assert.InDelta(t, length(p), length(r), tolerance)
		})
	}
}

func TestRotateQuarterTurns(t *testing.T) {
	assertVecNear(t, Vec3{X: 0, Y: 0, Z: 1}, Vec3{Y: 1}.RotateX(math.Pi/2))
	assertVecNear(t, Vec3{X: 0, Y: 0, Z: -1}, Vec3{X: 1}.RotateY(math.Pi/2))
	assertVecNear(t, Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 1}.RotateZ(math.Pi/2))
}

func TestRotationOrderMatters(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}
	xyz := p.RotateX(0.5).RotateY(0.8).RotateZ(0.3)
	zyx := p.RotateZ(0.3).RotateY(0.8).RotateX(0.5)
	assert.NotEqual(t, xyz, zyx)
}

func TestProjectHeadOn(t *testing.T) {
	pr := Projector{Focal: 5, Scale: 100, Epsilon: 0.001}
	sp := pr.Project(Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	assert.InDelta(t, 45.4545, sp.X, 1e-3)
	assert.InDelta(t, 45.4545, sp.Y, 1e-3)

	origin := pr.Project(Vec3{})
	assert.Equal(t, ScreenPoint{}, origin)
}

func TestProjectNearPlaneStaysFinite(t *testing.T) {
	pr := Projector{Focal: 5, Scale: 100, Epsilon: 0.001}
	for _, z := range []float64{-5, -5.0000001, -4.9999999, -6, -100} {
		sp := pr.Project(Vec3{X: 1, Y: -1, Z: z})
		assert.False(t, math.IsInf(sp.X, 0) || math.IsNaN(sp.X), "z=%v", z)
		assert.False(t, math.IsInf(sp.Y, 0) || math.IsNaN(sp.Y), "z=%v", z)
	}

	// At or behind the eye the denominator is pinned to epsilon
	sp := pr.Project(Vec3{X: 1, Y: 1, Z: -5})
	assert.InDelta(t, 1*5/0.001*100, sp.X, 1e-6)
	assert.Equal(t, sp, pr.Project(Vec3{X: 1, Y: 1, Z: -50}))
}

func TestViewportOffScreen(t *testing.T) {
	vp := Viewport{Width: 1200, Height: 800, Multiplier: 8}
	lx, ly := vp.Limits()
	assert.Equal(t, 4800.0, lx)
	assert.Equal(t, 3200.0, ly)

	assert.False(t, vp.OffScreen(ScreenPoint{X: 0, Y: 0}))
	assert.False(t, vp.OffScreen(ScreenPoint{X: 4799, Y: -3199}))
	assert.False(t, vp.OffScreen(ScreenPoint{X: -4800, Y: 3200}))
	assert.True(t, vp.OffScreen(ScreenPoint{X: 6000, Y: 0}))
	assert.True(t, vp.OffScreen(ScreenPoint{X: 0, Y: -3201}))
}

func TestViewportOffScreenNaN(t *testing.T) {
	vp := Viewport{Width: 1200, Height: 800, Multiplier: 8}
	nan := math.NaN()
	assert.True(t, vp.OffScreen(ScreenPoint{X: nan, Y: 0}))
	assert.True(t, vp.OffScreen(ScreenPoint{X: 0, Y: nan}))

	sp := Projector{Focal: math.Inf(1), Scale: 100, Epsilon: 0.001}.Project(Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	assert.True(t, vp.OffScreen(sp))
}

func TestScreenPointAdd(t *testing.T) {
	assert.Equal(t, ScreenPoint{X: 3, Y: -1}, ScreenPoint{X: 1, Y: 1}.Add(2, -2))
}

func length(v Vec3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
