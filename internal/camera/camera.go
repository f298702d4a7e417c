// Package camera implements the eased orbit camera used by the viewer.
//
// A Camera keeps two States: the target, which input adjusts directly, and the
// current state used for drawing, which moves a fixed fraction of the remaining
// distance toward the target on every Step.
package camera

import (
	"math"

	"wireview/internal/math3d"
)

// State is a camera orientation, zoom and screen-space pan
type State struct {
	RotationX, RotationY, RotationZ float64
	Zoom                            float64
	PanX, PanY                      float64
}

// Apply rotates p about X, then Y, then Z and scales it by the zoom
func (s State) Apply(p math3d.Vec3) math3d.Vec3 {
	return p.RotateX(s.RotationX).RotateY(s.RotationY).RotateZ(s.RotationZ).Scale(s.Zoom)
}

// Camera eases a current State toward a target State
type Camera struct {
	current  State
	target   State
	defaults State
	blend    float64
	minZoom  float64
}

// New returns a camera resting at defaults. blend must be in (0, 1] and minZoom
// positive; config.Validate enforces both.
func New(defaults State, blend, minZoom float64) *Camera {
	defaults.Zoom = math.Max(defaults.Zoom, minZoom)
	return &Camera{
		current:  defaults,
		target:   defaults,
		defaults: defaults,
		blend:    blend,
		minZoom:  minZoom,
	}
}

// Current is the eased state used for drawing
func (c *Camera) Current() State { return c.current }

// Target is the state input steers toward
func (c *Camera) Target() State { return c.target }

// Defaults is the state Reset returns to
func (c *Camera) Defaults() State { return c.defaults }

// MinZoom is the floor for both current and target zoom
func (c *Camera) MinZoom() float64 { return c.minZoom }

// Step moves every field of the current state toward the target
func (c *Camera) Step() {
	cur, tgt := &c.current, c.target
	cur.RotationX += (tgt.RotationX - cur.RotationX) * c.blend
	cur.RotationY += (tgt.RotationY - cur.RotationY) * c.blend
	cur.RotationZ += (tgt.RotationZ - cur.RotationZ) * c.blend
	cur.Zoom += (tgt.Zoom - cur.Zoom) * c.blend
	cur.PanX += (tgt.PanX - cur.PanX) * c.blend
	cur.PanY += (tgt.PanY - cur.PanY) * c.blend

	cur.Zoom = math.Max(cur.Zoom, c.minZoom)
}

// Rotate adds to the target rotation angles
func (c *Camera) Rotate(dx, dy, dz float64) {
	c.target.RotationX += dx
	c.target.RotationY += dy
	c.target.RotationZ += dz
}

// Zoom adds delta to the target zoom, never letting it drop below the minimum
func (c *Camera) Zoom(delta float64) {
	c.target.Zoom = math.Max(c.minZoom, c.target.Zoom+delta)
}

// Pan adds to the target screen offset
func (c *Camera) Pan(dx, dy float64) {
	c.target.PanX += dx
	c.target.PanY += dy
}

// Reset sends the target back to the defaults. The current state follows over
// the next frames.
func (c *Camera) Reset() {
	c.target = c.defaults
}
