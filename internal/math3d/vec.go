package math3d

import "math"

// Vec3 is a point in world or view space
type Vec3 struct {
	X, Y, Z float64
}

// ScreenPoint is a projected point. The origin is the viewport centre and Y points up.
type ScreenPoint struct {
	X, Y float64
}

// Add offsets the point by dx, dy
func (p ScreenPoint) Add(dx, dy float64) ScreenPoint {
	return ScreenPoint{X: p.X + dx, Y: p.Y + dy}
}

// RotateX rotates the vector around the X axis
func (v Vec3) RotateX(angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// RotateY rotates the vector around the Y axis
func (v Vec3) RotateY(angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// RotateZ rotates the vector around the Z axis
func (v Vec3) RotateZ(angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// Scale scales the vector uniformly
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Projector is a pinhole projection with a fixed focal distance.
//
// Focal is the distance from the eye to the projection plane and Scale converts
// projected units to pixels. Epsilon floors the perspective denominator so points
// at or behind the eye land far away instead of at infinity.
type Projector struct {
	Focal   float64
	Scale   float64
	Epsilon float64
}

// Project projects the view-space point to screen coordinates
func (pr Projector) Project(v Vec3) ScreenPoint {
	denom := math.Max(pr.Focal+v.Z, pr.Epsilon)
	return ScreenPoint{
		X: v.X * pr.Focal / denom * pr.Scale,
		Y: v.Y * pr.Focal / denom * pr.Scale,
	}
}

// Viewport describes the visible area and how far outside it geometry may reach
// before it is culled. Multiplier is applied to each half extent.
type Viewport struct {
	Width, Height int
	Multiplier    float64
}

// Limits returns the absolute screen coordinates beyond which points are off-screen
func (vp Viewport) Limits() (x, y float64) {
	return vp.Multiplier * float64(vp.Width) / 2, vp.Multiplier * float64(vp.Height) / 2
}

// OffScreen reports whether p lies beyond the cull threshold on either axis.
// A NaN coordinate is always off-screen.
func (vp Viewport) OffScreen(p ScreenPoint) bool {
	lx, ly := vp.Limits()
	return !(math.Abs(p.X) <= lx) || !(math.Abs(p.Y) <= ly)
}
