// Package input turns held keys into camera movement.
package input

import "wireview/internal/camera"

// Key is a continuous camera action bound to a physical key
type Key int

const (
	PitchUp Key = iota
	PitchDown
	YawLeft
	YawRight
	RollLeft
	RollRight
	ZoomIn
	ZoomOut
	PanLeft
	PanRight
	PanUp
	PanDown
	Reset

	numKeys
)

var keyNames = [numKeys]string{
	PitchUp:   "pitch-up",
	PitchDown: "pitch-down",
	YawLeft:   "yaw-left",
	YawRight:  "yaw-right",
	RollLeft:  "roll-left",
	RollRight: "roll-right",
	ZoomIn:    "zoom-in",
	ZoomOut:   "zoom-out",
	PanLeft:   "pan-left",
	PanRight:  "pan-right",
	PanUp:     "pan-up",
	PanDown:   "pan-down",
	Reset:     "reset",
}

// String returns the action name accepted by ParseKey
func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return "unknown"
	}
	return keyNames[k]
}

// Keys returns every action in declaration order
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// ParseKey looks up an action by its String form
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// KeySet is an immutable snapshot of held keys
type KeySet [numKeys]bool

// Has reports whether k was held
func (s KeySet) Has(k Key) bool {
	return k >= 0 && k < numKeys && s[k]
}

// SetOf builds a KeySet holding the given keys
func SetOf(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		if k >= 0 && k < numKeys {
			s[k] = true
		}
	}
	return s
}

// HeldKeys tracks which keys are down. Window callbacks press and release keys
// between frames; the renderer takes one Snapshot per frame. It is not safe for
// concurrent use.
type HeldKeys struct {
	held KeySet
}

// Press marks k as held
func (h *HeldKeys) Press(k Key) {
	if k >= 0 && k < numKeys {
		h.held[k] = true
	}
}

// Release marks k as no longer held
func (h *HeldKeys) Release(k Key) {
	if k >= 0 && k < numKeys {
		h.held[k] = false
	}
}

// Held reports whether k is down
func (h *HeldKeys) Held(k Key) bool { return h.held.Has(k) }

// Clear releases every key, e.g. when the window loses focus
func (h *HeldKeys) Clear() { h.held = KeySet{} }

// Snapshot copies the current set
func (h *HeldKeys) Snapshot() KeySet { return h.held }

// Mapper converts held keys into per-frame adjustments of the camera target
type Mapper struct {
	RotationSpeed float64
	ZoomSpeed     float64
	PanSpeed      float64
}

// Apply adds one increment per held key. Keys act independently, so opposite
// keys held together cancel out.
func (m Mapper) Apply(keys KeySet, cam *camera.Camera) {
	var rx, ry, rz, px, py float64
	if keys[PitchUp] {
		rx += m.RotationSpeed
	}
	if keys[PitchDown] {
		rx -= m.RotationSpeed
	}
	if keys[YawRight] {
		ry += m.RotationSpeed
	}
	if keys[YawLeft] {
		ry -= m.RotationSpeed
	}
	if keys[RollRight] {
		rz += m.RotationSpeed
	}
	if keys[RollLeft] {
		rz -= m.RotationSpeed
	}
	cam.Rotate(rx, ry, rz)

	if keys[ZoomIn] {
		cam.Zoom(m.ZoomSpeed)
	}
	if keys[ZoomOut] {
		cam.Zoom(-m.ZoomSpeed)
	}

	if keys[PanRight] {
		px += m.PanSpeed
	}
	if keys[PanLeft] {
		px -= m.PanSpeed
	}
	if keys[PanUp] {
		py += m.PanSpeed
	}
	if keys[PanDown] {
		py -= m.PanSpeed
	}
	cam.Pan(px, py)

	if keys[Reset] {
		cam.Reset()
	}
}
