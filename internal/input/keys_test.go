package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wireview/internal/camera"
)

var (
	defaults = camera.State{RotationX: 0.45, RotationY: 3.11, Zoom: 0.34}
	mapper   = Mapper{RotationSpeed: 0.01, ZoomSpeed: 0.1, PanSpeed: 5}
)

func newCamera() *camera.Camera {
	return camera.New(defaults, 0.12, 0.1)
}

func TestHeldKeys(t *testing.T) {
	var h HeldKeys
	assert.False(t, h.Held(PitchUp))

	h.Press(PitchUp)
	h.Press(ZoomOut)
	h.Press(PitchUp)
	snap := h.Snapshot()
	assert.True(t, snap.Has(PitchUp))
	assert.True(t, snap.Has(ZoomOut))
	assert.False(t, snap.Has(PanLeft))

	h.Release(PitchUp)
	assert.False(t, h.Held(PitchUp))
	assert.True(t, snap.Has(PitchUp), "snapshots are independent of later events")

	h.Press(Key(-1))
	h.Release(numKeys + 3)
	assert.False(t, h.Snapshot().Has(Key(-1)))

	h.Clear()
	assert.Equal(t, KeySet{}, h.Snapshot())
}

func TestKeyNames(t *testing.T) {
	for _, k := range Keys() {
		got, ok := ParseKey(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKey("jump")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Key(99).String())
	assert.Len(t, Keys(), 13)
}

func TestMapperEachKey(t *testing.T) {
	tests := []struct {
		key  Key
		want func(s camera.State) camera.State
	}{
		{PitchUp, func(s camera.State) camera.State { s.RotationX += 0.01; return s }},
		{PitchDown, func(s camera.State) camera.State { s.RotationX -= 0.01; return s }},
		{YawRight, func(s camera.State) camera.State { s.RotationY += 0.01; return s }},
		{YawLeft, func(s camera.State) camera.State { s.RotationY -= 0.01; return s }},
		{RollRight, func(s camera.State) camera.State { s.RotationZ += 0.01; return s }},
		{RollLeft, func(s camera.State) camera.State { s.RotationZ -= 0.01; return s }},
		{ZoomIn, func(s camera.State) camera.State { s.Zoom += 0.1; return s }},
		{ZoomOut, func(s camera.State) camera.State { s.Zoom -= 0.1; return s }},
		{PanRight, func(s camera.State) camera.State { s.PanX += 5; return s }},
		{PanLeft, func(s camera.State) camera.State { s.PanX -= 5; return s }},
		{PanUp, func(s camera.State) camera.State { s.PanY += 5; return s }},
		{PanDown, func(s camera.State) camera.State { s.PanY -= 5; return s }},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			cam := newCamera()
			mapper.Apply(SetOf(tt.key), cam)
			want := tt.want(defaults)
			got := cam.Target()
			assert.InDelta(t, want.RotationX, got.RotationX, 1e-12)
			assert.InDelta(t, want.RotationY, got.RotationY, 1e-12)
			assert.InDelta(t, want.RotationZ, got.RotationZ, 1e-12)
			assert.InDelta(t, want.Zoom, got.Zoom, 1e-12)
			assert.InDelta(t, want.PanX, got.PanX, 1e-12)
			assert.InDelta(t, want.PanY, got.PanY, 1e-12)
			assert.Equal(t, defaults, cam.Current(), "input only moves the target")
		})
	}
}

func TestMapperSimultaneousAxes(t *testing.T) {
	cam := newCamera()
	mapper.Apply(SetOf(PitchUp, YawLeft), cam)

	got := cam.Target()
	assert.InDelta(t, defaults.RotationX+0.01, got.RotationX, 1e-12)
	assert.InDelta(t, defaults.RotationY-0.01, got.RotationY, 1e-12)
	assert.Equal(t, defaults.RotationZ, got.RotationZ)
	assert.Equal(t, defaults.Zoom, got.Zoom)
}

func TestMapperNoKeysNoDrift(t *testing.T) {
	cam := newCamera()
	mapper.Apply(SetOf(PanUp), cam)
	before := cam.Target()
	for i := 0; i < 10; i++ {
		mapper.Apply(KeySet{}, cam)
	}
	assert.Equal(t, before, cam.Target())
}

func TestMapperZoomOutFloor(t *testing.T) {
	cam := newCamera()
	for i := 0; i < 10; i++ {
		mapper.Apply(SetOf(ZoomOut), cam)
		cam.Step()
		assert.GreaterOrEqual(t, cam.Target().Zoom, 0.1)
		assert.GreaterOrEqual(t, cam.Current().Zoom, 0.1)
	}
	assert.Equal(t, 0.1, cam.Target().Zoom)

	for i := 0; i < 200; i++ {
		cam.Step()
		assert.GreaterOrEqual(t, cam.Current().Zoom, 0.1)
	}
	assert.InDelta(t, 0.1, cam.Current().Zoom, 1e-9)
}

func TestMapperReset(t *testing.T) {
	cam := newCamera()
	mapper.Apply(SetOf(PitchUp, ZoomIn, PanLeft), cam)
	assert.NotEqual(t, defaults, cam.Target())

	mapper.Apply(SetOf(Reset), cam)
	assert.Equal(t, defaults, cam.Target())

	// Reset wins over movement held in the same frame
	mapper.Apply(SetOf(Reset, YawRight), cam)
	assert.Equal(t, defaults, cam.Target())
}
