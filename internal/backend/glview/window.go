// Package glview hosts the renderer in a glfw window and draws its lines with
// OpenGL 4.1.
package glview

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"wireview/internal/input"
	"wireview/internal/loop"
	"wireview/internal/render"
)

func init() {
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

// Options configures the window
type Options struct {
	Title         string
	Width, Height int
	Background    color.RGBA
	Interval      time.Duration
}

var keymap = map[glfw.Key]input.Key{
	glfw.KeyW:        input.PitchUp,
	glfw.KeyS:        input.PitchDown,
	glfw.KeyA:        input.YawLeft,
	glfw.KeyD:        input.YawRight,
	glfw.KeyQ:        input.RollLeft,
	glfw.KeyE:        input.RollRight,
	glfw.KeyUp:       input.ZoomIn,
	glfw.KeyDown:     input.ZoomOut,
	glfw.KeyLeft:     input.PanLeft,
	glfw.KeyRight:    input.PanRight,
	glfw.KeyPageUp:   input.PanUp,
	glfw.KeyPageDown: input.PanDown,
	glfw.KeyR:        input.Reset,
}

// Run opens the window and renders until it is closed, Escape is pressed or
// ctx is cancelled
func Run(ctx context.Context, r *render.Renderer, opts Options, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize gl: %w", err)
	}
	logger.Info("window opened", "opengl", gl.GoStr(gl.GetString(gl.VERSION)),
		"width", opts.Width, "height", opts.Height)

	// The pacer owns the frame cadence
	glfw.SwapInterval(0)

	bindKeys(window, r.Keys())

	lines, err := newLineBatch(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer lines.delete()

	bg := opts.Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)

	lastTitle := glfw.GetTime()
	frameCount := 0

	err = loop.NewPacer(opts.Interval).Run(ctx, func() bool {
		glfw.PollEvents()
		if window.ShouldClose() {
			return false
		}

		fbWidth, fbHeight := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		lines.draw(r.Frame())
		window.SwapBuffers()

		// Telemetry in the title, refreshed once a second
		frameCount++
		if now := glfw.GetTime(); now-lastTitle >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d", render.Title(opts.Title, r.Camera(), r.Stats()), frameCount))
			frameCount = 0
			lastTitle = now
		}
		return true
	})
	logger.Info("window closed")
	return err
}

// bindKeys feeds key events into keys. glfw delivers them from PollEvents, so
// they never interleave with a frame.
func bindKeys(window *glfw.Window, keys *input.HeldKeys) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		k, ok := keymap[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			keys.Press(k)
		case glfw.Release:
			keys.Release(k)
		}
	})
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			keys.Clear()
		}
	})
}

// lineBatch streams one frame of coloured lines to the GPU
type lineBatch struct {
	program    uint32
	vao, vbo   uint32
	projection mgl32.Mat4
	vertices   []float32
}

// floats per vertex: x, y, r, g, b, a
const vertexStride = 6

func newLineBatch(width, height int) (*lineBatch, error) {
	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}
	b := &lineBatch{program: program}

	// Screen space is centred on the window with Y up
	halfW, halfH := float32(width)/2, float32(height)/2
	b.projection = mgl32.Ortho2D(-halfW, halfW, -halfH, halfH)

	gl.UseProgram(program)
	projUniform := gl.GetUniformLocation(program, gl.Str("projection\x00"))
	gl.UniformMatrix4fv(projUniform, 1, false, &b.projection[0])

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	posAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointer(posAttrib, 2, gl.FLOAT, false, vertexStride*4, gl.PtrOffset(0))

	colAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vc\x00")))
	gl.EnableVertexAttribArray(colAttrib)
	gl.VertexAttribPointer(colAttrib, 4, gl.FLOAT, false, vertexStride*4, gl.PtrOffset(2*4))

	return b, nil
}

// draw uploads the lines and draws them in order. Depth testing stays off so
// later lines paint over earlier ones.
func (b *lineBatch) draw(lines []render.Line) {
	if len(lines) == 0 {
		return
	}
	b.vertices = b.vertices[:0]
	for _, l := range lines {
		r, g, bl, a := float32(l.Color.R)/255, float32(l.Color.G)/255, float32(l.Color.B)/255, float32(l.Color.A)/255
		b.vertices = append(b.vertices,
			float32(l.A.X), float32(l.A.Y), r, g, bl, a,
			float32(l.B.X), float32(l.B.Y), r, g, bl, a,
		)
	}

	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.vertices)*4, gl.Ptr(b.vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(b.vertices)/vertexStride))
}

func (b *lineBatch) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.program)
}
