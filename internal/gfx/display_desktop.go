//go:build !android

package gfx

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// ContextWindow is a window whose GL context can move to the calling thread.
type ContextWindow interface {
	glue.Window
	MakeContextCurrent()
	DetachContext()
	SwapBuffers()
}

// Display draws with OpenGL 4.1 core into a ContextWindow. All methods must
// run on the worker thread.
type Display struct {
	assets glue.AssetSource
	logger *slog.Logger

	win    ContextWindow
	camera Camera

	prog uint32
	vao  uint32
	vbo  uint32
	uMVP int32
	uTex int32

	textures map[string]uint32
}

// NewDisplay returns a display that loads textures from assets.
func NewDisplay(assets glue.AssetSource, logger *slog.Logger) *Display {
	return &Display{
		assets:   assets,
		logger:   logging.Component(logger, "gfx"),
		camera:   NewCamera(),
		textures: make(map[string]uint32),
	}
}

// Init makes w's context current on this thread and builds the GL state.
func (d *Display) Init(w glue.Window) error {
	if d.win != nil {
		return nil
	}
	cw, ok := w.(ContextWindow)
	if !ok {
		return fmt.Errorf("window %T has no GL context", w)
	}
	cw.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		cw.DetachContext()
		return fmt.Errorf("gl init: %w", err)
	}

	prog, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		cw.DetachContext()
		return fmt.Errorf("quad program: %w", err)
	}
	d.prog = prog
	d.uMVP = gl.GetUniformLocation(prog, gl.Str("uMVP\x00"))
	d.uTex = gl.GetUniformLocation(prog, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, quadStride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, quadStride, glOffset(2*4))
	gl.BindVertexArray(0)

	width, height := cw.Size()
	gl.Viewport(0, 0, int32(width), int32(height))
	d.camera.SetViewport(width, height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	d.win = cw
	d.logger.Info("display initialised",
		"width", width, "height", height,
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// Terminate releases GL objects and detaches the context. The camera
// survives so a re-initialised display keeps the script's view.
func (d *Display) Terminate() {
	if d.win == nil {
		return
	}
	for label, tex := range d.textures {
		gl.DeleteTextures(1, &tex)
		delete(d.textures, label)
	}
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.prog)
	d.win.DetachContext()
	d.win = nil
	d.logger.Info("display terminated")
}

// Ready reports whether Init succeeded and Terminate has not run since.
func (d *Display) Ready() bool { return d.win != nil }

// SwapBuffers presents the frame.
func (d *Display) SwapBuffers() {
	if d.win != nil {
		d.win.SwapBuffers()
	}
}

// CacheTexture decodes path from the assets and uploads it under label.
func (d *Display) CacheTexture(label, path string) error {
	if d.win == nil {
		return fmt.Errorf("cache texture %q: no display", label)
	}
	data, err := d.assets.ReadBinary(path)
	if err != nil {
		return fmt.Errorf("cache texture %q: %w", label, err)
	}
	img, err := DecodeTexture(data)
	if err != nil {
		return fmt.Errorf("cache texture %q: %w", label, err)
	}

	if old, ok := d.textures[label]; ok {
		gl.DeleteTextures(1, &old)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	d.textures[label] = tex
	d.logger.Debug("texture cached", "label", label, "path", path, "width", b.Dx(), "height", b.Dy())
	return nil
}

// Render draws the texture cached under label centred at (x, y, z).
func (d *Display) Render(label string, x, y, z float32) {
	if d.win == nil {
		return
	}
	tex, ok := d.textures[label]
	if !ok {
		d.logger.Debug("render of uncached texture", "label", label)
		return
	}
	mvp := d.camera.MVP(x, y, z)
	gl.UseProgram(d.prog)
	gl.UniformMatrix4fv(d.uMVP, 1, false, &mvp[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(d.uTex, 0)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// SetCamera moves the eye.
func (d *Display) SetCamera(x, y, z float32) { d.camera.SetPosition(x, y, z) }

// ScreenDimensions returns the viewport size in pixels.
func (d *Display) ScreenDimensions() (int, int) { return d.camera.Width, d.camera.Height }

// Unproject maps a screen pixel onto the z=0 plane.
func (d *Display) Unproject(x, y int) (float32, float32) { return d.camera.Unproject(x, y) }

// ClearScreen fills the frame with an opaque colour.
func (d *Display) ClearScreen(r, g, b float32) {
	if d.win == nil {
		return
	}
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
