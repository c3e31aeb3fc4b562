//go:build android

package gfx

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/mobile/gl"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// Surface is the activity window as seen by the display: the GL ES context
// handed out by the app driver and a way to publish the back buffer.
type Surface interface {
	glue.Window
	GL() gl.Context
	Publish()
}

// Display draws with GL ES 2.0 through an x/mobile context. All methods
// must run on the worker thread.
type Display struct {
	assets glue.AssetSource
	logger *slog.Logger

	surface Surface
	glctx   gl.Context
	camera  Camera

	prog gl.Program
	vbo  gl.Buffer
	aPos gl.Attrib
	aUV  gl.Attrib
	uMVP gl.Uniform
	uTex gl.Uniform

	textures map[string]gl.Texture
}

// NewDisplay returns a display that loads textures from assets.
func NewDisplay(assets glue.AssetSource, logger *slog.Logger) *Display {
	return &Display{
		assets:   assets,
		logger:   logging.Component(logger, "gfx"),
		camera:   NewCamera(),
		textures: make(map[string]gl.Texture),
	}
}

// Init builds the GL state on w's context.
func (d *Display) Init(w glue.Window) error {
	if d.surface != nil {
		return nil
	}
	s, ok := w.(Surface)
	if !ok {
		return fmt.Errorf("window %T has no GL context", w)
	}
	glctx := s.GL()

	prog, err := linkProgram(glctx, quadVertSrcES, quadFragSrcES)
	if err != nil {
		return fmt.Errorf("quad program: %w", err)
	}
	d.prog = prog
	d.aPos = glctx.GetAttribLocation(prog, "aPos")
	d.aUV = glctx.GetAttribLocation(prog, "aUV")
	d.uMVP = glctx.GetUniformLocation(prog, "uMVP")
	d.uTex = glctx.GetUniformLocation(prog, "uTex")

	d.vbo = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(quadVertices), gl.STATIC_DRAW)

	width, height := s.Size()
	glctx.Viewport(0, 0, width, height)
	d.camera.SetViewport(width, height)
	glctx.Disable(gl.DEPTH_TEST)
	glctx.Enable(gl.BLEND)
	glctx.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	d.surface = s
	d.glctx = glctx
	d.logger.Info("display initialised", "width", width, "height", height)
	return nil
}

// Terminate releases GL objects. The camera survives re-initialisation.
func (d *Display) Terminate() {
	if d.surface == nil {
		return
	}
	for label, tex := range d.textures {
		d.glctx.DeleteTexture(tex)
		delete(d.textures, label)
	}
	d.glctx.DeleteBuffer(d.vbo)
	d.glctx.DeleteProgram(d.prog)
	d.surface = nil
	d.glctx = nil
	d.logger.Info("display terminated")
}

// Ready reports whether Init succeeded and Terminate has not run since.
func (d *Display) Ready() bool { return d.surface != nil }

// SwapBuffers publishes the frame.
func (d *Display) SwapBuffers() {
	if d.surface != nil {
		d.surface.Publish()
	}
}

// CacheTexture decodes path from the assets and uploads it under label.
func (d *Display) CacheTexture(label, path string) error {
	if d.surface == nil {
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
		d.glctx.DeleteTexture(old)
	}
	tex := d.glctx.CreateTexture()
	d.glctx.ActiveTexture(gl.TEXTURE0)
	d.glctx.BindTexture(gl.TEXTURE_2D, tex)
	d.glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	d.glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	d.glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	d.glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	b := img.Bounds()
	d.glctx.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA), b.Dx(), b.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	d.textures[label] = tex
	d.logger.Debug("texture cached", "label", label, "path", path, "width", b.Dx(), "height", b.Dy())
	return nil
}

// Render draws the texture cached under label centred at (x, y, z).
func (d *Display) Render(label string, x, y, z float32) {
	if d.surface == nil {
		return
	}
	tex, ok := d.textures[label]
	if !ok {
		d.logger.Debug("render of uncached texture", "label", label)
		return
	}
	const stride = quadStride
	mvp := d.camera.MVP(x, y, z)

	glctx := d.glctx
	glctx.UseProgram(d.prog)
	glctx.UniformMatrix4fv(d.uMVP, mvp[:])
	glctx.ActiveTexture(gl.TEXTURE0)
	glctx.BindTexture(gl.TEXTURE_2D, tex)
	glctx.Uniform1i(d.uTex, 0)
	glctx.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	glctx.EnableVertexAttribArray(d.aPos)
	glctx.VertexAttribPointer(d.aPos, 2, gl.FLOAT, false, stride, 0)
	glctx.EnableVertexAttribArray(d.aUV)
	glctx.VertexAttribPointer(d.aUV, 2, gl.FLOAT, false, stride, 2*4)
	glctx.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	glctx.DisableVertexAttribArray(d.aPos)
	glctx.DisableVertexAttribArray(d.aUV)
}

// SetCamera moves the eye.
func (d *Display) SetCamera(x, y, z float32) { d.camera.SetPosition(x, y, z) }

// ScreenDimensions returns the viewport size in pixels.
func (d *Display) ScreenDimensions() (int, int) { return d.camera.Width, d.camera.Height }

// Unproject maps a screen pixel onto the z=0 plane.
func (d *Display) Unproject(x, y int) (float32, float32) { return d.camera.Unproject(x, y) }

// ClearScreen fills the frame with an opaque colour.
func (d *Display) ClearScreen(r, g, b float32) {
	if d.surface == nil {
		return
	}
	d.glctx.ClearColor(r, g, b, 1)
	d.glctx.Clear(gl.COLOR_BUFFER_BIT)
}

func f32bytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func compileShader(glctx gl.Context, kind gl.Enum, src string) (gl.Shader, error) {
	sh := glctx.CreateShader(kind)
	glctx.ShaderSource(sh, src)
	glctx.CompileShader(sh)
	if glctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(sh)
		glctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("shader compile failed: %s", log)
	}
	return sh, nil
}

func linkProgram(glctx gl.Context, vertSrc, fragSrc string) (gl.Program, error) {
	vs, err := compileShader(glctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := compileShader(glctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		glctx.DeleteShader(vs)
		return gl.Program{}, err
	}
	prog := glctx.CreateProgram()
	glctx.AttachShader(prog, vs)
	glctx.AttachShader(prog, fs)
	glctx.LinkProgram(prog)
	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)
	if glctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(prog)
		glctx.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("program link failed: %s", log)
	}
	return prog, nil
}
