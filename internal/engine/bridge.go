package engine

import (
	"fmt"
)

// The methods below are the native side of process.natives. They run on the
// worker thread from inside script calls.

// ReadAsset implements script.Bridge.
func (e *Engine) ReadAsset(name string) ([]byte, error) {
	if e.app == nil || e.app.Assets() == nil {
		return nil, fmt.Errorf("read asset %q: no assets", name)
	}
	return e.app.Assets().ReadBinary(name)
}

// CacheTexture implements script.Bridge.
func (e *Engine) CacheTexture(label, path string) error {
	return e.display.CacheTexture(label, path)
}

// Render implements script.Bridge.
func (e *Engine) Render(label string, x, y, z float32) {
	e.display.Render(label, x, y, z)
}

// SetCamera implements script.Bridge.
func (e *Engine) SetCamera(x, y, z float32) {
	e.display.SetCamera(x, y, z)
}

// ScreenDimensions implements script.Bridge.
func (e *Engine) ScreenDimensions() (int, int) {
	return e.display.ScreenDimensions()
}

// ClearScreen implements script.Bridge.
func (e *Engine) ClearScreen(r, g, b float32) {
	e.display.ClearScreen(r, g, b)
}

// Unproject implements script.Bridge.
func (e *Engine) Unproject(x, y int) (float32, float32) {
	return e.display.Unproject(x, y)
}

// CacheSound implements script.Bridge.
func (e *Engine) CacheSound(tag, path string) error {
	return e.audio.CacheSound(tag, path)
}

// PlaySound implements script.Bridge.
func (e *Engine) PlaySound() {
	e.audio.PlayAction()
}
