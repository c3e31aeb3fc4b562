// Package gfx renders the script's scene: labelled textures drawn as quads
// under a perspective camera looking down the -Z axis.
package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults.
const (
	FieldOfView = 45.0 // degrees, vertical
	NearPlane   = 0.1
	FarPlane    = 100.0
)

// DefaultCameraZ is the camera distance before the script sets one.
const DefaultCameraZ = 3.0

// Camera holds the eye position and viewport size.
type Camera struct {
	Position      mgl32.Vec3
	Width, Height int
}

// NewCamera returns a camera at the default distance with no viewport.
func NewCamera() Camera {
	return Camera{Position: mgl32.Vec3{0, 0, DefaultCameraZ}}
}

// SetViewport records the drawable size in pixels.
func (c *Camera) SetViewport(width, height int) {
	c.Width, c.Height = width, height
}

// SetPosition moves the eye.
func (c *Camera) SetPosition(x, y, z float32) {
	c.Position = mgl32.Vec3{x, y, z}
}

func (c Camera) aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Projection returns the perspective matrix for the current viewport.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), c.aspect(), NearPlane, FarPlane)
}

// View returns the inverse of the camera translation.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
}

// MVP returns projection * view * model for a quad centred at (x, y, z).
func (c Camera) MVP(x, y, z float32) mgl32.Mat4 {
	return c.Projection().Mul4(c.View()).Mul4(mgl32.Translate3D(x, y, z))
}

// Unproject maps a screen pixel (origin top-left) to the point where the
// picking ray crosses the z=0 plane.
func (c Camera) Unproject(sx, sy int) (float32, float32) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0
	}
	view, proj := c.View(), c.Projection()
	winX := float32(sx)
	winY := float32(c.Height - sy)

	near, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return 0, 0
	}
	far, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return 0, 0
	}

	dir := far.Sub(near)
	if math.Abs(float64(dir.Z())) < 1e-9 {
		return near.X(), near.Y()
	}
	t := -near.Z() / dir.Z()
	hit := near.Add(dir.Mul(t))
	return hit.X(), hit.Y()
}
