package gfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestUnprojectCentre(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
	}{
		{"default", 0, 0, DefaultCameraZ},
		{"offset", 2, -1, 5},
		{"far", -3, 4, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			c.SetViewport(800, 600)
			c.SetPosition(tt.x, tt.y, tt.z)
			gx, gy := c.Unproject(400, 300)
			if !near(gx, tt.x) || !near(gy, tt.y) {
				t.Fatalf("Unproject(centre) = (%v, %v), want (%v, %v)", gx, gy, tt.x, tt.y)
			}
		})
	}
}

func TestUnprojectEdges(t *testing.T) {
	c := NewCamera()
	c.SetViewport(600, 600)

	halfHeight := float32(DefaultCameraZ * math.Tan(FieldOfView/2*math.Pi/180))

	_, top := c.Unproject(300, 0)
	if !near(top, halfHeight) {
		t.Fatalf("top edge y = %v, want %v", top, halfHeight)
	}
	_, bottom := c.Unproject(300, 600)
	if !near(bottom, -halfHeight) {
		t.Fatalf("bottom edge y = %v, want %v", bottom, -halfHeight)
	}
	right, _ := c.Unproject(600, 300)
	if !near(right, halfHeight) {
		t.Fatalf("right edge x = %v, want %v (square viewport)", right, halfHeight)
	}
}

func TestUnprojectWithoutViewport(t *testing.T) {
	c := NewCamera()
	if x, y := c.Unproject(10, 10); x != 0 || y != 0 {
		t.Fatalf("Unproject without viewport = (%v, %v), want (0, 0)", x, y)
	}
}

func TestMVPCentresQuad(t *testing.T) {
	c := NewCamera()
	c.SetViewport(800, 600)
	c.SetPosition(1, 1, 4)

	clip := c.MVP(1, 1, 0).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(clip[0]/clip[3], 0) || !near(clip[1]/clip[3], 0) {
		t.Fatalf("quad under the camera projects to (%v, %v), want NDC origin", clip[0]/clip[3], clip[1]/clip[3])
	}
}
