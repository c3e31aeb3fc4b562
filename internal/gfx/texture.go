package gfx

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

// DecodeTexture decodes a PNG or JPEG asset into tightly packed,
// non-premultiplied RGBA ready for upload.
func DecodeTexture(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return nrgba, nil
}

// quadVertices is a unit quad as a triangle strip: position (x, y) then
// texture coordinate (u, v) per vertex.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

const quadStride = 4 * 4
