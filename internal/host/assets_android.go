//go:build android

package host

import (
	"fmt"
	"io"

	"golang.org/x/mobile/asset"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
)

// APKAssets reads from the APK's assets/ directory and falls back to
// another source for names the package does not ship.
type APKAssets struct {
	fallback glue.AssetSource
}

// NewAPKAssets returns an APK-backed source. fallback may be nil.
func NewAPKAssets(fallback glue.AssetSource) *APKAssets {
	return &APKAssets{fallback: fallback}
}

// ReadString implements glue.AssetSource.
func (a *APKAssets) ReadString(name string) (string, error) {
	data, err := a.ReadBinary(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBinary implements glue.AssetSource.
func (a *APKAssets) ReadBinary(name string) ([]byte, error) {
	f, err := asset.Open(name)
	if err != nil {
		if a.fallback != nil {
			return a.fallback.ReadBinary(name)
		}
		return nil, fmt.Errorf("%w: %q", glue.ErrAssetNotFound, name)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", name, err)
	}
	return data, nil
}
