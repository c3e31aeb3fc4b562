package glue

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// AssetSource reads bundled files by name.
type AssetSource interface {
	ReadString(name string) (string, error)
	ReadBinary(name string) ([]byte, error)
}

// FSAssets serves assets from an fs.FS.
type FSAssets struct {
	fsys fs.FS
}

// NewFSAssets wraps fsys.
func NewFSAssets(fsys fs.FS) *FSAssets {
	return &FSAssets{fsys: fsys}
}

// ReadString implements AssetSource.
func (a *FSAssets) ReadString(name string) (string, error) {
	data, err := a.ReadBinary(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBinary implements AssetSource.
func (a *FSAssets) ReadBinary(name string) ([]byte, error) {
	clean := cleanAssetName(name)
	if a == nil || a.fsys == nil || clean == "" {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	data, err := fs.ReadFile(a.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
		}
		return nil, fmt.Errorf("read asset %q: %w", name, err)
	}
	return data, nil
}

func cleanAssetName(name string) string {
	clean := path.Clean("/" + strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "." {
		return ""
	}
	return clean
}
