// Package assets embeds the default asset tree: the start script, its
// textures and its sounds.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed init.js images sounds
var files embed.FS

// FS returns the embedded asset tree rooted at the asset directory.
func FS() fs.FS { return files }
