package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed levels/*.tmx
var assetsFS embed.FS

// FS exposes the embedded assets, rooted at the assets directory.
func FS() fs.FS {
	return assetsFS
}

// Resolve locates a level file. A path that exists on disk is served from
// its directory so external tilesets resolve next to it; anything else is
// looked up in the embedded assets.
func Resolve(path string) (fs.FS, string) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return os.DirFS(filepath.Dir(path)), filepath.Base(path)
	}
	return assetsFS, cleanAssetPath(path)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
