package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.gif
var assetsFS embed.FS

// Load reads a sprite from disk when the path exists there, falling back to
// the embedded default set by assets-relative path.
func Load(path string) ([]byte, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	if b, err := os.ReadFile(path); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(cleanAssetPath(path))
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
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
