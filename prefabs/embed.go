package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
)

// DefaultConfig names the embedded companion config.
const DefaultConfig = "companion.yaml"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a config file from disk. Only DefaultConfig falls back, first to
// ./prefabs and then to the embedded copy; any other missing path is an error.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(name)
	if err == nil || name != DefaultConfig {
		return data, err
	}
	if data, err := os.ReadFile(filepath.Join("prefabs", DefaultConfig)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(DefaultConfig)
}

// LoadScript reads a wander script from disk, falling back by base name to
// prefabs/scripts and then the embedded scripts.
func LoadScript(name string) ([]byte, error) {
	if name == "" {
		return nil, os.ErrNotExist
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanScriptPath(p string) string {
	return "scripts/" + path.Base(filepath.ToSlash(p))
}
