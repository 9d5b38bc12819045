package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// defaultDir is where disk overrides are looked up when no dir is given.
const defaultDir = "prefabs"

// Load reads a table file, preferring prefabs/<name> on disk.
func Load(name string) ([]byte, error) {
	return loadFrom("", name)
}

// LoadScript reads a script, preferring prefabs/scripts/<name> on disk.
func LoadScript(name string) ([]byte, error) {
	return loadScriptFrom("", name)
}

func loadFrom(dir, name string) ([]byte, error) {
	return readLayered(PrefabsFS, dir, cleanPrefabPath(name))
}

func loadScriptFrom(dir, name string) ([]byte, error) {
	return readLayered(ScriptsFS, dir, cleanScriptPath(name))
}

// readLayered returns dir/rel when it can be read and the embedded copy
// otherwise.
func readLayered(embedded fs.FS, dir, rel string) ([]byte, error) {
	if data, err := os.ReadFile(diskPrefabPath(dir, rel)); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, rel)
}

// cleanPrefabPath turns "prefabs/game.yaml" or "game.yaml" into "game.yaml".
func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(p), defaultDir+"/")
}

// cleanScriptPath accepts a script name with or without the prefabs/ and
// scripts/ prefixes and returns it relative to the prefabs root.
func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func diskPrefabPath(dir, rel string) string {
	if dir == "" {
		dir = defaultDir
	}
	return filepath.Join(dir, filepath.FromSlash(rel))
}
