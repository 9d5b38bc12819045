package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.csv
var LevelsFS embed.FS

// ErrLevelNotFound reports a level number with no data file.
var ErrLevelNotFound = errors.New("levels: level not found")

// Source locates level files. Dir, when set, is searched before the embedded
// levels.
type Source struct {
	Dir string
}

// FileName returns the data file name of level n.
func FileName(n int) string {
	return fmt.Sprintf("level%d_data.csv", n)
}

// Load reads level n from the embedded levels.
func Load(n int) (Grid, error) {
	return Source{}.Level(n)
}

// Level reads and parses level n.
func (s Source) Level(n int) (Grid, error) {
	name := FileName(n)
	data, err := s.read(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, n)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	grid, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return grid, nil
}

func (s Source) read(name string) ([]byte, error) {
	if s.Dir != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return data, err
		}
	}
	return fs.ReadFile(LevelsFS, name)
}
