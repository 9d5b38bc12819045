package levels

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed reports level data that is not a rectangular integer grid.
var ErrMalformed = errors.New("levels: malformed grid")

// Empty marks a cell with no tile.
const Empty = -1

// Grid is a row-major tile id grid.
type Grid [][]int

func (g Grid) Rows() int { return len(g) }

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the id at (row, col), or Empty outside the grid.
func (g Grid) At(row, col int) int {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Empty
	}
	return g[row][col]
}

func ParseBytes(data []byte) (Grid, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads comma separated integer rows. Every row must have the same
// number of cells.
func Parse(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var grid Grid
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		row := make([]int, len(record))
		for i, cell := range record {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrMalformed, line, i+1, cell)
			}
			row[i] = v
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}
	return grid, nil
}
