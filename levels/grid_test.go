package levels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    Grid
		wantErr bool
	}{
		{"square", "-1,1\n1,-1\n", Grid{{-1, 1}, {1, -1}}, false},
		{"spaces", "0, 7 ,8\n", Grid{{0, 7, 8}}, false},
		{"no_trailing_newline", "3", Grid{{3}}, false},
		{"ragged", "1,2\n3\n", nil, true},
		{"not_a_number", "1,x\n", nil, true},
		{"empty", "", nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(c.in))
			if c.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGridAt(t *testing.T) {
	g := Grid{{1, 2}, {3, 4}}
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, 4, g.At(1, 1))
	assert.Equal(t, Empty, g.At(2, 0))
	assert.Equal(t, Empty, g.At(0, -1))
}

func TestEmbeddedLevels(t *testing.T) {
	for n := 1; n <= 3; n++ {
		g, err := Load(n)
		require.NoError(t, err, "level %d", n)

		players := 0
		exits := 0
		for _, row := range g {
			require.Len(t, row, g.Cols())
			for _, id := range row {
				switch id {
				case 11:
					players++
				case 8:
					exits++
				}
			}
		}
		assert.Equal(t, 1, players, "level %d player spawns", n)
		assert.GreaterOrEqual(t, exits, 1, "level %d exits", n)
	}
}

func TestMissingLevel(t *testing.T) {
	_, err := Load(99)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestSourceDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(1)), []byte("7,11,8\n"), 0o644))

	g, err := Source{Dir: dir}.Level(1)
	require.NoError(t, err)
	assert.Equal(t, Grid{{7, 11, 8}}, g)

	g, err = Source{Dir: dir}.Level(2)
	require.NoError(t, err, "falls back to the embedded level")
	assert.NotEmpty(t, g)
}
