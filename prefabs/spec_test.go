package prefabs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedTables(t *testing.T) {
	tables, err := LoadTables(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 60, tables.Game.FPS)
	assert.Equal(t, 48.0, tables.Game.TileSize)
	assert.Equal(t, 100, tables.Game.PlayerHealth)
	assert.Len(t, tables.Tiles.Tiles, 18)
	assert.NotEmpty(t, tables.DropScript)

	boss, ok := tables.Mob("big_demon")
	require.True(t, ok)
	assert.True(t, boss.Boss)
	assert.True(t, boss.Ranged)
	assert.Equal(t, 250, boss.Health)

	_, ok = tables.Mob("dragon")
	assert.False(t, ok)
}

func TestLoadTablesDiskOverride(t *testing.T) {
	dir := t.TempDir()
	data, err := PrefabsFS.ReadFile("game.yaml")
	require.NoError(t, err)
	data = bytes.Replace(data, []byte("player_health: 100"), []byte("player_health: 40"), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.yaml"), data, 0o644))

	tables, err := LoadTables(dir)
	require.NoError(t, err)
	assert.Equal(t, 40, tables.Game.PlayerHealth)
}

func TestLoadTablesRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobs.yaml"), []byte("mobs: [\n"), 0o644))
	_, err := LoadTables(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal mobs.yaml")
}

func TestValidate(t *testing.T) {
	base := func() *Tables {
		return &Tables{
			Game: GameSpec{TileSize: 48, PlayerHealth: 100},
			Mobs: MobsSpec{Mobs: []MobSpec{{Name: "imp", Health: 10}}},
			Tiles: TilesSpec{Tiles: []TileSpec{
				{ID: 7, Kind: TileWall},
				{ID: 12, Kind: TileMob, Mob: "imp"},
			}},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Tables)
		ok     bool
	}{
		{"valid", func(*Tables) {}, true},
		{"unknown_kind", func(t *Tables) { t.Tiles.Tiles[0].Kind = "lava" }, false},
		{"duplicate_tile", func(t *Tables) { t.Tiles.Tiles[1].ID = 7 }, false},
		{"unknown_mob", func(t *Tables) { t.Tiles.Tiles[1].Mob = "dragon" }, false},
		{"negative_id", func(t *Tables) { t.Tiles.Tiles[0].ID = -1 }, false},
		{"zero_tile_size", func(t *Tables) { t.Game.TileSize = 0 }, false},
		{"duplicate_mob", func(t *Tables) { t.Mobs.Mobs = append(t.Mobs.Mobs, MobSpec{Name: "imp", Health: 1}) }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tables := base()
			c.mutate(tables)
			err := tables.Validate()
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	for _, in := range []string{"drops.tengo", "scripts/drops.tengo", "prefabs/scripts/drops.tengo"} {
		assert.Equal(t, "scripts/drops.tengo", cleanScriptPath(in))
	}
}
