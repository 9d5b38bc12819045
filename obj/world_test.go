package obj

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() *prefabs.Tables {
	return &prefabs.Tables{
		Game: prefabs.GameSpec{TileSize: 10, PlayerHealth: 100},
		Tiles: prefabs.TilesSpec{Tiles: []prefabs.TileSpec{
			{ID: 0, Kind: prefabs.TileFloor},
			{ID: 1, Kind: prefabs.TileWall},
			{ID: 8, Kind: prefabs.TileExit},
			{ID: 9, Kind: prefabs.TileCoin},
			{ID: 10, Kind: prefabs.TilePotion},
			{ID: 11, Kind: prefabs.TilePlayer},
			{ID: 12, Kind: prefabs.TileMob, Mob: "imp"},
		}},
	}
}

func TestLoadObstacleScenario(t *testing.T) {
	w := Load(levels.Grid{{-1, 1}, {1, -1}}, testTables())

	require.Len(t, w.Obstacles, 2)
	assert.Equal(t, common.Rect{X: 10, Y: 0, Width: 10, Height: 10}, w.Obstacles[0])
	assert.Equal(t, common.Rect{X: 0, Y: 10, Width: 10, Height: 10}, w.Obstacles[1])
	require.Len(t, w.Tiles, 2)
	assert.Equal(t, 0, w.Tiles[0].Row)
	assert.Equal(t, 1, w.Tiles[0].Col)
	assert.Equal(t, 1, w.Tiles[1].Row)
	assert.Equal(t, 0, w.Tiles[1].Col)
	assert.False(t, w.HasExit)
	assert.Nil(t, w.ExitRect())
}

func TestLoadMarkers(t *testing.T) {
	w := Load(levels.Grid{
		{11, 0, 99},
		{12, 9, 10},
		{-1, 8, -7},
	}, testTables())

	assert.Len(t, w.Tiles, 6, "unknown and negative ids produce no tile")
	assert.True(t, w.HasExit)
	assert.Equal(t, common.Rect{X: 10, Y: 20, Width: 10, Height: 10}, w.Exit)

	pos, ok := w.PlayerSpawn()
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 5, Y: 5}, pos)

	kinds := map[SpawnKind]int{}
	for _, s := range w.Spawns {
		kinds[s.Kind]++
		if s.Kind == SpawnMob {
			assert.Equal(t, "imp", s.Mob)
		}
	}
	assert.Equal(t, map[SpawnKind]int{SpawnPlayer: 1, SpawnMob: 1, SpawnCoin: 1, SpawnPotion: 1}, kinds)
	for _, tile := range w.Tiles {
		assert.NotEqual(t, prefabs.TilePlayer, tile.Kind, "markers are drawn as floor")
	}
}

func TestWorldUpdateScrolls(t *testing.T) {
	w := Load(levels.Grid{{1, 8}}, testTables())
	w.Update(cp.Vector{X: -3, Y: 2})
	assert.Equal(t, common.Rect{X: -3, Y: 2, Width: 10, Height: 10}, w.Obstacles[0])
	assert.Equal(t, w.Obstacles[0], w.Tiles[0].Rect)
	assert.Equal(t, 7.0, w.Exit.X)
}

func TestResolveMotionNeverOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		var obstacles []common.Rect
		for j := 0; j < 6; j++ {
			obstacles = append(obstacles, common.Rect{
				X: float64(rng.Intn(10)) * 10, Y: float64(rng.Intn(10)) * 10, Width: 10, Height: 10,
			})
		}
		r := common.Rect{X: rng.Float64() * 100, Y: rng.Float64() * 100, Width: 8, Height: 8}
		if collides(r, obstacles) {
			continue
		}
		dx := rng.Float64()*16 - 8
		dy := rng.Float64()*16 - 8
		got := ResolveMotion(r, dx, dy, obstacles)
		for _, o := range obstacles {
			require.False(t, o.Intersects(got), "case %d: %+v overlaps %+v", i, got, o)
		}
	}
}

func TestResolveMotionSnapsToEdge(t *testing.T) {
	wall := []common.Rect{{X: 20, Y: 0, Width: 10, Height: 10}}
	cases := []struct {
		name   string
		start  common.Rect
		dx, dy float64
		want   common.Rect
	}{
		{"right_into_wall", common.Rect{X: 5, Y: 0, Width: 10, Height: 10}, 8, 0, common.Rect{X: 10, Y: 0, Width: 10, Height: 10}},
		{"left_into_wall", common.Rect{X: 35, Y: 0, Width: 10, Height: 10}, -8, 0, common.Rect{X: 30, Y: 0, Width: 10, Height: 10}},
		{"slide_along", common.Rect{X: 5, Y: 0, Width: 10, Height: 10}, 8, 3, common.Rect{X: 10, Y: 3, Width: 10, Height: 10}},
		{"free", common.Rect{X: 0, Y: 20, Width: 10, Height: 10}, 8, 0, common.Rect{X: 8, Y: 20, Width: 10, Height: 10}},
		{"down_into_wall", common.Rect{X: 20, Y: -15, Width: 10, Height: 10}, 0, 8, common.Rect{X: 20, Y: -10, Width: 10, Height: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ResolveMotion(c.start, c.dx, c.dy, wall))
		})
	}
}

func TestLineOfSightBlocked(t *testing.T) {
	obstacles := []common.Rect{{X: 40, Y: 0, Width: 10, Height: 10}}
	assert.True(t, LineOfSightBlocked(cp.Vector{X: 0, Y: 5}, cp.Vector{X: 100, Y: 5}, obstacles))
	assert.False(t, LineOfSightBlocked(cp.Vector{X: 0, Y: 50}, cp.Vector{X: 100, Y: 50}, obstacles))
	assert.False(t, LineOfSightBlocked(cp.Vector{X: 0, Y: 5}, cp.Vector{X: 30, Y: 5}, obstacles))
	assert.False(t, LineOfSightBlocked(cp.Vector{}, cp.Vector{X: 100}, nil))
}
