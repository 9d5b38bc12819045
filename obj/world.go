package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
)

// Tile is one drawn cell of a level. Spawn markers are drawn as floor.
type Tile struct {
	Row, Col int
	ID       int
	Kind     prefabs.TileKind
	Rect     common.Rect
}

// SpawnKind says what a spawn marker creates.
type SpawnKind int

const (
	SpawnPlayer SpawnKind = iota
	SpawnMob
	SpawnCoin
	SpawnPotion
)

// Spawn is a marker found at level load, positioned at its tile center.
type Spawn struct {
	Kind SpawnKind
	Mob  string
	Pos  cp.Vector
}

// World is the static part of a level: drawn tiles, obstacles and the exit.
type World struct {
	TileSize  float64
	Rows      int
	Cols      int
	Tiles     []Tile
	Obstacles []common.Rect
	Exit      common.Rect
	HasExit   bool
	Spawns    []Spawn
}

// Load classifies every cell of grid through the tile table. Negative ids and
// ids the table does not define produce nothing.
func Load(grid levels.Grid, tables *prefabs.Tables) *World {
	ts := tables.Game.TileSize
	kinds := make(map[int]prefabs.TileSpec, len(tables.Tiles.Tiles))
	for _, t := range tables.Tiles.Tiles {
		kinds[t.ID] = t
	}

	w := &World{TileSize: ts, Rows: grid.Rows(), Cols: grid.Cols()}
	for row, cells := range grid {
		for col, id := range cells {
			spec, ok := kinds[id]
			if id < 0 || !ok {
				continue
			}
			rect := common.Rect{X: float64(col) * ts, Y: float64(row) * ts, Width: ts, Height: ts}
			tile := Tile{Row: row, Col: col, ID: id, Kind: spec.Kind, Rect: rect}

			switch spec.Kind {
			case prefabs.TileWall:
				w.Obstacles = append(w.Obstacles, rect)
			case prefabs.TileExit:
				w.Exit = rect
				w.HasExit = true
			case prefabs.TilePlayer:
				w.Spawns = append(w.Spawns, Spawn{Kind: SpawnPlayer, Pos: rect.Center()})
				tile.Kind = prefabs.TileFloor
			case prefabs.TileMob:
				w.Spawns = append(w.Spawns, Spawn{Kind: SpawnMob, Mob: spec.Mob, Pos: rect.Center()})
				tile.Kind = prefabs.TileFloor
			case prefabs.TileCoin:
				w.Spawns = append(w.Spawns, Spawn{Kind: SpawnCoin, Pos: rect.Center()})
				tile.Kind = prefabs.TileFloor
			case prefabs.TilePotion:
				w.Spawns = append(w.Spawns, Spawn{Kind: SpawnPotion, Pos: rect.Center()})
				tile.Kind = prefabs.TileFloor
			}
			w.Tiles = append(w.Tiles, tile)
		}
	}
	return w
}

// Update shifts the whole level by the camera scroll.
func (w *World) Update(scroll cp.Vector) {
	if w == nil || (scroll.X == 0 && scroll.Y == 0) {
		return
	}
	for i := range w.Tiles {
		w.Tiles[i].Rect = w.Tiles[i].Rect.Offset(scroll)
	}
	for i := range w.Obstacles {
		w.Obstacles[i] = w.Obstacles[i].Offset(scroll)
	}
	w.Exit = w.Exit.Offset(scroll)
}

// ExitRect returns the exit rectangle, or nil for a level without one.
func (w *World) ExitRect() *common.Rect {
	if w == nil || !w.HasExit {
		return nil
	}
	exit := w.Exit
	return &exit
}

// PlayerSpawn returns the last player marker, matching how later markers
// override earlier ones.
func (w *World) PlayerSpawn() (cp.Vector, bool) {
	if w == nil {
		return cp.Vector{}, false
	}
	for i := len(w.Spawns) - 1; i >= 0; i-- {
		if w.Spawns[i].Kind == SpawnPlayer {
			return w.Spawns[i].Pos, true
		}
	}
	return cp.Vector{}, false
}
