package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/obj"
	"github.com/milk9111/dungeon/prefabs"
)

// ErrNoPlayer reports a level without a player spawn marker.
var ErrNoPlayer = errors.New("system: level has no player spawn")

// LevelSource supplies level grids by number.
type LevelSource interface {
	Level(n int) (levels.Grid, error)
}

// Level owns everything that lives and dies with one loaded level.
type Level struct {
	Number int
	World  *obj.World
	Player *obj.Player
	Bow    *obj.Bow

	Enemies   ecs.Roster[*obj.Enemy]
	Arrows    ecs.Roster[*obj.Projectile]
	Fireballs ecs.Roster[*obj.Projectile]
	Items     ecs.Roster[*obj.Item]
	Texts     ecs.Roster[*obj.DamageText]
	Splatters ecs.Roster[*obj.Splatter]

	ScoreCoin *obj.Item
}

// loadLevel reads level n and builds a fresh world, player and rosters.
func loadLevel(src LevelSource, n int, tables *prefabs.Tables) (*Level, error) {
	grid, err := src.Level(n)
	if err != nil {
		return nil, err
	}
	world := obj.Load(grid, tables)
	spawn, ok := world.PlayerSpawn()
	if !ok {
		return nil, fmt.Errorf("%w: level %d", ErrNoPlayer, n)
	}

	g := tables.Game
	lvl := &Level{
		Number: n,
		World:  world,
		Player: obj.NewPlayer(spawn, obj.PlayerConfig{
			Size:         g.PlayerSize,
			Health:       g.PlayerHealth,
			IFrameFrames: g.IFrameFrames,
			AnimTicks:    g.AnimationTicks,
			View: obj.Viewport{
				Width:  float64(g.ScreenWidth),
				Height: float64(g.ScreenHeight),
				Thresh: g.ScrollThresh,
			},
		}),
		Bow:       obj.NewBow(tables.Weapons),
		ScoreCoin: obj.NewScoreCoin(scoreCoinPos(g), tables.Items, g.AnimationTicks),
	}
	if err := lvl.spawnEntities(tables); err != nil {
		return nil, err
	}
	return lvl, nil
}

func scoreCoinPos(g prefabs.GameSpec) cp.Vector {
	return cp.Vector{X: float64(g.ScreenWidth) - 115, Y: 23}
}

// spawnEntities turns the world's markers into enemies and items.
func (l *Level) spawnEntities(tables *prefabs.Tables) error {
	ticks := tables.Game.AnimationTicks
	for _, s := range l.World.Spawns {
		switch s.Kind {
		case obj.SpawnMob:
			stats, ok := tables.Mob(s.Mob)
			if !ok {
				return fmt.Errorf("%w: unknown mob %q", prefabs.ErrInvalidTable, s.Mob)
			}
			l.Enemies.Spawn(obj.NewEnemy(s.Pos, *stats, ticks))
		case obj.SpawnCoin:
			l.Items.Spawn(obj.NewItem(obj.ItemCoin, s.Pos, tables.Items, ticks))
		case obj.SpawnPotion:
			l.Items.Spawn(obj.NewItem(obj.ItemPotion, s.Pos, tables.Items, ticks))
		}
	}
	return nil
}

// flush applies the removals queued during a step.
func (l *Level) flush() {
	l.Enemies.Flush()
	l.Arrows.Flush()
	l.Fireballs.Flush()
	l.Items.Flush()
	l.Texts.Flush()
	l.Splatters.Flush()
}
