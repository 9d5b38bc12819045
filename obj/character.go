package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
)

// Character is the state shared by the player and enemies.
type Character struct {
	Name    string
	Rect    common.Rect
	Health  *component.Health
	Faction component.Faction
	Anim    *component.Animation
	FlipX   bool
	Running bool
}

func newCharacter(name string, center cp.Vector, size float64, health int, faction component.Faction, animTicks int) Character {
	return Character{
		Name:    name,
		Rect:    common.RectAround(center, size, size),
		Health:  component.NewHealth(health),
		Faction: faction,
		Anim:    component.NewAnimation(4, animTicks, true),
	}
}

func (c *Character) Bounds() common.Rect              { return c.Rect }
func (c *Character) Alive() bool                      { return c.Health.IsAlive() }
func (c *Character) CombatFaction() component.Faction { return c.Faction }
func (c *Character) Center() cp.Vector                { return c.Rect.Center() }

// move applies collision-resolved motion. Diagonal steps are scaled so the
// speed matches straight movement. It returns the distance actually covered.
func (c *Character) move(dx, dy float64, obstacles []common.Rect) cp.Vector {
	c.Running = dx != 0 || dy != 0
	if dx < 0 {
		c.FlipX = true
	} else if dx > 0 {
		c.FlipX = false
	}
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}
	before := c.Rect
	c.Rect = ResolveMotion(c.Rect, dx, dy, obstacles)
	return cp.Vector{X: c.Rect.X - before.X, Y: c.Rect.Y - before.Y}
}

// animate picks the clip from the current motion and advances it.
func (c *Character) animate() {
	if c.Running {
		c.Anim.Play(component.ClipRun)
	} else {
		c.Anim.Play(component.ClipIdle)
	}
	c.Anim.Update()
}
