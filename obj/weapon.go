package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/prefabs"
)

// Bow is the player's weapon. It points at the aim point when there is one
// and along the player's facing otherwise.
type Bow struct {
	Angle    float64
	Cooldown component.Cooldown
	Arrow    prefabs.ProjectileSpec
}

func NewBow(spec prefabs.WeaponsSpec) *Bow {
	return &Bow{
		Cooldown: component.NewCooldown(spec.BowCooldown),
		Arrow:    spec.Arrow,
	}
}

// Update aims the bow and returns a new arrow when fire was pressed this
// frame and the cooldown has run out.
func (b *Bow) Update(p *Player, fire bool, aim *cp.Vector) *Projectile {
	if b == nil || p == nil {
		return nil
	}
	b.Cooldown.Tick()

	origin := p.Center()
	dir := p.Facing
	if aim != nil {
		if d := common.Direction(origin, *aim); d != (cp.Vector{}) {
			dir = d
		}
	}
	if dir == (cp.Vector{}) {
		dir = cp.Vector{X: 1}
	}
	b.Angle = common.Angle(dir)

	if !fire || !p.Alive() || !b.Cooldown.Ready() {
		return nil
	}
	b.Cooldown.Start()
	return NewArrow(origin, dir, b.Arrow)
}
