package obj

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/prefabs"
)

type ProjectileKind int

const (
	Arrow ProjectileKind = iota
	Fireball
)

func (k ProjectileKind) String() string {
	if k == Fireball {
		return "fireball"
	}
	return "arrow"
}

// Projectile is a straight-flying shot owned by one faction. It travels at
// most Range pixels of its own motion; scroll does not count against it.
type Projectile struct {
	Kind     ProjectileKind
	Faction  component.Faction
	Rect     common.Rect
	Velocity cp.Vector
	// Angle is the heading in degrees, 0 = right, 90 = up.
	Angle    float64
	Damage   int
	Spread   int
	Range    float64
	Traveled float64
	Active   bool
}

// Hit describes a landed projectile.
type Hit struct {
	Damage int
	Pos    common.Rect
	Target component.Damageable
}

func newProjectile(kind ProjectileKind, faction component.Faction, origin cp.Vector, dir cp.Vector, spec prefabs.ProjectileSpec) *Projectile {
	if faction == component.FactionNeutral {
		panic(fmt.Sprintf("obj: %s without faction", kind))
	}
	return &Projectile{
		Kind:     kind,
		Faction:  faction,
		Rect:     common.RectAround(origin, spec.Width, spec.Height),
		Velocity: dir.Mult(spec.Speed),
		Angle:    common.Angle(dir),
		Damage:   spec.Damage,
		Spread:   spec.Spread,
		Range:    spec.Range,
		Active:   true,
	}
}

// NewArrow fires a player arrow from origin along dir.
func NewArrow(origin, dir cp.Vector, spec prefabs.ProjectileSpec) *Projectile {
	return newProjectile(Arrow, component.FactionPlayer, origin, dir.Normalize(), spec)
}

// NewFireball fires an enemy fireball from origin toward target.
func NewFireball(origin, target cp.Vector, spec prefabs.ProjectileSpec) *Projectile {
	dir := common.Direction(origin, target)
	if dir == (cp.Vector{}) {
		dir = cp.Vector{X: 1}
	}
	return newProjectile(Fireball, component.FactionEnemy, origin, dir, spec)
}

// Update moves the projectile one frame and resolves collisions. An obstacle
// or an exhausted range budget deactivates it without damage. The first
// target of the opposing faction that accepts the hit takes the damage.
func (p *Projectile) Update(scroll cp.Vector, obstacles []common.Rect, targets []component.Damageable, rng *rand.Rand) (Hit, bool) {
	var hit Hit
	if p == nil || !p.Active {
		return hit, false
	}
	if p.Faction == component.FactionNeutral {
		panic(fmt.Sprintf("obj: %s without faction", p.Kind))
	}

	step := p.Velocity
	if speed := step.Length(); speed > 0 {
		if remaining := p.Range - p.Traveled; speed > remaining {
			step = step.Mult(remaining / speed)
		}
		p.Traveled += step.Length()
	}
	p.Rect = p.Rect.Offset(scroll.Add(step))

	if collides(p.Rect, obstacles) {
		p.Active = false
		return hit, false
	}

	for _, t := range targets {
		if t == nil || !t.Alive() || !component.FactionCanHit(p.Faction, t.CombatFaction()) {
			continue
		}
		if !t.Bounds().Intersects(p.Rect) {
			continue
		}
		dmg := p.roll(rng)
		pos := t.Bounds()
		if !t.TakeHit(dmg) {
			continue
		}
		p.Active = false
		return Hit{Damage: dmg, Pos: pos, Target: t}, true
	}

	if p.Traveled >= p.Range {
		p.Active = false
	}
	return hit, false
}

func (p *Projectile) roll(rng *rand.Rand) int {
	if p.Spread <= 0 || rng == nil {
		return p.Damage
	}
	return p.Damage + rng.Intn(2*p.Spread+1) - p.Spread
}
