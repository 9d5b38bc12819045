package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/prefabs"
)

// AIState is the behavior an enemy chose on its latest step.
type AIState int

const (
	AIIdle AIState = iota
	AIChasing
	AIAttacking
	AIDead
)

func (s AIState) String() string {
	switch s {
	case AIChasing:
		return "chasing"
	case AIAttacking:
		return "attacking"
	case AIDead:
		return "dead"
	default:
		return "idle"
	}
}

// AIResult is what one AI step asks the caller to do.
type AIResult struct {
	// Projectile is a newly fired fireball, or nil.
	Projectile *Projectile
	// Melee is the contact damage to apply to the player, or zero.
	Melee int
}

type Enemy struct {
	Character
	Stats prefabs.MobSpec
	State AIState

	stun int
	fire component.Cooldown
}

func NewEnemy(center cp.Vector, stats prefabs.MobSpec, animTicks int) *Enemy {
	return &Enemy{
		Character: newCharacter(stats.Name, center, stats.Size, stats.Health, component.FactionEnemy, animTicks),
		Stats:     stats,
		fire:      component.NewCooldown(stats.FireCooldown),
	}
}

func (e *Enemy) Boss() bool    { return e.Stats.Boss }
func (e *Enemy) Stunned() bool { return e.stun > 0 }

// AI runs one behavior step. It follows the scroll, re-evaluates the state
// from distance and line of sight, steers toward the player and attacks. It
// never touches the player; melee damage and fireballs go back to the caller.
func (e *Enemy) AI(target Target, obstacles []common.Rect, scroll cp.Vector, fireball prefabs.ProjectileSpec) AIResult {
	var res AIResult
	e.Rect = e.Rect.Offset(scroll)
	if !e.Alive() {
		e.State = AIDead
		e.Running = false
		return res
	}

	from := e.Center()
	to := target.Rect.Center()
	dist := from.Distance(to)
	visible := dist <= e.Stats.VisionRange && !LineOfSightBlocked(from, to, obstacles)

	switch {
	case !visible:
		e.State = AIIdle
	case dist <= e.Stats.AttackRange || (e.Stats.Ranged && dist <= e.Stats.FireRange):
		e.State = AIAttacking
	default:
		e.State = AIChasing
	}

	e.fire.Tick()
	if e.stun > 0 {
		e.stun--
		e.Running = false
		return res
	}

	var dx, dy float64
	if visible && dist > e.Stats.StopRange {
		dx = stepToward(from.X, to.X, e.Stats.Speed)
		dy = stepToward(from.Y, to.Y, e.Stats.Speed)
	}
	e.move(dx, dy, obstacles)

	if e.State != AIAttacking {
		return res
	}
	if dist <= e.Stats.AttackRange && !target.Invulnerable {
		res.Melee = e.Stats.MeleeDamage
	}
	if e.Stats.Ranged && dist <= e.Stats.FireRange && e.fire.Ready() {
		res.Projectile = NewFireball(e.Center(), to, fireball)
		e.fire.Start()
	}
	return res
}

func stepToward(from, to, speed float64) float64 {
	switch {
	case from > to:
		return -speed
	case from < to:
		return speed
	}
	return 0
}

// TakeHit applies arrow damage and stuns the enemy briefly.
func (e *Enemy) TakeHit(amount int) bool {
	evt := component.CombatEvent{
		Type:     component.EventDamageApplied,
		Attacker: component.FactionPlayer,
		Target:   component.FactionEnemy,
		Damage:   amount,
		Pos:      e.Rect,
		Boss:     e.Stats.Boss,
	}
	if !e.Health.ApplyDamage(amount, evt) {
		return false
	}
	e.stun = e.Stats.StunFrames
	e.Running = false
	return true
}

// Update advances the animation of a living enemy.
func (e *Enemy) Update() {
	if e == nil || !e.Alive() {
		return
	}
	e.animate()
}

// Dropper decides what, if anything, a dead enemy leaves behind.
type Dropper interface {
	Drop(boss bool) (ItemKind, bool)
}

// EnemyDeath removes a dead enemy from the roster and returns the item it
// drops at its position, if any. Removal takes effect at the roster's next
// flush.
func EnemyDeath(roster *ecs.Roster[*Enemy], id ecs.Entity, drops Dropper, items prefabs.ItemsSpec, animTicks int) (*Item, bool) {
	e, ok := roster.Get(id)
	if !ok || !roster.Kill(id) {
		return nil, false
	}
	if drops == nil {
		return nil, false
	}
	kind, ok := drops.Drop(e.Stats.Boss)
	if !ok {
		return nil, false
	}
	return NewItem(kind, e.Center(), items, animTicks), true
}
