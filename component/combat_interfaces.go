package component

import "github.com/milk9111/dungeon/common"

// Damageable is anything a projectile can hit.
type Damageable interface {
	Bounds() common.Rect
	Alive() bool
	CombatFaction() Faction
	// TakeHit applies damage and reports whether it landed. A target inside
	// its invulnerability window returns false.
	TakeHit(amount int) bool
}
