package component

import "github.com/milk9111/dungeon/common"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
	EventHeal          CombatEventType = "heal"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type     CombatEventType
	Attacker Faction
	Target   Faction
	Damage   int
	Pos      common.Rect
	Boss     bool
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans combat events out to its handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// FactionCanHit reports whether an attack owned by attacker may damage a
// member of target. Neutral never takes part in combat.
func FactionCanHit(attacker, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return false
	}
	return attacker != target
}
