package component

import "fmt"

// Health is a reusable integer health pool for anything that can take damage.
// Current stays within [0, Max]; Dead flips to true exactly once, on the hit
// that brings Current to zero.
type Health struct {
	Max     int
	Current int
	IFrames int
	Dead    bool

	OnDamage func(h *Health, evt CombatEvent)
	OnDeath  func(h *Health, evt CombatEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// Invulnerable reports whether i-frames are running.
func (h *Health) Invulnerable() bool {
	return h != nil && h.IFrames > 0
}

// ApplyDamage applies damage if not in i-frames. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, evt CombatEvent) bool {
	if h == nil || h.Dead || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	h.check()
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current == 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h, evt)
		}
	}
	return true
}

// Heal restores health up to Max and returns the amount actually restored.
func (h *Health) Heal(amount int) int {
	if h == nil || h.Dead || amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return h.Current - before
}

// StartIFrames sets invulnerability frames.
func (h *Health) StartIFrames(frames int) {
	if h == nil || frames <= 0 {
		return
	}
	h.IFrames = frames
}

// Tick advances the i-frame timer by one frame.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
}

// SetCurrentHP sets the current health value and clamps to [1, Max]. It is
// used to carry health into a fresh pool, so it never kills.
func (h *Health) SetCurrentHP(v int) {
	if h == nil {
		return
	}
	h.Current = v
	if h.Current < 1 {
		h.Current = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	h.Dead = false
}

func (h *Health) check() {
	if h.Current < 0 || h.Current > h.Max {
		panic(fmt.Sprintf("component: health %d outside [0, %d]", h.Current, h.Max))
	}
}
