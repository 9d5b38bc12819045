package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
)

// Viewport is the screen area the threshold camera keeps the player inside.
type Viewport struct {
	Width, Height float64
	// Thresh is the dead-zone margin from each screen edge.
	Thresh float64
}

// Target is the read-only view of the player handed to enemy AI.
type Target struct {
	Rect         common.Rect
	Invulnerable bool
}

type Player struct {
	Character
	Score        int
	Facing       cp.Vector
	IFrameFrames int
	View         Viewport
}

// PlayerConfig holds the tunables for a new player.
type PlayerConfig struct {
	Size         float64
	Health       int
	IFrameFrames int
	AnimTicks    int
	View         Viewport
}

func NewPlayer(center cp.Vector, cfg PlayerConfig) *Player {
	return &Player{
		Character:    newCharacter("elf", center, cfg.Size, cfg.Health, component.FactionPlayer, cfg.AnimTicks),
		Facing:       cp.Vector{X: 1},
		IFrameFrames: cfg.IFrameFrames,
		View:         cfg.View,
	}
}

// Move applies the movement intent against the obstacles and returns the
// camera scroll for this frame plus whether the player reached the exit.
// Scroll is the negated overshoot past the camera dead zone; the player is
// pinned to the dead-zone edge while everything else shifts by the scroll.
func (p *Player) Move(dx, dy float64, obstacles []common.Rect, exit *common.Rect) (cp.Vector, bool) {
	var scroll cp.Vector
	if p == nil || !p.Alive() {
		return scroll, false
	}
	if dx != 0 || dy != 0 {
		p.Facing = common.Direction(cp.Vector{}, cp.Vector{X: dx, Y: dy})
	}
	p.move(dx, dy, obstacles)

	complete := exit != nil && p.Rect.Intersects(*exit)

	v := p.View
	if v.Width <= 0 || v.Height <= 0 {
		return scroll, complete
	}
	if right := p.Rect.Right(); right > v.Width-v.Thresh {
		scroll.X = (v.Width - v.Thresh) - right
	}
	if left := p.Rect.Left(); left < v.Thresh {
		scroll.X = v.Thresh - left
	}
	if bottom := p.Rect.Bottom(); bottom > v.Height-v.Thresh {
		scroll.Y = (v.Height - v.Thresh) - bottom
	}
	if top := p.Rect.Top(); top < v.Thresh {
		scroll.Y = v.Thresh - top
	}
	p.Rect = p.Rect.Offset(scroll)
	return scroll, complete
}

// Target snapshots the player for enemy AI.
func (p *Player) Target() Target {
	return Target{Rect: p.Rect, Invulnerable: p.Health.Invulnerable()}
}

// AddScore raises the score. Non-positive amounts are ignored so the score
// never decreases.
func (p *Player) AddScore(n int) {
	if n <= 0 {
		return
	}
	p.Score += n
}

// Heal restores up to n health and returns the amount restored.
func (p *Player) Heal(n int) int {
	return p.Health.Heal(n)
}

// TakeHit applies damage unless the player is inside the invulnerability
// window, then opens a new window.
func (p *Player) TakeHit(amount int) bool {
	if p.Health.Invulnerable() {
		return false
	}
	evt := component.CombatEvent{
		Type:     component.EventDamageApplied,
		Attacker: component.FactionEnemy,
		Target:   component.FactionPlayer,
		Damage:   amount,
		Pos:      p.Rect,
	}
	if !p.Health.ApplyDamage(amount, evt) {
		return false
	}
	p.Health.StartIFrames(p.IFrameFrames)
	return true
}

// Update advances timers and animation once per frame.
func (p *Player) Update() {
	if p == nil {
		return
	}
	p.Health.Tick()
	if !p.Alive() {
		p.Running = false
		return
	}
	p.animate()
}
