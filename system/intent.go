package system

import "github.com/jakecoffman/cp"

// Intent is one frame of player input. Movement flags are levels; every
// other flag is true only on the frame of the press.
type Intent struct {
	Up, Down, Left, Right bool

	Fire bool
	// Aim is the screen point the bow points at, or nil to shoot along the
	// player's facing.
	Aim *cp.Vector

	PauseToggle     bool
	InventoryToggle bool
	Start           bool
	Restart         bool
	Quit            bool
}

// Axis returns the movement direction as -1/0/+1 components. When opposite
// keys are held, left and down win.
func (in Intent) Axis() (float64, float64) {
	var dx, dy float64
	if in.Right {
		dx = 1
	}
	if in.Left {
		dx = -1
	}
	if in.Up {
		dy = -1
	}
	if in.Down {
		dy = 1
	}
	return dx, dy
}

// RunState is the top-level state of a run.
type RunState int

const (
	StateMainMenu RunState = iota
	StatePlaying
	StatePaused
	StateInventory
	StatePlayerDead
)

func (s RunState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateInventory:
		return "inventory"
	case StatePlayerDead:
		return "player_dead"
	default:
		return "main_menu"
	}
}

// Cue is a sound-worthy event raised during a step.
type Cue int

const (
	CueShotFired Cue = iota
	CueHitLanded
	CueCoinCollected
	CuePotionUsed
	CueEnemyDied
	CuePlayerHurt
	CuePlayerDied
	CueLevelComplete
)

func (c Cue) String() string {
	switch c {
	case CueShotFired:
		return "shot_fired"
	case CueHitLanded:
		return "hit_landed"
	case CueCoinCollected:
		return "coin_collected"
	case CuePotionUsed:
		return "potion_used"
	case CueEnemyDied:
		return "enemy_died"
	case CuePlayerHurt:
		return "player_hurt"
	case CuePlayerDied:
		return "player_died"
	case CueLevelComplete:
		return "level_complete"
	}
	return "unknown"
}
