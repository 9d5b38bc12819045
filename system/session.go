package system

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/loot"
	"github.com/milk9111/dungeon/obj"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/rs/zerolog"
)

// Session owns a run: the loaded level, the run state machine and the cue
// queue. It is driven one Step per frame from a single goroutine; only
// SetTables may be called from elsewhere.
type Session struct {
	logger  zerolog.Logger
	tables  *prefabs.Tables
	pending atomic.Pointer[prefabs.Tables]
	source  LevelSource
	rng     *rand.Rand

	dropper      obj.Dropper
	fixedDropper bool

	state     RunState
	level     *Level
	scheduler *ecs.Scheduler[*Session]
	frame     frame
	cues      ecs.EventQueue[Cue]
	combat    component.CombatEventEmitter

	introFade int
	deathFade int
	ticks     uint64
	quit      bool
}

type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRand sets the random source for damage rolls, drops and decals.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithDropper replaces the drop rules built from the tables.
func WithDropper(d obj.Dropper) Option {
	return func(s *Session) {
		s.dropper = d
		s.fixedDropper = d != nil
	}
}

// NewSession loads level start and waits in the main menu.
func NewSession(tables *prefabs.Tables, source LevelSource, start int, opts ...Option) (*Session, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		logger: zerolog.Nop(),
		tables: tables,
		source: source,
		state:  StateMainMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	s.combat.Handlers = append(s.combat.Handlers, s.combatHandler)
	s.scheduler = s.newScheduler()
	if err := s.applyTables(tables); err != nil {
		return nil, err
	}
	if err := s.load(start); err != nil {
		return nil, err
	}
	return s, nil
}

// SetTables queues new tables. They take effect at the next level load or
// respawn, never mid-level.
func (s *Session) SetTables(t *prefabs.Tables) {
	if s == nil || t == nil {
		return
	}
	s.pending.Store(t)
}

func (s *Session) applyTables(t *prefabs.Tables) error {
	if !s.fixedDropper {
		d, err := loot.New(t, s.rng, s.logger.With().Str("component", "loot").Logger())
		if err != nil {
			return err
		}
		s.dropper = d
	}
	s.tables = t
	return nil
}

// load replaces the current level with level n.
func (s *Session) load(n int) error {
	if t := s.pending.Swap(nil); t != nil {
		if err := t.Validate(); err != nil {
			s.logger.Warn().Err(err).Msg("pending tables rejected")
		} else if err := s.applyTables(t); err != nil {
			s.logger.Warn().Err(err).Msg("pending tables rejected")
		} else {
			s.logger.Info().Msg("tables applied")
		}
	}
	lvl, err := loadLevel(s.source, n, s.tables)
	if err != nil {
		return fmt.Errorf("system: load level %d: %w", n, err)
	}
	h := lvl.Player.Health
	h.OnDamage = func(_ *component.Health, evt component.CombatEvent) {
		s.combat.Emit(evt)
	}
	h.OnDeath = func(_ *component.Health, evt component.CombatEvent) {
		evt.Type = component.EventDeath
		s.combat.Emit(evt)
	}
	s.level = lvl
	s.introFade = 0
	s.logger.Info().
		Int("level", n).
		Int("obstacles", len(lvl.World.Obstacles)).
		Int("enemies", lvl.Enemies.Len()).
		Int("items", lvl.Items.Len()).
		Msg("level loaded")
	return nil
}

// Step advances the run by one frame.
func (s *Session) Step(in Intent) error {
	if s == nil || s.quit {
		return nil
	}
	s.ticks++
	if in.Quit {
		s.quit = true
		return nil
	}

	switch s.state {
	case StateMainMenu:
		if in.Start {
			s.state = StatePlaying
			s.introFade = 0
		}
	case StatePaused:
		if in.PauseToggle || in.Start {
			s.state = StatePlaying
		}
	case StateInventory:
		if in.InventoryToggle || in.PauseToggle || in.Start {
			s.state = StatePlaying
		}
	case StatePlaying:
		switch {
		case in.PauseToggle:
			s.state = StatePaused
		case in.InventoryToggle:
			s.state = StateInventory
		default:
			return s.play(in)
		}
	case StatePlayerDead:
		if s.deathFade < s.tables.Game.DeathFadeFrames {
			s.deathFade++
			return nil
		}
		if in.Restart {
			return s.respawn()
		}
	}
	return nil
}

func (s *Session) play(in Intent) error {
	s.frame = frame{intent: in}
	s.scheduler.Update(s)
	if s.introFade < s.tables.Game.IntroFadeFrames {
		s.introFade++
	}

	if !s.level.Player.Alive() {
		s.state = StatePlayerDead
		s.deathFade = 0
		return nil
	}
	if s.frame.complete {
		return s.nextLevel()
	}
	return nil
}

// nextLevel loads the following level, carrying health and score over.
func (s *Session) nextLevel() error {
	prev := s.level.Player
	hp, score := prev.Health.Current, prev.Score
	s.logger.Info().Int("level", s.level.Number).Int("score", score).Msg("level complete")
	if err := s.load(s.level.Number + 1); err != nil {
		return err
	}
	p := s.level.Player
	p.Health.SetCurrentHP(hp)
	p.Score = score
	s.cues.Push(CueLevelComplete)
	return nil
}

// respawn reloads the current level with full health and the old score.
func (s *Session) respawn() error {
	score := s.level.Player.Score
	if err := s.load(s.level.Number); err != nil {
		return err
	}
	s.level.Player.Score = score
	s.state = StatePlaying
	s.deathFade = 0
	s.logger.Info().Int("level", s.level.Number).Int("score", score).Msg("respawn")
	return nil
}

// DrainCues returns the cues raised since the last call.
func (s *Session) DrainCues() []Cue {
	return s.cues.Drain()
}

func (s *Session) State() RunState { return s.state }

// Done reports whether the quit signal was received.
func (s *Session) Done() bool { return s.quit }

// Ticks counts Step calls.
func (s *Session) Ticks() uint64 { return s.ticks }

// Level returns the loaded level. Callers must treat it as read-only.
func (s *Session) Level() *Level { return s.level }

// Tables returns the tables in force.
func (s *Session) Tables() *prefabs.Tables { return s.tables }

// DeathFadeDone reports whether the death screen accepts a restart.
func (s *Session) DeathFadeDone() bool {
	return s.state == StatePlayerDead && s.deathFade >= s.tables.Game.DeathFadeFrames
}
