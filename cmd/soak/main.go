// Command soak runs a session headless with a random-walk input bot.
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/milk9111/dungeon/system"
	"github.com/rs/zerolog"
)

func main() {
	ticks := flag.Uint64("ticks", 36000, "frames to run, 0 for no limit")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the bot and the session")
	startLevel := flag.Int("level", 1, "level number to start on")
	prefabDir := flag.String("prefabs", "prefabs", "directory searched for table overrides before the embedded tables")
	levelDir := flag.String("levels", "levels", "directory searched for level files before the embedded levels")
	realtime := flag.Bool("realtime", false, "run at the table fps instead of as fast as possible")
	watch := flag.Bool("watch", false, "reload tables when files under -prefabs change")
	pretty := flag.Bool("pretty", false, "human-readable logs")
	debug := flag.Bool("debug", false, "log per-frame events")
	flag.Parse()

	var logger zerolog.Logger
	if *pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level).With().Timestamp().Logger()

	tables, err := prefabs.LoadTables(*prefabDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("load tables")
	}
	session, err := system.NewSession(tables, levels.Source{Dir: *levelDir}, *startLevel,
		system.WithLogger(logger.With().Str("component", "session").Logger()),
		system.WithRand(rand.New(rand.NewSource(*seed))),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("start session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		if w, err := prefabs.NewWatcher(*prefabDir); err != nil {
			logger.Warn().Err(err).Msg("table watch disabled")
		} else {
			defer w.Close()
			go w.Reload(ctx, *prefabDir, logger.With().Str("component", "watcher").Logger(), session.SetTables)
		}
	}

	cfg := system.RunConfig{MaxTicks: *ticks}
	if *realtime && tables.Game.FPS > 0 {
		cfg.Tick = time.Second / time.Duration(tables.Game.FPS)
	}
	counts := make(map[system.Cue]int)
	cfg.Cues = func(cues []system.Cue) {
		for _, c := range cues {
			counts[c]++
		}
	}

	logger.Info().Int64("seed", *seed).Uint64("ticks", *ticks).Msg("soak started")
	start := time.Now()
	err = system.Run(ctx, session, newBot(rand.New(rand.NewSource(*seed+1))), cfg)

	summary := zerolog.Dict()
	for c, n := range counts {
		summary = summary.Int(c.String(), n)
	}
	logger.Info().
		Uint64("ticks", session.Ticks()).
		Int("level", session.Level().Number).
		Int("score", session.Level().Player.Score).
		Dur("elapsed", time.Since(start)).
		Dict("cues", summary).
		Msg("soak finished")

	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, levels.ErrLevelNotFound):
		logger.Info().Msg("ran past the last level")
	default:
		logger.Fatal().Err(err).Msg("soak failed")
	}
}

// bot holds a random direction for a while, fires now and then, and always
// presses through the menu and death screens.
type bot struct {
	rng  *rand.Rand
	hold int
	move system.Intent
	fire bool
}

func newBot(rng *rand.Rand) *bot {
	return &bot{rng: rng}
}

func (b *bot) Next(state system.RunState) system.Intent {
	switch state {
	case system.StateMainMenu:
		return system.Intent{Start: true}
	case system.StatePlayerDead:
		return system.Intent{Restart: true}
	case system.StatePaused, system.StateInventory:
		return system.Intent{PauseToggle: true}
	}

	if b.hold <= 0 {
		b.hold = 10 + b.rng.Intn(50)
		b.move = system.Intent{
			Up:    b.rng.Intn(3) == 0,
			Down:  b.rng.Intn(3) == 0,
			Left:  b.rng.Intn(3) == 0,
			Right: b.rng.Intn(2) == 0,
		}
	}
	b.hold--

	in := b.move
	// Fire is edge triggered, so alternate to let the bow see fresh presses.
	b.fire = !b.fire && b.rng.Intn(4) == 0
	in.Fire = b.fire
	return in
}
