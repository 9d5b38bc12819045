package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dungeon/audio"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/milk9111/dungeon/system"
	"github.com/rs/zerolog"
)

func main() {
	startLevel := flag.Int("level", 1, "level number to start on")
	prefabDir := flag.String("prefabs", "prefabs", "directory searched for table overrides before the embedded tables")
	levelDir := flag.String("levels", "levels", "directory searched for level files before the embedded levels")
	watch := flag.Bool("watch", false, "reload tables when files under -prefabs change")
	mute := flag.Bool("mute", false, "disable sound")
	pretty := flag.Bool("pretty", false, "human-readable logs")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	logger := newLogger(*pretty, *debug)

	tables, err := prefabs.LoadTables(*prefabDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("load tables")
	}

	session, err := system.NewSession(tables, levels.Source{Dir: *levelDir}, *startLevel,
		system.WithLogger(logger.With().Str("component", "session").Logger()),
	)
	if err != nil {
		logger.Fatal().Err(err).Int("level", *startLevel).Msg("start session")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *watch {
		startWatcher(ctx, *prefabDir, session, logger.With().Str("component", "watcher").Logger())
	}

	sound := audio.NewPlayer(logger.With().Str("component", "audio").Logger(), *mute)
	if err := sound.Init(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable")
	}
	defer sound.Close()

	g := tables.Game
	ebiten.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	ebiten.SetWindowTitle("dungeon")
	if g.FPS > 0 {
		ebiten.SetTPS(g.FPS)
	}

	game := NewGame(session, sound, logger, *debug)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal().Err(err).Msg("game stopped")
	}
}

func newLogger(pretty, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// startWatcher hands every valid table edit to the session. The watch is
// skipped when the directory is missing, since the embedded tables are then
// the only ones in use.
func startWatcher(ctx context.Context, dir string, session *system.Session, logger zerolog.Logger) {
	dirs := []string{dir}
	if scripts := filepath.Join(dir, "scripts"); isDir(scripts) {
		dirs = append(dirs, scripts)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("table watch disabled")
		return
	}
	go func() {
		defer w.Close()
		w.Reload(ctx, dir, logger, session.SetTables)
	}()
	logger.Info().Strs("dirs", dirs).Msg("watching tables")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
