package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/dungeon/audio"
	"github.com/milk9111/dungeon/system"
	"github.com/rs/zerolog"
)

// Game adapts a session to ebiten: one Step per Update, one Snapshot per Draw.
type Game struct {
	session  *system.Session
	input    *Input
	renderer *Renderer
	sound    *audio.Player
	logger   zerolog.Logger
	debug    bool

	width, height int

	overlays  map[system.RunState]*ebitenui.UI
	inventory []*widget.Text
	// clicked collects overlay button presses until the next Step.
	clicked system.Intent
}

func NewGame(session *system.Session, sound *audio.Player, logger zerolog.Logger, debug bool) *Game {
	g := session.Tables().Game
	game := &Game{
		session:  session,
		input:    NewInput(g.ScreenWidth, g.ScreenHeight),
		renderer: NewRenderer(),
		sound:    sound,
		logger:   logger,
		debug:    debug,
		width:    g.ScreenWidth,
		height:   g.ScreenHeight,
	}
	game.buildOverlays()
	return game
}

func (g *Game) buildOverlays() {
	quit := overlayButton{"Quit", func() { g.clicked.Quit = true }}
	menu, _ := newOverlay("DUNGEON", g.width, g.height, []string{"WASD to move, click or space to shoot"},
		overlayButton{"Start", func() { g.clicked.Start = true }},
		quit,
	)
	pause, _ := newOverlay("Paused", g.width, g.height, nil,
		overlayButton{"Resume", func() { g.clicked.PauseToggle = true }},
		quit,
	)
	inventory, texts := newOverlay("Inventory", g.width, g.height, []string{"", ""},
		overlayButton{"Close", func() { g.clicked.InventoryToggle = true }},
	)
	dead, _ := newOverlay("You died", g.width, g.height, nil,
		overlayButton{"Restart", func() { g.clicked.Restart = true }},
		quit,
	)
	g.inventory = texts
	g.overlays = map[system.RunState]*ebitenui.UI{
		system.StateMainMenu:   menu,
		system.StatePaused:     pause,
		system.StateInventory:  inventory,
		system.StatePlayerDead: dead,
	}
}

func (g *Game) Update() error {
	if g.session.Done() {
		return ebiten.Termination
	}

	state := g.session.State()
	if state == system.StateInventory {
		p := g.session.Level().Player
		g.inventory[0].Label = fmt.Sprintf("Health %d / %d", p.Health.Current, p.Health.Max)
		g.inventory[1].Label = fmt.Sprintf("Coins %d", p.Score)
	}
	if ui := g.overlay(state); ui != nil {
		ui.Update()
	}

	in := merge(g.input.Poll(g.session.Level().Player.Center()), g.clicked)
	g.clicked = system.Intent{}
	if err := g.session.Step(in); err != nil {
		g.logger.Error().Err(err).Msg("step")
		return err
	}
	g.sound.Play(g.session.DrainCues())
	if g.session.Done() {
		return ebiten.Termination
	}
	return nil
}

// overlay returns the UI shown in state, if any. The death screen only
// accepts input once its fade has run.
func (g *Game) overlay(state system.RunState) *ebitenui.UI {
	if state == system.StatePlayerDead && !g.session.DeathFadeDone() {
		return nil
	}
	return g.overlays[state]
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	g.renderer.Draw(screen, snap)
	if ui := g.overlay(snap.State); ui != nil {
		ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  state: %s  tick: %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), snap.State, g.session.Ticks()), 10, g.height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func merge(a, b system.Intent) system.Intent {
	a.Up = a.Up || b.Up
	a.Down = a.Down || b.Down
	a.Left = a.Left || b.Left
	a.Right = a.Right || b.Right
	a.Fire = a.Fire || b.Fire
	if a.Aim == nil {
		a.Aim = b.Aim
	}
	a.PauseToggle = a.PauseToggle || b.PauseToggle
	a.InventoryToggle = a.InventoryToggle || b.InventoryToggle
	a.Start = a.Start || b.Start
	a.Restart = a.Restart || b.Restart
	a.Quit = a.Quit || b.Quit
	return a
}
