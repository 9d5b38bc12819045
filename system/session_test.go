package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/obj"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tile ids from the embedded tiles table.
const (
	fl = 0
	wl = 7
	ex = 8
	cn = 9
	pl = 11
	im = 12
)

type mapSource map[int]levels.Grid

func (m mapSource) Level(n int) (levels.Grid, error) {
	g, ok := m[n]
	if !ok {
		return nil, fmt.Errorf("%w: %d", levels.ErrLevelNotFound, n)
	}
	return g, nil
}

// corridor: the player walks right over a coin into the exit.
var corridor = levels.Grid{
	{wl, wl, wl, wl, wl, wl},
	{wl, pl, fl, cn, ex, wl},
	{wl, wl, wl, wl, wl, wl},
}

func testTables(t *testing.T) *prefabs.Tables {
	t.Helper()
	tables, err := prefabs.LoadTables(t.TempDir())
	require.NoError(t, err)
	// No viewport keeps the camera still so positions stay in level space.
	tables.Game.ScreenWidth = 0
	tables.Game.ScreenHeight = 0
	tables.Game.DeathFadeFrames = 3
	tables.Game.IntroFadeFrames = 2
	return tables
}

func mutateMob(t *testing.T, tables *prefabs.Tables, name string, fn func(*prefabs.MobSpec)) {
	t.Helper()
	m, ok := tables.Mob(name)
	require.True(t, ok)
	fn(m)
}

func newTestSession(t *testing.T, tables *prefabs.Tables, src mapSource, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	s, err := NewSession(tables, src, 1, opts...)
	require.NoError(t, err)
	require.Equal(t, StateMainMenu, s.State())
	require.NoError(t, s.Step(Intent{Start: true}))
	require.Equal(t, StatePlaying, s.State())
	return s
}

func stepUntil(t *testing.T, s *Session, in Intent, max int, done func() bool) {
	t.Helper()
	for i := 0; i < max && !done(); i++ {
		require.NoError(t, s.Step(in))
	}
	require.True(t, done(), "condition not reached in %d frames", max)
}

func TestMenuWaitsForStart(t *testing.T) {
	s, err := NewSession(testTables(t), mapSource{1: corridor}, 1)
	require.NoError(t, err)
	x := s.Level().Player.Rect.X
	require.NoError(t, s.Step(Intent{Right: true}))
	assert.Equal(t, StateMainMenu, s.State())
	assert.Equal(t, x, s.Level().Player.Rect.X)
}

func TestLevelCompleteCarriesHealthAndScore(t *testing.T) {
	tables := testTables(t)
	tables.Items.CoinValue = 5
	s := newTestSession(t, tables, mapSource{1: corridor, 2: corridor})

	require.True(t, s.Level().Player.TakeHit(30))
	stepUntil(t, s, Intent{Right: true}, 60, func() bool { return s.Level().Number == 2 })

	p := s.Level().Player
	assert.Equal(t, 70, p.Health.Current)
	assert.Equal(t, 5, p.Score)
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 1, s.Level().Items.Len(), "level 2 starts with its own coin")
	assert.Subset(t, s.DrainCues(), []Cue{CuePlayerHurt, CueCoinCollected, CueLevelComplete})
}

func TestRespawnAfterDeathFade(t *testing.T) {
	s := newTestSession(t, testTables(t), mapSource{1: corridor})
	p := s.Level().Player
	p.Score = 7
	p.TakeHit(1000)
	require.NoError(t, s.Step(Intent{}))
	require.Equal(t, StatePlayerDead, s.State())

	for i := 0; i < 3; i++ {
		assert.False(t, s.DeathFadeDone())
		require.NoError(t, s.Step(Intent{Restart: true}))
		require.Equal(t, StatePlayerDead, s.State(), "restart ignored during the fade")
	}
	assert.True(t, s.DeathFadeDone())
	assert.Equal(t, 1.0, s.Snapshot().DeathFade)

	require.NoError(t, s.Step(Intent{Restart: true}))
	assert.Equal(t, StatePlaying, s.State())
	p = s.Level().Player
	assert.Equal(t, 100, p.Health.Current)
	assert.Equal(t, 7, p.Score)
	assert.Equal(t, 1, s.Level().Number)
	assert.Subset(t, s.DrainCues(), []Cue{CuePlayerHurt, CuePlayerDied})
}

func TestPauseAndInventoryFreezeSimulation(t *testing.T) {
	s := newTestSession(t, testTables(t), mapSource{1: corridor})
	x := s.Level().Player.Rect.X

	require.NoError(t, s.Step(Intent{PauseToggle: true}))
	require.Equal(t, StatePaused, s.State())
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Step(Intent{Right: true}))
	}
	assert.Equal(t, x, s.Level().Player.Rect.X)
	require.NoError(t, s.Step(Intent{PauseToggle: true}))
	require.Equal(t, StatePlaying, s.State())

	require.NoError(t, s.Step(Intent{InventoryToggle: true}))
	require.Equal(t, StateInventory, s.State())
	require.NoError(t, s.Step(Intent{Right: true}))
	assert.Equal(t, x, s.Level().Player.Rect.X)
	require.NoError(t, s.Step(Intent{InventoryToggle: true}))

	require.NoError(t, s.Step(Intent{Right: true}))
	assert.Equal(t, x+5, s.Level().Player.Rect.X)
}

func TestDeathBeatsLevelComplete(t *testing.T) {
	tables := testTables(t)
	tables.Game.IFrameFrames = 0
	mutateMob(t, tables, "imp", func(m *prefabs.MobSpec) {
		m.AttackRange = 200
		m.MeleeDamage = 10
	})
	grid := levels.Grid{
		{wl, wl, wl, wl, wl},
		{wl, pl, ex, im, wl},
		{wl, wl, wl, wl, wl},
	}
	s := newTestSession(t, tables, mapSource{1: grid, 2: corridor})
	s.Level().Player.Health.Current = 10

	require.NoError(t, s.Step(Intent{Right: true}))
	assert.Equal(t, StatePlayerDead, s.State())
	assert.Equal(t, 1, s.Level().Number)
}

func TestArrowKillsEnemy(t *testing.T) {
	tables := testTables(t)
	mutateMob(t, tables, "imp", func(m *prefabs.MobSpec) {
		m.Health = 5
		m.MeleeDamage = 0
	})
	grid := levels.Grid{
		{wl, wl, wl, wl, wl, wl},
		{wl, pl, fl, fl, im, wl},
		{wl, wl, wl, wl, wl, wl},
	}
	drops := &fixedDrop{kind: obj.ItemCoin, ok: true}
	s := newTestSession(t, tables, mapSource{1: grid}, WithDropper(drops))
	require.Equal(t, 1, s.Level().Enemies.Len())
	require.Equal(t, 0, s.Level().Items.Len())

	stepUntil(t, s, Intent{Fire: true}, 40, func() bool { return s.Level().Enemies.Len() == 0 })

	assert.Equal(t, 1, s.Level().Items.Len(), "the drop lands where the enemy died")
	assert.Equal(t, 1, s.Level().Splatters.Len())
	assert.Equal(t, []bool{false}, drops.boss)
	cues := s.DrainCues()
	assert.Subset(t, cues, []Cue{CueShotFired, CueHitLanded, CueEnemyDied})
	assert.NotContains(t, cues, CuePlayerHurt)
}

func TestMissingNextLevel(t *testing.T) {
	s := newTestSession(t, testTables(t), mapSource{1: corridor})
	var err error
	for i := 0; i < 60 && err == nil; i++ {
		err = s.Step(Intent{Right: true})
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, levels.ErrLevelNotFound)
}

func TestNoPlayerSpawn(t *testing.T) {
	grid := levels.Grid{{wl, wl, wl}, {wl, fl, wl}, {wl, wl, wl}}
	_, err := NewSession(testTables(t), mapSource{1: grid}, 1)
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestInvalidTablesRejected(t *testing.T) {
	tables := testTables(t)
	tables.Game.TileSize = 0
	_, err := NewSession(tables, mapSource{1: corridor}, 1)
	assert.ErrorIs(t, err, prefabs.ErrInvalidTable)
}

func TestSetTablesAppliedOnRespawn(t *testing.T) {
	s := newTestSession(t, testTables(t), mapSource{1: corridor})
	next := testTables(t)
	next.Game.PlayerHealth = 40
	s.SetTables(next)
	assert.Equal(t, 100, s.Level().Player.Health.Max, "not applied mid-level")

	s.Level().Player.TakeHit(1000)
	require.NoError(t, s.Step(Intent{}))
	for !s.DeathFadeDone() {
		require.NoError(t, s.Step(Intent{}))
	}
	require.NoError(t, s.Step(Intent{Restart: true}))
	assert.Equal(t, 40, s.Level().Player.Health.Max)
	assert.Same(t, next, s.Tables())
}

func TestQuitStopsSession(t *testing.T) {
	s := newTestSession(t, testTables(t), mapSource{1: corridor})
	require.NoError(t, s.Step(Intent{Quit: true}))
	assert.True(t, s.Done())
	ticks := s.Ticks()
	require.NoError(t, s.Step(Intent{Right: true}))
	assert.Equal(t, ticks, s.Ticks())
}

func TestIntentAxis(t *testing.T) {
	cases := []struct {
		name   string
		in     Intent
		dx, dy float64
	}{
		{"none", Intent{}, 0, 0},
		{"diagonal", Intent{Up: true, Right: true}, 1, -1},
		{"left_wins", Intent{Left: true, Right: true}, -1, 0},
		{"down_wins", Intent{Up: true, Down: true}, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dx, dy := c.in.Axis()
			assert.Equal(t, c.dx, dx)
			assert.Equal(t, c.dy, dy)
		})
	}
}

func TestHearts(t *testing.T) {
	assert.Equal(t, []Heart{HeartFull, HeartFull, HeartFull, HeartHalf, HeartEmpty}, hearts(70, 20, 5))
	assert.Equal(t, []Heart{HeartFull, HeartFull, HeartFull, HeartFull, HeartFull}, hearts(100, 20, 5))
	assert.Equal(t, []Heart{HeartEmpty, HeartEmpty, HeartEmpty, HeartEmpty, HeartEmpty}, hearts(0, 20, 5))
	assert.Nil(t, hearts(50, 0, 5))
}

func TestSnapshot(t *testing.T) {
	tables := testTables(t)
	s := newTestSession(t, tables, mapSource{1: corridor})
	snap := s.Snapshot()

	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 0.0, snap.DeathFade)
	assert.Equal(t, 1, snap.HUD.Level)
	assert.Equal(t, 100, snap.HUD.Health)
	assert.Len(t, snap.HUD.Hearts, tables.Game.Hearts)

	counts := map[SpriteKind]int{}
	for _, sp := range snap.Sprites {
		counts[sp.Kind]++
	}
	assert.Equal(t, 18, counts[SpriteTile])
	assert.Equal(t, 1, counts[SpritePlayer])
	assert.Equal(t, 1, counts[SpriteBow])
	assert.Equal(t, 1, counts[SpriteItem])
}

type fixedDrop struct {
	kind obj.ItemKind
	ok   bool
	boss []bool
}

func (d *fixedDrop) Drop(boss bool) (obj.ItemKind, bool) {
	d.boss = append(d.boss, boss)
	return d.kind, d.ok
}
