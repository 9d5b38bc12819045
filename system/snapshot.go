package system

import (
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/obj"
)

type SpriteKind int

const (
	SpriteTile SpriteKind = iota
	SpriteSplatter
	SpriteEnemy
	SpritePlayer
	SpriteBow
	SpriteArrow
	SpriteFireball
	SpriteDamageText
	SpriteItem
)

// Sprite is one drawable. Layer orders drawing; lower layers go first.
type Sprite struct {
	Kind  SpriteKind
	Layer int
	// Name is the tile kind, mob name or item kind.
	Name  string
	ID    int
	Rect  common.Rect
	Clip  component.Clip
	Frame int
	FlipX bool
	// Angle is a heading in degrees, 0 = right, 90 = up.
	Angle float64
	Text  string

	Health    int
	MaxHealth int
	BarWidth  float64
	Boss      bool
	// Visible is false for enemies the player has no line of sight to.
	Visible bool
}

type Heart int

const (
	HeartEmpty Heart = iota
	HeartHalf
	HeartFull
)

type HUD struct {
	Health    int
	MaxHealth int
	Score     int
	Level     int
	Hearts    []Heart
	ScoreCoin Sprite
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	State   RunState
	Sprites []Sprite
	HUD     HUD
	// IntroFade and DeathFade run from 0 to 1.
	IntroFade     float64
	DeathFade     float64
	DeathFadeDone bool
}

// Snapshot captures the current frame for drawing.
func (s *Session) Snapshot() Snapshot {
	lvl := s.level
	g := s.tables.Game
	snap := Snapshot{
		State:         s.state,
		IntroFade:     progress(s.introFade, g.IntroFadeFrames),
		DeathFade:     progress(s.deathFade, g.DeathFadeFrames),
		DeathFadeDone: s.DeathFadeDone(),
	}
	if s.state != StatePlayerDead {
		snap.DeathFade = 0
	}

	screen := common.Rect{Width: float64(g.ScreenWidth), Height: float64(g.ScreenHeight)}
	for _, t := range lvl.World.Tiles {
		if screen.Width > 0 && !t.Rect.Intersects(screen) {
			continue
		}
		snap.Sprites = append(snap.Sprites, Sprite{Kind: SpriteTile, Layer: 0, Name: string(t.Kind), ID: t.ID, Rect: t.Rect})
	}
	lvl.Splatters.Each(func(_ ecs.Entity, sp *obj.Splatter) {
		snap.Sprites = append(snap.Sprites, Sprite{
			Kind: SpriteSplatter, Layer: 1, ID: sp.Variant,
			Rect: common.RectAround(sp.Pos, g.TileSize, g.TileSize),
		})
	})

	player := lvl.Player
	eye := player.Center()
	lvl.Enemies.Each(func(_ ecs.Entity, e *obj.Enemy) {
		snap.Sprites = append(snap.Sprites, Sprite{
			Kind: SpriteEnemy, Layer: 2, Name: e.Name, Rect: e.Rect,
			Clip: e.Anim.Clip, Frame: e.Anim.Frame(), FlipX: e.FlipX,
			Health: e.Health.Current, MaxHealth: e.Health.Max,
			BarWidth: e.Stats.BarWidth, Boss: e.Boss(),
			Visible: !obj.LineOfSightBlocked(e.Center(), eye, lvl.World.Obstacles),
		})
	})
	snap.Sprites = append(snap.Sprites,
		Sprite{
			Kind: SpritePlayer, Layer: 3, Name: player.Name, Rect: player.Rect,
			Clip: player.Anim.Clip, Frame: player.Anim.Frame(), FlipX: player.FlipX,
			Health: player.Health.Current, MaxHealth: player.Health.Max, Visible: player.Alive(),
		},
		Sprite{Kind: SpriteBow, Layer: 4, Rect: player.Rect, Angle: lvl.Bow.Angle, Visible: player.Alive()},
	)
	lvl.Arrows.Each(func(_ ecs.Entity, a *obj.Projectile) {
		snap.Sprites = append(snap.Sprites, projectileSprite(SpriteArrow, a))
	})
	lvl.Fireballs.Each(func(_ ecs.Entity, f *obj.Projectile) {
		snap.Sprites = append(snap.Sprites, projectileSprite(SpriteFireball, f))
	})
	lvl.Texts.Each(func(_ ecs.Entity, d *obj.DamageText) {
		snap.Sprites = append(snap.Sprites, Sprite{
			Kind: SpriteDamageText, Layer: 6, Text: d.Text,
			Rect: common.Rect{X: d.Pos.X, Y: d.Pos.Y},
		})
	})
	lvl.Items.Each(func(_ ecs.Entity, it *obj.Item) {
		snap.Sprites = append(snap.Sprites, itemSprite(it))
	})

	snap.HUD = HUD{
		Health:    player.Health.Current,
		MaxHealth: player.Health.Max,
		Score:     player.Score,
		Level:     lvl.Number,
		Hearts:    hearts(player.Health.Current, g.HeartHP, g.Hearts),
		ScoreCoin: itemSprite(lvl.ScoreCoin),
	}
	return snap
}

func projectileSprite(kind SpriteKind, p *obj.Projectile) Sprite {
	return Sprite{Kind: kind, Layer: 5, Name: p.Kind.String(), Rect: p.Rect, Angle: p.Angle, Visible: true}
}

func itemSprite(it *obj.Item) Sprite {
	return Sprite{
		Kind: SpriteItem, Layer: 7, Name: it.Kind.String(), Rect: it.Rect,
		Frame: it.Anim.Frame(), Visible: true,
	}
}

// hearts splits health into full hearts, at most one half heart for the
// remainder, and empty hearts.
func hearts(health, perHeart, count int) []Heart {
	if perHeart <= 0 || count <= 0 {
		return nil
	}
	out := make([]Heart, count)
	half := false
	for i := range out {
		switch {
		case health >= (i+1)*perHeart:
			out[i] = HeartFull
		case health%perHeart > 0 && !half:
			out[i] = HeartHalf
			half = true
		default:
			out[i] = HeartEmpty
		}
	}
	return out
}

func progress(n, total int) float64 {
	if total <= 0 {
		return 1
	}
	if n >= total {
		return 1
	}
	return float64(n) / float64(total)
}
