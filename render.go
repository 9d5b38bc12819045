package main

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	floorColor = color.RGBA{R: 0x3b, G: 0x33, B: 0x2f, A: 0xff}
	wallColor  = color.RGBA{R: 0x1d, G: 0x18, B: 0x21, A: 0xff}
	bloodColor = color.RGBA{R: 0x6a, G: 0x08, B: 0x08, A: 0xc0}
)

var mobColors = map[string]color.Color{
	"imp":         colornames.Orangered,
	"skeleton":    colornames.Ivory,
	"goblin":      colornames.Olivedrab,
	"muddy":       colornames.Saddlebrown,
	"tiny_zombie": colornames.Darkseagreen,
	"big_demon":   colornames.Darkred,
}

// Renderer draws snapshots with flat shapes.
type Renderer struct {
	face text.Face
}

func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *Renderer) Draw(screen *ebiten.Image, snap system.Snapshot) {
	screen.Fill(colornames.Black)

	sprites := slices.Clone(snap.Sprites)
	slices.SortStableFunc(sprites, func(a, b system.Sprite) int { return a.Layer - b.Layer })
	for _, sp := range sprites {
		r.drawSprite(screen, sp)
	}
	r.drawHUD(screen, snap.HUD)

	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	if snap.IntroFade < 1 {
		vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: uint8(255 * (1 - snap.IntroFade))}, false)
	}
	if snap.State == system.StatePlayerDead {
		vector.FillRect(screen, 0, 0, w, h, color.RGBA{R: 0x40, A: uint8(200 * snap.DeathFade)}, false)
	}
}

func (r *Renderer) drawSprite(screen *ebiten.Image, sp system.Sprite) {
	switch sp.Kind {
	case system.SpriteTile:
		fillRect(screen, sp.Rect, tileColor(sp))
	case system.SpriteSplatter:
		inset := float64(4 + 3*sp.ID)
		fillRect(screen, common.Rect{
			X: sp.Rect.X + inset, Y: sp.Rect.Y + inset,
			Width: sp.Rect.Width - 2*inset, Height: sp.Rect.Height - 2*inset,
		}, bloodColor)
	case system.SpriteEnemy:
		clr, ok := mobColors[sp.Name]
		if !ok {
			clr = colornames.Purple
		}
		fillRect(screen, bob(sp), clr)
		if sp.Visible {
			r.drawHealthBar(screen, sp)
		}
	case system.SpritePlayer:
		if !sp.Visible {
			return
		}
		fillRect(screen, bob(sp), colornames.Forestgreen)
	case system.SpriteBow:
		if !sp.Visible {
			return
		}
		c := sp.Rect.Center()
		tip := c.Add(heading(sp.Angle).Mult(sp.Rect.Width * 0.7))
		vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(tip.X), float32(tip.Y), 3, colornames.Burlywood, true)
	case system.SpriteArrow:
		c := sp.Rect.Center()
		tail := c.Sub(heading(sp.Angle).Mult(sp.Rect.Width))
		vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(c.X), float32(c.Y), 2, colornames.Lightgrey, true)
	case system.SpriteFireball:
		fillRect(screen, sp.Rect, colornames.Orange)
	case system.SpriteDamageText:
		r.drawText(screen, sp.Text, sp.Rect.X, sp.Rect.Y, colornames.Red)
	case system.SpriteItem:
		fillRect(screen, itemRect(sp), itemColor(sp))
	}
}

func tileColor(sp system.Sprite) color.Color {
	switch sp.Name {
	case "wall":
		return wallColor
	case "exit":
		return colornames.Steelblue
	case "decoration":
		c := floorColor
		c.G += uint8(4 * (sp.ID % 6))
		return c
	}
	return floorColor
}

// bob lifts a running sprite by a pixel on odd frames.
func bob(sp system.Sprite) common.Rect {
	r := sp.Rect
	if sp.Clip == component.ClipRun && sp.Frame%2 == 1 {
		r.Y--
	}
	return r
}

func heading(deg float64) cp.Vector {
	rad := deg * math.Pi / 180
	return cp.Vector{X: math.Cos(rad), Y: -math.Sin(rad)}
}

// itemRect narrows a coin across its frames so it appears to spin.
func itemRect(sp system.Sprite) common.Rect {
	r := sp.Rect
	if sp.Name != "coin" {
		return r
	}
	scale := []float64{1, 0.6, 0.2, 0.6}[sp.Frame%4]
	w := r.Width * scale
	r.X += (r.Width - w) / 2
	r.Width = w
	return r
}

func itemColor(sp system.Sprite) color.Color {
	if sp.Name == "potion" {
		return colornames.Crimson
	}
	return colornames.Gold
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, sp system.Sprite) {
	if sp.MaxHealth <= 0 || sp.BarWidth <= 0 {
		return
	}
	c := sp.Rect.Center()
	bar := common.Rect{X: c.X - sp.BarWidth/2, Y: sp.Rect.Y - 10, Width: sp.BarWidth, Height: 5}
	if sp.Boss {
		bar.Height = 8
		bar.Y -= 4
	}
	fillRect(screen, bar, colornames.Darkred)
	bar.Width *= float64(sp.Health) / float64(sp.MaxHealth)
	fillRect(screen, bar, colornames.Limegreen)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud system.HUD) {
	const size, gap = 24.0, 6.0
	for i, h := range hud.Hearts {
		slot := common.Rect{X: 10 + float64(i)*(size+gap), Y: 10, Width: size, Height: size}
		fillRect(screen, slot, colornames.Dimgray)
		switch h {
		case system.HeartFull:
			fillRect(screen, slot, colornames.Red)
		case system.HeartHalf:
			slot.Width /= 2
			fillRect(screen, slot, colornames.Red)
		}
	}
	coin := hud.ScoreCoin
	fillRect(screen, itemRect(coin), itemColor(coin))
	r.drawText(screen, fmt.Sprintf("x %d", hud.Score), coin.Rect.Right()+8, coin.Rect.Y+8, colornames.White)
	r.drawText(screen, fmt.Sprintf("LEVEL %d", hud.Level), 10, 44, colornames.White)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}
