package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/common"
	"github.com/milk9111/dungeon/component"
	"github.com/milk9111/dungeon/prefabs"
)

type ItemKind int

const (
	ItemCoin ItemKind = iota
	ItemPotion
)

func (k ItemKind) String() string {
	if k == ItemPotion {
		return "potion"
	}
	return "coin"
}

// ParseItemKind maps a drop name to an item kind.
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "coin":
		return ItemCoin, true
	case "potion":
		return ItemPotion, true
	}
	return 0, false
}

type Item struct {
	Kind  ItemKind
	Rect  common.Rect
	Value int
	// HUD marks the display-only score coin. It stays put and is never collected.
	HUD       bool
	Collected bool
	Anim      *component.Animation
}

// NewItem creates a pickup centered on pos with its value from the table.
func NewItem(kind ItemKind, pos cp.Vector, spec prefabs.ItemsSpec, animTicks int) *Item {
	value := spec.CoinValue
	frames := spec.CoinFrames
	if kind == ItemPotion {
		value = spec.PotionHeal
		frames = 1
	}
	return &Item{
		Kind:  kind,
		Rect:  common.RectAround(pos, spec.Size, spec.Size),
		Value: value,
		Anim:  component.NewAnimation(frames, animTicks, true),
	}
}

// NewScoreCoin creates the HUD coin shown next to the score.
func NewScoreCoin(pos cp.Vector, spec prefabs.ItemsSpec, animTicks int) *Item {
	it := NewItem(ItemCoin, pos, spec, animTicks)
	it.HUD = true
	it.Value = 0
	return it
}

// Update follows the scroll and applies the item's effect once when the
// player touches it. It reports whether the item was collected this frame.
func (it *Item) Update(scroll cp.Vector, p *Player) bool {
	if it == nil {
		return false
	}
	it.Anim.Update()
	if it.HUD || it.Collected {
		return false
	}
	it.Rect = it.Rect.Offset(scroll)
	if p == nil || !p.Alive() || !it.Rect.Intersects(p.Rect) {
		return false
	}
	switch it.Kind {
	case ItemCoin:
		p.AddScore(it.Value)
	case ItemPotion:
		p.Heal(it.Value)
	}
	it.Collected = true
	return true
}
