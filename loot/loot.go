// Package loot decides what dead enemies leave behind.
package loot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dungeon/obj"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/rs/zerolog"
)

// TableDropper rolls drops from the chances in the items table. Bosses
// always leave a potion.
type TableDropper struct {
	items prefabs.ItemsSpec
	rng   *rand.Rand
}

func NewTableDropper(items prefabs.ItemsSpec, rng *rand.Rand) *TableDropper {
	return &TableDropper{items: items, rng: rng}
}

func (d *TableDropper) Drop(boss bool) (obj.ItemKind, bool) {
	if boss {
		return obj.ItemPotion, true
	}
	roll := d.rng.Float64()
	switch {
	case roll < d.items.PotionDropChance:
		return obj.ItemPotion, true
	case roll < d.items.PotionDropChance+d.items.CoinDropChance:
		return obj.ItemCoin, true
	}
	return 0, false
}

// ScriptDropper asks a tengo script for the drop. The script sees roll, boss,
// coin_chance and potion_chance and sets drop to "coin", "potion" or "".
// A script that fails at run time defers to the fallback for that roll.
type ScriptDropper struct {
	compiled *tengo.Compiled
	items    prefabs.ItemsSpec
	rng      *rand.Rand
	fallback obj.Dropper
	logger   zerolog.Logger
}

func NewScriptDropper(src []byte, items prefabs.ItemsSpec, rng *rand.Rand, fallback obj.Dropper, logger zerolog.Logger) (*ScriptDropper, error) {
	script := tengo.NewScript(src)
	_ = script.Add("roll", 0.0)
	_ = script.Add("boss", false)
	_ = script.Add("coin_chance", items.CoinDropChance)
	_ = script.Add("potion_chance", items.PotionDropChance)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("loot: compile drop script: %w", err)
	}
	return &ScriptDropper{
		compiled: compiled,
		items:    items,
		rng:      rng,
		fallback: fallback,
		logger:   logger,
	}, nil
}

func (d *ScriptDropper) Drop(boss bool) (obj.ItemKind, bool) {
	kind, ok, err := d.run(d.rng.Float64(), boss)
	if err != nil {
		d.logger.Warn().Err(err).Msg("drop script failed")
		if d.fallback == nil {
			return 0, false
		}
		return d.fallback.Drop(boss)
	}
	return kind, ok
}

func (d *ScriptDropper) run(roll float64, boss bool) (obj.ItemKind, bool, error) {
	if err := d.compiled.Set("roll", roll); err != nil {
		return 0, false, err
	}
	if err := d.compiled.Set("boss", boss); err != nil {
		return 0, false, err
	}
	if err := d.compiled.Run(); err != nil {
		return 0, false, fmt.Errorf("loot: run drop script: %w", err)
	}
	if !d.compiled.IsDefined("drop") {
		return 0, false, fmt.Errorf("loot: drop script does not define drop")
	}
	name := strings.TrimSpace(d.compiled.Get("drop").String())
	if name == "" {
		return 0, false, nil
	}
	kind, ok := obj.ParseItemKind(name)
	if !ok {
		return 0, false, fmt.Errorf("loot: drop script returned unknown item %q", name)
	}
	return kind, true, nil
}

// New picks the script dropper when the tables carry a drop script and the
// table dropper otherwise. A script that does not compile is an error.
func New(tables *prefabs.Tables, rng *rand.Rand, logger zerolog.Logger) (obj.Dropper, error) {
	table := NewTableDropper(tables.Items, rng)
	if len(tables.DropScript) == 0 {
		return table, nil
	}
	return NewScriptDropper(tables.DropScript, tables.Items, rng, table, logger)
}
