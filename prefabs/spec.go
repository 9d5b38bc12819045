package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTable reports a data table that loads but cannot be used.
var ErrInvalidTable = errors.New("prefabs: invalid table")

func LoadSpec[T any](filename string) (T, error) {
	return loadSpecFrom[T]("", filename)
}

func loadSpecFrom[T any](dir, filename string) (T, error) {
	var zero T
	data, err := loadFrom(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	FPS             int     `yaml:"fps"`
	ScreenWidth     int     `yaml:"screen_width"`
	ScreenHeight    int     `yaml:"screen_height"`
	TileSize        float64 `yaml:"tile_size"`
	PlayerSpeed     float64 `yaml:"player_speed"`
	PlayerSize      float64 `yaml:"player_size"`
	PlayerHealth    int     `yaml:"player_health"`
	ScrollThresh    float64 `yaml:"scroll_thresh"`
	IFrameFrames    int     `yaml:"iframe_frames"`
	AnimationTicks  int     `yaml:"animation_ticks"`
	IntroFadeFrames int     `yaml:"intro_fade_frames"`
	DeathFadeFrames int     `yaml:"death_fade_frames"`
	HeartHP         int     `yaml:"heart_hp"`
	Hearts          int     `yaml:"hearts"`
	DamageTextTTL   int     `yaml:"damage_text_ttl"`
	SplatterKinds   int     `yaml:"splatter_kinds"`
}

type TileKind string

const (
	TileFloor      TileKind = "floor"
	TileDecoration TileKind = "decoration"
	TileWall       TileKind = "wall"
	TileExit       TileKind = "exit"
	TileCoin       TileKind = "coin"
	TilePotion     TileKind = "potion"
	TilePlayer     TileKind = "player"
	TileMob        TileKind = "mob"
)

func (k TileKind) valid() bool {
	switch k {
	case TileFloor, TileDecoration, TileWall, TileExit, TileCoin, TilePotion, TilePlayer, TileMob:
		return true
	}
	return false
}

type TileSpec struct {
	ID   int      `yaml:"id"`
	Kind TileKind `yaml:"kind"`
	Mob  string   `yaml:"mob"`
}

type TilesSpec struct {
	Tiles []TileSpec `yaml:"tiles"`
}

type MobSpec struct {
	Name         string  `yaml:"name"`
	Size         float64 `yaml:"size"`
	Health       int     `yaml:"health"`
	Speed        float64 `yaml:"speed"`
	VisionRange  float64 `yaml:"vision_range"`
	StopRange    float64 `yaml:"stop_range"`
	AttackRange  float64 `yaml:"attack_range"`
	MeleeDamage  int     `yaml:"melee_damage"`
	Ranged       bool    `yaml:"ranged"`
	FireRange    float64 `yaml:"fire_range"`
	FireCooldown int     `yaml:"fire_cooldown"`
	Boss         bool    `yaml:"boss"`
	StunFrames   int     `yaml:"stun_frames"`
	BarWidth     float64 `yaml:"bar_width"`
}

type MobsSpec struct {
	Mobs []MobSpec `yaml:"mobs"`
}

type ProjectileSpec struct {
	Speed  float64 `yaml:"speed"`
	Range  float64 `yaml:"range"`
	Damage int     `yaml:"damage"`
	Spread int     `yaml:"spread"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type WeaponsSpec struct {
	BowCooldown int            `yaml:"bow_cooldown"`
	Arrow       ProjectileSpec `yaml:"arrow"`
	Fireball    ProjectileSpec `yaml:"fireball"`
}

type ItemsSpec struct {
	CoinValue        int     `yaml:"coin_value"`
	PotionHeal       int     `yaml:"potion_heal"`
	CoinDropChance   float64 `yaml:"coin_drop_chance"`
	PotionDropChance float64 `yaml:"potion_drop_chance"`
	DropScript       string  `yaml:"drop_script"`
	Size             float64 `yaml:"size"`
	CoinFrames       int     `yaml:"coin_frames"`
}

// Tables bundles every gameplay table a session needs.
type Tables struct {
	Game    GameSpec
	Tiles   TilesSpec
	Mobs    MobsSpec
	Weapons WeaponsSpec
	Items   ItemsSpec
	// DropScript is the tengo source named by Items.DropScript, if any.
	DropScript []byte

	mobs map[string]*MobSpec
}

// LoadTables reads all tables, preferring files under dir over the embedded
// copies. An empty dir means "prefabs".
func LoadTables(dir string) (*Tables, error) {
	var t Tables
	var err error
	if t.Game, err = loadSpecFrom[GameSpec](dir, "game.yaml"); err != nil {
		return nil, err
	}
	if t.Tiles, err = loadSpecFrom[TilesSpec](dir, "tiles.yaml"); err != nil {
		return nil, err
	}
	if t.Mobs, err = loadSpecFrom[MobsSpec](dir, "mobs.yaml"); err != nil {
		return nil, err
	}
	if t.Weapons, err = loadSpecFrom[WeaponsSpec](dir, "weapons.yaml"); err != nil {
		return nil, err
	}
	if t.Items, err = loadSpecFrom[ItemsSpec](dir, "items.yaml"); err != nil {
		return nil, err
	}
	if t.Items.DropScript != "" {
		if t.DropScript, err = loadScriptFrom(dir, t.Items.DropScript); err != nil {
			return nil, fmt.Errorf("prefabs: load script %s: %w", t.Items.DropScript, err)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks cross-table references and indexes mobs by name.
func (t *Tables) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil tables", ErrInvalidTable)
	}
	if t.Game.TileSize <= 0 {
		return fmt.Errorf("%w: tile_size must be positive", ErrInvalidTable)
	}
	if t.Game.PlayerHealth <= 0 {
		return fmt.Errorf("%w: player_health must be positive", ErrInvalidTable)
	}
	t.mobs = make(map[string]*MobSpec, len(t.Mobs.Mobs))
	for i := range t.Mobs.Mobs {
		m := &t.Mobs.Mobs[i]
		if m.Name == "" {
			return fmt.Errorf("%w: mob %d has no name", ErrInvalidTable, i)
		}
		if _, dup := t.mobs[m.Name]; dup {
			return fmt.Errorf("%w: duplicate mob %q", ErrInvalidTable, m.Name)
		}
		if m.Health <= 0 {
			return fmt.Errorf("%w: mob %q health must be positive", ErrInvalidTable, m.Name)
		}
		t.mobs[m.Name] = m
	}
	seen := make(map[int]bool, len(t.Tiles.Tiles))
	for _, tile := range t.Tiles.Tiles {
		if tile.ID < 0 {
			return fmt.Errorf("%w: tile id %d is negative", ErrInvalidTable, tile.ID)
		}
		if seen[tile.ID] {
			return fmt.Errorf("%w: duplicate tile id %d", ErrInvalidTable, tile.ID)
		}
		seen[tile.ID] = true
		if !tile.Kind.valid() {
			return fmt.Errorf("%w: tile %d has unknown kind %q", ErrInvalidTable, tile.ID, tile.Kind)
		}
		if tile.Kind == TileMob {
			if _, ok := t.mobs[tile.Mob]; !ok {
				return fmt.Errorf("%w: tile %d spawns unknown mob %q", ErrInvalidTable, tile.ID, tile.Mob)
			}
		}
	}
	return nil
}

// Mob returns the stats for a mob type.
func (t *Tables) Mob(name string) (*MobSpec, bool) {
	if t == nil || t.mobs == nil {
		return nil, false
	}
	m, ok := t.mobs[name]
	return m, ok
}
