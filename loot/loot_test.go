package loot

import (
	"math/rand"
	"testing"

	"github.com/milk9111/dungeon/obj"
	"github.com/milk9111/dungeon/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItems = prefabs.ItemsSpec{CoinDropChance: 0.3, PotionDropChance: 0.1}

func TestTableDropper(t *testing.T) {
	d := NewTableDropper(testItems, rand.New(rand.NewSource(1)))

	kind, ok := d.Drop(true)
	require.True(t, ok)
	assert.Equal(t, obj.ItemPotion, kind)

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		kind, ok := d.Drop(false)
		if !ok {
			counts["none"]++
			continue
		}
		counts[kind.String()]++
	}
	assert.InDelta(t, 1000, counts["potion"], 200)
	assert.InDelta(t, 3000, counts["coin"], 300)
	assert.InDelta(t, 6000, counts["none"], 300)
}

func TestScriptDropperMatchesTable(t *testing.T) {
	src, err := prefabs.LoadScript("drops.tengo")
	require.NoError(t, err)

	d, err := NewScriptDropper(src, testItems, rand.New(rand.NewSource(1)), nil, zerolog.Nop())
	require.NoError(t, err)

	cases := []struct {
		roll float64
		boss bool
		want string
	}{
		{0.05, false, "potion"},
		{0.2, false, "coin"},
		{0.9, false, ""},
		{0.9, true, "potion"},
	}
	for _, c := range cases {
		kind, ok, err := d.run(c.roll, c.boss)
		require.NoError(t, err)
		if c.want == "" {
			assert.False(t, ok, "roll %v", c.roll)
			continue
		}
		require.True(t, ok, "roll %v", c.roll)
		assert.Equal(t, c.want, kind.String())
	}
}

func TestScriptDropperFallsBack(t *testing.T) {
	src := []byte(`drop := "sword"`)
	fallback := NewTableDropper(testItems, rand.New(rand.NewSource(2)))
	d, err := NewScriptDropper(src, testItems, rand.New(rand.NewSource(2)), fallback, zerolog.Nop())
	require.NoError(t, err)

	kind, ok := d.Drop(true)
	require.True(t, ok)
	assert.Equal(t, obj.ItemPotion, kind, "fallback table answers for bosses")
}

func TestScriptDropperCompileError(t *testing.T) {
	_, err := NewScriptDropper([]byte(`drop := (`), testItems, rand.New(rand.NewSource(1)), nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewPicksDropper(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d, err := New(&prefabs.Tables{Items: testItems}, rng, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &TableDropper{}, d)

	d, err = New(&prefabs.Tables{Items: testItems, DropScript: []byte(`drop := ""`)}, rng, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &ScriptDropper{}, d)
}
