package obj

import (
	"math/rand"
	"strconv"

	"github.com/jakecoffman/cp"
)

// DamageText is a floating damage number that rises and fades out.
type DamageText struct {
	Pos  cp.Vector
	Text string
	Age  int
	TTL  int
}

func NewDamageText(pos cp.Vector, damage, ttl int) *DamageText {
	return &DamageText{Pos: pos, Text: strconv.Itoa(damage), TTL: ttl}
}

// Update follows the scroll, rises one pixel and reports whether the text is
// still showing.
func (d *DamageText) Update(scroll cp.Vector) bool {
	d.Pos = d.Pos.Add(scroll)
	d.Pos.Y--
	d.Age++
	return d.Age <= d.TTL
}

// Splatter is a blood decal left where an enemy died.
type Splatter struct {
	Pos     cp.Vector
	Variant int
}

// NewSplatter picks one of kinds variants, numbered from 1.
func NewSplatter(pos cp.Vector, kinds int, rng *rand.Rand) *Splatter {
	v := 1
	if kinds > 1 && rng != nil {
		v = rng.Intn(kinds) + 1
	}
	return &Splatter{Pos: pos, Variant: v}
}

func (s *Splatter) Update(scroll cp.Vector) {
	s.Pos = s.Pos.Add(scroll)
}
