package atlas

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Strategy selects how a font stores its single-character table.
type Strategy uint8

// Storage strategies for single characters. Auto is not a strategy of its own,
// but asks ChooseStrategy to select one.
const (
	Sparse Strategy = iota // ordered map, full Unicode range
	Dense                  // flat array indexed by a 16-bit code unit
	Auto
)

// MaxDenseChar is the largest character a dense table is able to hold.
const MaxDenseChar = 0xFFFF

func (s Strategy) String() string {
	switch s {
	case Sparse:
		return "sparse"
	case Dense:
		return "dense"
	case Auto:
		return "auto"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy reads a strategy name as used in configuration files.
// The empty string denotes Auto.
func ParseStrategy(name string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sparse":
		return Sparse, true
	case "dense":
		return Dense, true
	case "auto", "":
		return Auto, true
	}
	return Auto, false
}

// ChooseStrategy selects a storage strategy for a set of single characters.
// Dense is chosen if every character fits into a 16-bit code unit and at least
// one eighth of the array slots would be in use.
func ChooseStrategy(chars []rune) Strategy {
	if len(chars) == 0 {
		return Sparse
	}
	var max rune
	for _, c := range chars {
		if c < 0 || c > MaxDenseChar {
			return Sparse
		}
		if c > max {
			max = c
		}
	}
	if len(chars)*8 >= int(max)+1 {
		return Dense
	}
	return Sparse
}

// CharTable is the lookup capability of a single-character table.
// There are two implementations, one for each Strategy.
type CharTable interface {
	Lookup(c rune) (Glyph, bool)
	Len() int
	Each(func(rune, Glyph)) // in ascending order of characters
	Strategy() Strategy
}

// --- Sparse ----------------------------------------------------------------

type sparseTable struct {
	m *treemap.Map // rune → Glyph
}

func newSparseTable() *sparseTable {
	return &sparseTable{m: treemap.NewWith(utils.RuneComparator)}
}

func (t *sparseTable) put(c rune, g Glyph) {
	t.m.Put(c, g)
}

func (t *sparseTable) Lookup(c rune) (Glyph, bool) {
	v, found := t.m.Get(c)
	if !found {
		return Glyph{}, false
	}
	return v.(Glyph), true
}

func (t *sparseTable) Len() int {
	return t.m.Size()
}

func (t *sparseTable) Each(f func(rune, Glyph)) {
	it := t.m.Iterator()
	for it.Next() {
		f(it.Key().(rune), it.Value().(Glyph))
	}
}

func (t *sparseTable) Strategy() Strategy {
	return Sparse
}

// --- Dense -----------------------------------------------------------------

type denseSlot struct {
	glyph Glyph
	used  bool
}

type denseTable struct {
	slots []denseSlot // indexed by code unit, up to the largest one in use
	count int
}

func newDenseTable(max rune) *denseTable {
	return &denseTable{slots: make([]denseSlot, int(max)+1)}
}

func (t *denseTable) put(c rune, g Glyph) {
	if !t.slots[c].used {
		t.count++
	}
	t.slots[c] = denseSlot{glyph: g, used: true}
}

func (t *denseTable) Lookup(c rune) (Glyph, bool) {
	if c < 0 || int(c) >= len(t.slots) {
		return Glyph{}, false
	}
	s := t.slots[c]
	return s.glyph, s.used
}

func (t *denseTable) Len() int {
	return t.count
}

func (t *denseTable) Each(f func(rune, Glyph)) {
	for i, s := range t.slots {
		if s.used {
			f(rune(i), s.glyph)
		}
	}
}

func (t *denseTable) Strategy() Strategy {
	return Dense
}

// --- Ligatures -------------------------------------------------------------

type pairTable struct {
	m *treemap.Map // Pair → Glyph
}

func newPairTable() *pairTable {
	return &pairTable{m: treemap.NewWith(comparePairs)}
}

func (t *pairTable) put(p Pair, g Glyph) {
	t.m.Put(p, g)
}

func (t *pairTable) lookup(p Pair) (Glyph, bool) {
	v, found := t.m.Get(p)
	if !found {
		return Glyph{}, false
	}
	return v.(Glyph), true
}

func (t *pairTable) each(f func(Pair, Glyph)) {
	it := t.m.Iterator()
	for it.Next() {
		f(it.Key().(Pair), it.Value().(Glyph))
	}
}
