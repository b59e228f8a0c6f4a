package atlas

import (
	"bytes"

	"github.com/npillmayer/bitglyph/core"
)

// Font is an immutable bitmap font atlas.
//
// Fonts are created by a Builder or by decoding a serialized font. They are
// never modified afterwards, therefore all methods are safe for concurrent use.
type Font struct {
	bitmap []byte
	width  uint32
	single CharTable
	pairs  *pairTable
}

// Bitmap returns the atlas pixel data, one byte per pixel, row by row.
// The returned slice is owned by the font and must not be modified.
func (f *Font) Bitmap() []byte {
	return f.bitmap
}

// Width returns the stride of the atlas in pixels.
func (f *Font) Width() uint32 {
	return f.width
}

// Height returns the number of complete pixel rows of the atlas.
func (f *Font) Height() uint32 {
	if f.width == 0 {
		return 0
	}
	return uint32(len(f.bitmap)) / f.width
}

// Strategy returns the storage strategy of the single-character table.
func (f *Font) Strategy() Strategy {
	return f.single.Strategy()
}

// SingleCount returns the number of entries in the single-character table.
func (f *Font) SingleCount() int {
	return f.single.Len()
}

// PairCount returns the number of ligatures.
func (f *Font) PairCount() int {
	return f.pairs.m.Size()
}

// EachSingle calls fn for every single character of f, in ascending order.
func (f *Font) EachSingle(fn func(rune, Glyph)) {
	f.single.Each(fn)
}

// EachPair calls fn for every ligature of f, in ascending order of pairs.
func (f *Font) EachPair(fn func(Pair, Glyph)) {
	f.pairs.each(fn)
}

// LookupSingle returns the glyph for exactly one character.
func (f *Font) LookupSingle(c rune) (Glyph, bool) {
	return f.single.Lookup(c)
}

// LookupDouble returns the ligature glyph for the ordered pair (c1, c2).
func (f *Font) LookupDouble(c1, c2 rune) (Glyph, bool) {
	return f.pairs.lookup(Pair{c1, c2})
}

// Lookup resolves the character at position pos of text, preferring a
// ligature of text[pos] and text[pos+1] over a glyph for text[pos] alone.
//
// If pos is outside of text, ok is false. Otherwise Lookup always returns
// an outcome: characters the font does not cover yield an Unknown outcome,
// which consumes one position just like a Single one.
func (f *Font) Lookup(text []rune, pos int) (outcome Outcome, ok bool) {
	if pos < 0 || pos >= len(text) {
		return Outcome{}, false
	}
	c := text[pos]
	if pos+1 < len(text) {
		if g, found := f.LookupDouble(c, text[pos+1]); found {
			return DoubleOutcome(g, Pair{c, text[pos+1]}), true
		}
	}
	if g, found := f.LookupSingle(c); found {
		return SingleOutcome(g, c), true
	}
	return UnknownOutcome(c), true
}

// Equal reports whether f and other hold the same bitmap, width, storage
// strategy and tables.
func (f *Font) Equal(other *Font) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.width != other.width || !bytes.Equal(f.bitmap, other.bitmap) {
		return false
	}
	if f.Strategy() != other.Strategy() || f.SingleCount() != other.SingleCount() ||
		f.PairCount() != other.PairCount() {
		return false
	}
	equal := true
	f.EachSingle(func(c rune, g Glyph) {
		if h, ok := other.LookupSingle(c); !ok || h != g {
			equal = false
		}
	})
	f.EachPair(func(p Pair, g Glyph) {
		if h, ok := other.LookupDouble(p[0], p[1]); !ok || h != g {
			equal = false
		}
	})
	return equal
}

// Validate checks that every glyph cell lies within the atlas bitmap.
// Lookups never call Validate; it is meant for font compilers.
func (f *Font) Validate() error {
	height := uint64(f.Height())
	var err error
	check := func(what string, g Glyph) {
		if err != nil {
			return
		}
		if uint64(g.Pos.X)+uint64(g.Size.W) > uint64(f.width) ||
			uint64(g.Pos.Y)+uint64(g.Size.H) > height {
			err = core.Error(core.EINVALID, "glyph %s for %s exceeds atlas of %dx%d",
				g, what, f.width, height)
		}
	}
	f.EachSingle(func(c rune, g Glyph) { check(string(c), g) })
	f.EachPair(func(p Pair, g Glyph) { check(p.String(), g) })
	if err != nil {
		tracer().Errorf("%v", err)
	}
	return err
}
