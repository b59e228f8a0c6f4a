package atlas

import (
	"github.com/npillmayer/bitglyph/core"
)

// Builder collects the contents of a font. It is the construction boundary
// for font compilers; once Build has been called, the resulting font is
// independent of the builder.
//
// Errors are collected and reported by Build, which lets clients chain calls.
type Builder struct {
	bitmap []byte
	width  uint32
	single map[rune]Glyph
	order  []rune
	pairs  map[Pair]Glyph
	err    error
}

// NewBuilder starts a font with a copy of an atlas bitmap of a given stride.
func NewBuilder(bitmap []byte, width uint32) *Builder {
	bm := make([]byte, len(bitmap))
	copy(bm, bitmap)
	return &Builder{
		bitmap: bm,
		width:  width,
		single: make(map[rune]Glyph),
		pairs:  make(map[Pair]Glyph),
	}
}

// AddSingle maps character c to glyph g. Mapping a character twice is an error.
func (b *Builder) AddSingle(c rune, g Glyph) *Builder {
	if _, dup := b.single[c]; dup {
		b.fail(core.Error(core.EINVALID, "duplicate glyph for character %q", c))
		return b
	}
	b.single[c] = g
	b.order = append(b.order, c)
	return b
}

// AddPair maps the ordered pair (c1, c2) to ligature glyph g.
// Mapping a pair twice is an error.
func (b *Builder) AddPair(c1, c2 rune, g Glyph) *Builder {
	p := Pair{c1, c2}
	if _, dup := b.pairs[p]; dup {
		b.fail(core.Error(core.EINVALID, "duplicate ligature for %q", p.String()))
		return b
	}
	b.pairs[p] = g
	return b
}

func (b *Builder) fail(err error) {
	tracer().Errorf("%v", err)
	if b.err == nil {
		b.err = err
	}
}

// Build creates the font, storing single characters with strategy s.
// If s is Auto, ChooseStrategy selects the strategy.
func (b *Builder) Build(s Strategy) (*Font, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.width == 0 && len(b.bitmap) > 0 {
		return nil, core.Error(core.EINVALID, "atlas bitmap of %d bytes has zero width", len(b.bitmap))
	}
	if s == Auto {
		s = ChooseStrategy(b.order)
	}
	f := &Font{
		bitmap: b.bitmap,
		width:  b.width,
		pairs:  newPairTable(),
	}
	switch s {
	case Sparse:
		t := newSparseTable()
		for c, g := range b.single {
			t.put(c, g)
		}
		f.single = t
	case Dense:
		var max rune
		for c := range b.single {
			if c < 0 || c > MaxDenseChar {
				return nil, core.Error(core.EINVALID,
					"character %U does not fit into a dense table", c)
			}
			if c > max {
				max = c
			}
		}
		t := newDenseTable(max)
		for c, g := range b.single {
			t.put(c, g)
		}
		f.single = t
	default:
		return nil, core.Error(core.EINVALID, "unknown storage strategy %s", s)
	}
	for p, g := range b.pairs {
		f.pairs.put(p, g)
	}
	tracer().Debugf("built %s font with %d characters and %d ligatures",
		s, f.SingleCount(), f.PairCount())
	return f, nil
}
