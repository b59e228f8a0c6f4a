package compile

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/schuko/gconf"
)

// Options control font compilation.
type Options struct {
	Strategy       atlas.Strategy // storage strategy; Auto lets the compiler choose
	SkipValidation bool           // do not check glyph cells against the atlas bounds
}

// DefaultOptions returns options with the storage strategy taken from the
// global configuration key 'atlas-strategy'.
func DefaultOptions() Options {
	name := gconf.GetString("atlas-strategy")
	s, ok := atlas.ParseStrategy(name)
	if !ok {
		tracer().Errorf("configuration: unknown atlas strategy %q, using auto", name)
	}
	return Options{Strategy: s}
}

// Pixel values for bitmap rows of atlas descriptions.
const (
	Ink   = 0xFF
	Blank = 0x00
)

func pixel(c rune) (byte, bool) {
	switch c {
	case '#', 'X':
		return Ink, true
	case '.', ' ':
		return Blank, true
	}
	return 0, false
}

// Compile creates an atlas font from a description.
//
// A strategy declared within the description takes precedence over an Auto
// strategy in opts; an explicit strategy in opts always wins.
func (desc *Description) Compile(opts Options) (*atlas.Font, error) {
	var bitmap []byte
	width := -1
	strategy := opts.Strategy
	for _, e := range desc.Entries {
		switch {
		case e.Strategy != nil:
			s, ok := atlas.ParseStrategy(e.Strategy.Name)
			if !ok {
				return nil, errorAt(e.Strategy.Pos, "unknown strategy %q", e.Strategy.Name)
			}
			if opts.Strategy == atlas.Auto {
				strategy = s
			}
		case e.Bitmap != nil:
			for _, row := range e.Bitmap.Rows {
				n := utf8.RuneCountInString(row)
				if width < 0 {
					width = n
				} else if n != width {
					return nil, errorAt(e.Bitmap.Pos, "bitmap row %q has %d pixels, expected %d",
						row, n, width)
				}
				for _, c := range row {
					p, ok := pixel(c)
					if !ok {
						return nil, errorAt(e.Bitmap.Pos, "invalid pixel %q in bitmap row", c)
					}
					bitmap = append(bitmap, p)
				}
			}
		}
	}
	if width < 0 {
		width = 0
	}
	b := atlas.NewBuilder(bitmap, uint32(width))
	for _, e := range desc.Entries {
		switch {
		case e.Glyph != nil:
			c, err := singleChar(e.Glyph.Pos, e.Glyph.Char)
			if err != nil {
				return nil, err
			}
			g, err := e.Glyph.Cell.glyph(e.Glyph.Pos)
			if err != nil {
				return nil, err
			}
			b.AddSingle(c, g)
		case e.Ligature != nil:
			c1, err := singleChar(e.Ligature.Pos, e.Ligature.First)
			if err != nil {
				return nil, err
			}
			c2, err := singleChar(e.Ligature.Pos, e.Ligature.Second)
			if err != nil {
				return nil, err
			}
			g, err := e.Ligature.Cell.glyph(e.Ligature.Pos)
			if err != nil {
				return nil, err
			}
			b.AddPair(c1, c2, g)
		}
	}
	return build(b, strategy, opts)
}

func build(b *atlas.Builder, strategy atlas.Strategy, opts Options) (*atlas.Font, error) {
	f, err := b.Build(strategy)
	if err != nil {
		return nil, err
	}
	if !opts.SkipValidation {
		if err = f.Validate(); err != nil {
			return nil, err
		}
	}
	tracer().Infof("compiled %s atlas %dx%d with %d glyphs and %d ligatures",
		f.Strategy(), f.Width(), f.Height(), f.SingleCount(), f.PairCount())
	return f, nil
}

func singleChar(pos lexer.Position, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errorAt(pos, "%q is not a single character", s)
	}
	c, _ := utf8.DecodeRuneInString(s)
	return c, nil
}

func (cell Cell) glyph(pos lexer.Position) (atlas.Glyph, error) {
	switch {
	case cell.X < 0 || cell.Y < 0 || int64(cell.X) > math.MaxUint32 || int64(cell.Y) > math.MaxUint32:
		return atlas.Glyph{}, errorAt(pos, "cell origin %d,%d out of range", cell.X, cell.Y)
	case cell.W < 0 || cell.H < 0 || cell.W > math.MaxUint8 || cell.H > math.MaxUint8:
		return atlas.Glyph{}, errorAt(pos, "cell size %dx%d out of range", cell.W, cell.H)
	case cell.DX < math.MinInt8 || cell.DY < math.MinInt8 || cell.DX > math.MaxInt8 || cell.DY > math.MaxInt8:
		return atlas.Glyph{}, errorAt(pos, "pen offset %d,%d out of range", cell.DX, cell.DY)
	}
	return atlas.Glyph{
		Pos:    atlas.AtlasPos{X: uint32(cell.X), Y: uint32(cell.Y)},
		Size:   atlas.CellSize{W: uint8(cell.W), H: uint8(cell.H)},
		Offset: atlas.PenOffset{X: int8(cell.DX), Y: int8(cell.DY)},
	}, nil
}

func errorAt(pos lexer.Position, format string, args ...interface{}) error {
	err := core.Error(core.EINVALID, "%s: %s", pos, fmt.Sprintf(format, args...))
	tracer().Errorf("%v", err)
	return err
}
