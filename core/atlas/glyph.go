package atlas

import "fmt"

// AtlasPos is the origin of a glyph cell within the atlas bitmap.
type AtlasPos struct {
	X, Y uint32
}

// CellSize is the extent of a glyph cell. A cell may be at most 255×255 pixels.
type CellSize struct {
	W, H uint8
}

// PenOffset is the adjustment of the pen position for drawing a glyph.
type PenOffset struct {
	X, Y int8
}

// Glyph describes the location of one rendered symbol in the atlas bitmap.
// Glyphs are plain values and may be copied freely.
type Glyph struct {
	Pos    AtlasPos  // top-left corner of the glyph cell in the atlas
	Size   CellSize  // width and height of the cell
	Offset PenOffset // horizontal/vertical pen adjustment
}

func (g Glyph) String() string {
	return fmt.Sprintf("[%d,%d %dx%d %+d%+d]", g.Pos.X, g.Pos.Y, g.Size.W, g.Size.H,
		g.Offset.X, g.Offset.Y)
}

// Pair is an ordered sequence of two characters which maps to a ligature glyph.
type Pair [2]rune

func (p Pair) String() string {
	return string(p[:])
}

func comparePairs(a, b interface{}) int {
	p, q := a.(Pair), b.(Pair)
	switch {
	case p[0] < q[0]:
		return -1
	case p[0] > q[0]:
		return 1
	case p[1] < q[1]:
		return -1
	case p[1] > q[1]:
		return 1
	}
	return 0
}
