package compile

import (
	"image"
	"testing"

	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestBuiltin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	f := Builtin()
	require.NotNil(t, f)
	assert.Same(t, f, Builtin(), "builtin font should be compiled once")
	assert.Equal(t, atlas.Sparse, f.Strategy())
	assert.Equal(t, uint32(6), f.Width())
	assert.Equal(t, uint32(96*13), f.Height())
	assert.Equal(t, 96, f.SingleCount())
	assert.Equal(t, 0, f.PairCount())
	assert.NoError(t, f.Validate())
	g, ok := f.LookupSingle('A')
	require.True(t, ok)
	assert.Equal(t, atlas.Glyph{
		Pos:    atlas.AtlasPos{X: 0, Y: ('A' - ' ') * 13},
		Size:   atlas.CellSize{W: 6, H: 13},
		Offset: atlas.PenOffset{X: 0, Y: -11},
	}, g)
	g, ok = f.LookupSingle('\uFFFD')
	require.True(t, ok)
	assert.Equal(t, uint32(95*13), g.Pos.Y)
	_, ok = f.LookupSingle('\u00e9')
	assert.False(t, ok)
	_, ok = f.LookupSingle('\u007f')
	assert.False(t, ok)
}

func TestBuiltinInk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	f := Builtin()
	ink := func(c rune) int {
		g, ok := f.LookupSingle(c)
		require.True(t, ok)
		cell := GlyphImage(f, g).(*image.Gray)
		n := 0
		for y := cell.Rect.Min.Y; y < cell.Rect.Max.Y; y++ {
			for x := cell.Rect.Min.X; x < cell.Rect.Max.X; x++ {
				if cell.GrayAt(x, y).Y > 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Equal(t, 0, ink(' '), "space should be blank")
	assert.Greater(t, ink('A'), 0)
	assert.Greater(t, ink('#'), ink('.'))
}

func TestFromFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	// two cells of 2x3 pixels
	mask := &image.Alpha{
		Stride: 2,
		Rect:   image.Rect(0, 0, 2, 6),
		Pix: []byte{
			0xff, 0x00,
			0xff, 0x00,
			0xff, 0xff,
			0x00, 0x80,
			0x80, 0x80,
			0x00, 0x80,
		},
	}
	face := &basicfont.Face{
		Advance: 3,
		Width:   2,
		Height:  3,
		Ascent:  2,
		Descent: 1,
		Left:    1,
		Mask:    mask,
		Ranges: []basicfont.Range{
			{Low: 'L', High: 'M', Offset: 0},
			{Low: '+', High: ',', Offset: 1},
		},
	}
	f, err := FromFace(face, Options{Strategy: atlas.Dense})
	require.NoError(t, err)
	assert.Equal(t, atlas.Dense, f.Strategy())
	assert.Equal(t, mask.Pix, f.Bitmap())
	g, ok := f.LookupSingle('+')
	require.True(t, ok)
	assert.Equal(t, atlas.Glyph{
		Pos:    atlas.AtlasPos{X: 0, Y: 3},
		Size:   atlas.CellSize{W: 2, H: 3},
		Offset: atlas.PenOffset{X: 1, Y: -2},
	}, g)
	outcome, ok := f.Lookup([]rune("L+"), 0)
	require.True(t, ok)
	assert.Equal(t, atlas.Single, outcome.Kind())
	assert.Equal(t, 'L', outcome.First())
}

func TestFromFaceErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	_, err := FromFace(nil, Options{})
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = FromFace(&basicfont.Face{}, Options{})
	assert.Equal(t, core.EMISSING, core.Code(err))
	huge := &basicfont.Face{
		Width:  300,
		Ascent: 10,
		Mask:   image.NewAlpha(image.Rect(0, 0, 300, 10)),
	}
	_, err = FromFace(huge, Options{})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestAtlasImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	desc, err := ParseString("demo", demo)
	require.NoError(t, err)
	f, err := desc.Compile(Options{Strategy: atlas.Auto})
	require.NoError(t, err)
	img := AtlasImage(f, 1).(*image.Gray)
	assert.Equal(t, image.Rect(0, 0, 6, 2), img.Bounds())
	assert.Equal(t, f.Bitmap(), img.Pix)
	//
	big := AtlasImage(f, 3).(*image.Gray)
	assert.Equal(t, image.Rect(0, 0, 18, 6), big.Bounds())
	assert.Equal(t, uint8(Ink), big.GrayAt(2, 2).Y)
	assert.Equal(t, uint8(Blank), big.GrayAt(3, 0).Y)
	assert.Equal(t, uint8(Ink), big.GrayAt(4, 5).Y)
	//
	g, _ := f.LookupSingle('B')
	cell := GlyphImage(f, g)
	assert.Equal(t, image.Rect(3, 0, 6, 2), cell.Bounds())
}
