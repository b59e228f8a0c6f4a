package compile

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/draw"
)

// FromFace converts a fixed-size bitmap face into an atlas font. The face's
// mask becomes the atlas bitmap (coverage values are kept), and every rune
// of the face's ranges is mapped to its cell in the mask.
func FromFace(face *basicfont.Face, opts Options) (*atlas.Font, error) {
	if face == nil || face.Mask == nil {
		return nil, core.Error(core.EMISSING, "face has no glyph mask")
	}
	cellH := face.Ascent + face.Descent
	if face.Width <= 0 || face.Width > math.MaxUint8 || cellH <= 0 || cellH > math.MaxUint8 {
		return nil, core.Error(core.EINVALID, "face cells of %dx%d do not fit into an atlas",
			face.Width, cellH)
	}
	if face.Left < math.MinInt8 || face.Left > math.MaxInt8 || face.Ascent > -math.MinInt8 {
		return nil, core.Error(core.EINVALID, "face bearings out of range")
	}
	bounds := face.Mask.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), alphaAsGray{face.Mask}, bounds.Min, draw.Src)
	b := atlas.NewBuilder(gray.Pix, uint32(bounds.Dx()))
	for _, rng := range face.Ranges {
		for r := rng.Low; r < rng.High; r++ {
			y := (int(r-rng.Low) + rng.Offset) * cellH
			b.AddSingle(r, atlas.Glyph{
				Pos:    atlas.AtlasPos{X: 0, Y: uint32(y)},
				Size:   atlas.CellSize{W: uint8(face.Width), H: uint8(cellH)},
				Offset: atlas.PenOffset{X: int8(face.Left), Y: int8(-face.Ascent)},
			})
		}
	}
	tracer().Debugf("converting face with %d ranges", len(face.Ranges))
	return build(b, opts.Strategy, opts)
}

// alphaAsGray presents the coverage of a mask image as gray levels.
type alphaAsGray struct {
	mask image.Image
}

func (a alphaAsGray) ColorModel() color.Model { return color.GrayModel }
func (a alphaAsGray) Bounds() image.Rectangle { return a.mask.Bounds() }
func (a alphaAsGray) At(x, y int) color.Color {
	alpha := color.AlphaModel.Convert(a.mask.At(x, y)).(color.Alpha)
	return color.Gray{Y: alpha.A}
}

// Builtin returns an atlas font compiled from basicfont.Face7x13. It is
// always present and may serve as a fallback. It covers printable ASCII and
// the replacement character U+FFFD.
func Builtin() *atlas.Font {
	builtinLoading.Do(func() {
		var err error
		builtin, err = FromFace(basicfont.Face7x13, Options{Strategy: atlas.Auto})
		if err != nil {
			panic("cannot compile builtin font: " + err.Error()) // this cannot happen
		}
	})
	return builtin
}

var builtinLoading sync.Once

var builtin *atlas.Font
