package compile

import (
	"image"

	"github.com/npillmayer/bitglyph/core/atlas"
	"golang.org/x/image/draw"
)

// AtlasImage returns the bitmap of a font as a gray image, magnified by
// scale (nearest neighbour). Pixel values are coverage values, i.e. glyphs
// are drawn light on dark.
func AtlasImage(f *atlas.Font, scale int) image.Image {
	w, h := int(f.Width()), int(f.Height())
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, f.Bitmap())
	if scale <= 1 {
		return img
	}
	big := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Src, nil)
	return big
}

// GlyphImage returns the cell of glyph g within the atlas of f.
func GlyphImage(f *atlas.Font, g atlas.Glyph) image.Image {
	img := AtlasImage(f, 1).(*image.Gray)
	x, y := int(g.Pos.X), int(g.Pos.Y)
	cell := image.Rect(x, y, x+int(g.Size.W), y+int(g.Size.H))
	return img.SubImage(cell)
}
