package atlas

import (
	"bytes"
	"encoding/base64"
	"unicode/utf8"

	"github.com/npillmayer/bitglyph/core"
	"gopkg.in/yaml.v3"
)

// yamlFont is the structured-text form of a font. Characters are written as
// UTF-8 strings, the bitmap as standard base64.
type yamlFont struct {
	Width     uint32      `yaml:"width"`
	Strategy  string      `yaml:"strategy"`
	Bitmap    string      `yaml:"bitmap"`
	Glyphs    []yamlGlyph `yaml:"glyphs"`
	Ligatures []yamlGlyph `yaml:"ligatures"`
}

type yamlGlyph struct {
	Chars  quotedChars `yaml:"chars"`
	At     [2]uint32   `yaml:"at,flow"`
	Size   [2]uint8    `yaml:"size,flow"`
	Offset [2]int8     `yaml:"offset,flow"`
}

// quotedChars is always written as a double-quoted scalar. Plain or block
// styles would drop control characters such as line breaks.
type quotedChars string

func (q quotedChars) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: yaml.DoubleQuotedStyle,
		Value: string(q),
	}, nil
}

func toYAMLGlyph(chars string, g Glyph) yamlGlyph {
	return yamlGlyph{
		Chars:  quotedChars(chars),
		At:     [2]uint32{g.Pos.X, g.Pos.Y},
		Size:   [2]uint8{g.Size.W, g.Size.H},
		Offset: [2]int8{g.Offset.X, g.Offset.Y},
	}
}

func (yg yamlGlyph) glyph() Glyph {
	return Glyph{
		Pos:    AtlasPos{yg.At[0], yg.At[1]},
		Size:   CellSize{yg.Size[0], yg.Size[1]},
		Offset: PenOffset{yg.Offset[0], yg.Offset[1]},
	}
}

// EncodeYAML writes f as a YAML document. Table entries appear in ascending
// order of their keys. Only characters which are valid Unicode scalar values
// can be represented.
func EncodeYAML(f *Font) ([]byte, error) {
	doc := yamlFont{
		Width:     f.width,
		Strategy:  f.Strategy().String(),
		Bitmap:    base64.StdEncoding.EncodeToString(f.bitmap),
		Glyphs:    make([]yamlGlyph, 0, f.SingleCount()),
		Ligatures: make([]yamlGlyph, 0, f.PairCount()),
	}
	var err error
	f.EachSingle(func(c rune, g Glyph) {
		if !utf8.ValidRune(c) && err == nil {
			err = core.Error(core.EINVALID, "character %U cannot be written as text", c)
		}
		doc.Glyphs = append(doc.Glyphs, toYAMLGlyph(string(c), g))
	})
	f.EachPair(func(p Pair, g Glyph) {
		if (!utf8.ValidRune(p[0]) || !utf8.ValidRune(p[1])) && err == nil {
			err = core.Error(core.EINVALID, "ligature %U %U cannot be written as text", p[0], p[1])
		}
		doc.Ligatures = append(doc.Ligatures, toYAMLGlyph(p.String(), g))
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err = enc.Encode(doc); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot encode font as YAML")
	}
	if err = enc.Close(); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot encode font as YAML")
	}
	return buf.Bytes(), nil
}

// DecodeYAML reads a font from a YAML document as written by EncodeYAML.
func DecodeYAML(data []byte) (*Font, error) {
	var doc yamlFont
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "malformed YAML font")
	}
	strategy, ok := ParseStrategy(doc.Strategy)
	if !ok || strategy == Auto {
		return nil, core.Error(core.EFORMAT, "invalid storage strategy %q", doc.Strategy)
	}
	bitmap, err := base64.StdEncoding.DecodeString(doc.Bitmap)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "malformed atlas bitmap")
	}
	b := NewBuilder(bitmap, doc.Width)
	for _, yg := range doc.Glyphs {
		chars := []rune(string(yg.Chars))
		if len(chars) != 1 {
			return nil, core.Error(core.EFORMAT, "glyph entry %q must name exactly one character", yg.Chars)
		}
		b.AddSingle(chars[0], yg.glyph())
	}
	for _, yg := range doc.Ligatures {
		chars := []rune(string(yg.Chars))
		if len(chars) != 2 {
			return nil, core.Error(core.EFORMAT, "ligature entry %q must name exactly two characters", yg.Chars)
		}
		b.AddPair(chars[0], chars[1], yg.glyph())
	}
	f, err := b.Build(strategy)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "inconsistent font tables")
	}
	return f, nil
}
