package compile

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/npillmayer/bitglyph/core"
)

var (
	atlasLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Char", Pattern: `'(?:\\.|[^'\\])+'`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	descriptionParser = participle.MustBuild[Description](
		participle.Lexer(atlasLexer),
		participle.Elide("Whitespace", "LineComment"),
		participle.Unquote("String", "Char"),
	)
)

// Description is the syntax tree of an atlas description.
type Description struct {
	Pos     lexer.Position `parser:""`
	Name    string         `parser:"'atlas' @String? '{'"`
	Entries []*Entry       `parser:"@@* '}'"`
}

// Entry is a statement within an atlas description.
type Entry struct {
	Strategy *StrategyDecl `parser:"  @@"`
	Bitmap   *BitmapDecl   `parser:"| @@"`
	Glyph    *GlyphDecl    `parser:"| @@"`
	Ligature *LigatureDecl `parser:"| @@"`
}

// StrategyDecl selects the storage strategy for single characters.
type StrategyDecl struct {
	Pos  lexer.Position `parser:""`
	Name string         `parser:"'strategy' @Ident"`
}

// BitmapDecl draws (part of) the atlas bitmap, one string per pixel row.
// Multiple bitmap declarations are concatenated.
type BitmapDecl struct {
	Pos  lexer.Position `parser:""`
	Rows []string       `parser:"'bitmap' '{' @String* '}'"`
}

// GlyphDecl declares the glyph cell of one character.
type GlyphDecl struct {
	Pos  lexer.Position `parser:""`
	Char string         `parser:"'glyph' @Char"`
	Cell Cell           `parser:"@@"`
}

// LigatureDecl declares the glyph cell of an ordered pair of characters.
type LigatureDecl struct {
	Pos    lexer.Position `parser:""`
	First  string         `parser:"'ligature' @Char"`
	Second string         `parser:"@Char"`
	Cell   Cell           `parser:"@@"`
}

// Cell locates a glyph within the atlas. The pen offset is optional.
type Cell struct {
	X  int `parser:"'at' @Int"`
	Y  int `parser:"@Int"`
	W  int `parser:"'size' @Int"`
	H  int `parser:"@Int"`
	DX int `parser:"( 'offset' @Int"`
	DY int `parser:"  @Int )?"`
}

// Parse reads an atlas description. name is used in error messages only.
func Parse(name string, r io.Reader) (*Description, error) {
	desc, err := descriptionParser.Parse(name, r)
	if err != nil {
		tracer().Errorf("parsing atlas description: %v", err)
		return nil, core.WrapError(err, core.EFORMAT, "cannot parse atlas description %s", name)
	}
	tracer().Debugf("parsed atlas description %q with %d entries", desc.Name, len(desc.Entries))
	return desc, nil
}

// ParseString reads an atlas description from a string.
func ParseString(name string, s string) (*Description, error) {
	desc, err := descriptionParser.ParseString(name, s)
	if err != nil {
		tracer().Errorf("parsing atlas description: %v", err)
		return nil, core.WrapError(err, core.EFORMAT, "cannot parse atlas description %s", name)
	}
	return desc, nil
}
