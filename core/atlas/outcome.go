package atlas

import "fmt"

// OutcomeKind tells which variant an Outcome is.
type OutcomeKind int8

// Variants of lookup outcomes.
const (
	Unknown OutcomeKind = iota // character is not covered by the font
	Single                     // glyph for exactly one character
	Double                     // ligature glyph for a pair of characters
)

func (k OutcomeKind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case Single:
		return "Single"
	case Double:
		return "Double"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of resolving one position of a text.
// It is either Unknown(character), Single(glyph, character) or
// Double(glyph, pair). Outcomes carry the input they cover, so clients are
// able to tell which slice of the text produced which glyph.
type Outcome struct {
	kind  OutcomeKind
	glyph Glyph
	chars Pair
}

// UnknownOutcome reports a character which is covered by neither table.
func UnknownOutcome(c rune) Outcome {
	return Outcome{kind: Unknown, chars: Pair{c, 0}}
}

// SingleOutcome reports a glyph for one character.
func SingleOutcome(g Glyph, c rune) Outcome {
	return Outcome{kind: Single, glyph: g, chars: Pair{c, 0}}
}

// DoubleOutcome reports a ligature glyph for a pair of characters.
func DoubleOutcome(g Glyph, p Pair) Outcome {
	return Outcome{kind: Double, glyph: g, chars: p}
}

// Kind returns the variant of o.
func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// First returns the first character covered by o.
func (o Outcome) First() rune {
	return o.chars[0]
}

// Consumed returns the number of input positions covered by o:
// 2 for Double, 1 otherwise.
func (o Outcome) Consumed() int {
	if o.kind == Double {
		return 2
	}
	return 1
}

// Glyph returns the resolved glyph. For Unknown outcomes ok is false.
func (o Outcome) Glyph() (g Glyph, ok bool) {
	if o.kind == Unknown {
		return Glyph{}, false
	}
	return o.glyph, true
}

// Pair returns the ligature characters of a Double outcome.
// ok is false for other variants.
func (o Outcome) Pair() (p Pair, ok bool) {
	if o.kind != Double {
		return Pair{}, false
	}
	return o.chars, true
}

// Chars returns the characters covered by o.
func (o Outcome) Chars() []rune {
	return o.chars[:o.Consumed()]
}

func (o Outcome) String() string {
	switch o.kind {
	case Single:
		return fmt.Sprintf("Single(%s, %q)", o.glyph, o.chars[0])
	case Double:
		return fmt.Sprintf("Double(%s, %q)", o.glyph, o.chars.String())
	}
	return fmt.Sprintf("Unknown(%q)", o.chars[0])
}
