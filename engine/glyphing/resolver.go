package glyphing

import (
	"github.com/npillmayer/bitglyph/core/atlas"
)

// Resolver is an iterator over the glyph outcomes for a text.
//
// Next advances to the next outcome and reports whether there is one.
// Outcome returns the current outcome; it is valid only after Next returned
// true. Err returns the first error of the underlying input, if any.
// Resolvers cannot be restarted.
type Resolver interface {
	Next() bool
	Outcome() atlas.Outcome
	Err() error
}

// Collect drives a resolver to completion and returns all of its outcomes.
func Collect(r Resolver) ([]atlas.Outcome, error) {
	var outcomes []atlas.Outcome
	for r.Next() {
		outcomes = append(outcomes, r.Outcome())
	}
	return outcomes, r.Err()
}

// --- Random access ---------------------------------------------------------

// SliceResolver resolves a text held in memory. Each step looks up the
// current position and advances by the number of characters the outcome
// consumed, thus the outcomes of a full pass cover the text exactly once.
type SliceResolver struct {
	font    *atlas.Font
	text    []rune
	cursor  int // next position to resolve
	start   int // position of the current outcome
	outcome atlas.Outcome
}

var _ Resolver = (*SliceResolver)(nil)

// NewSliceResolver creates a resolver for text, taking glyphs from font.
// The resolver borrows text; clients must not modify it during iteration.
func NewSliceResolver(font *atlas.Font, text []rune) *SliceResolver {
	return &SliceResolver{font: font, text: text}
}

// Next resolves the next run of characters.
func (r *SliceResolver) Next() bool {
	o, ok := r.font.Lookup(r.text, r.cursor)
	if !ok {
		r.start = r.cursor
		return false
	}
	if o.Kind() == atlas.Unknown {
		tracer().Debugf("no glyph for %q at position %d", o.First(), r.cursor)
	}
	r.start = r.cursor
	r.cursor += o.Consumed()
	r.outcome = o
	return true
}

// Outcome returns the current outcome.
func (r *SliceResolver) Outcome() atlas.Outcome {
	return r.outcome
}

// Pos returns the position in the text where the current outcome starts.
// The outcome covers text[Pos() : Pos()+Outcome().Consumed()].
func (r *SliceResolver) Pos() int {
	return r.start
}

// Err always returns nil, as texts in memory cannot fail.
func (r *SliceResolver) Err() error {
	return nil
}
