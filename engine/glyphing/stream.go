package glyphing

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/bitglyph/core/atlas"
	"golang.org/x/text/unicode/norm"
)

// StreamResolver resolves characters read from a live stream, using one
// character of lookahead.
//
// Every step consumes exactly one character. If the following character
// completes a ligature, the outcome is Double, but the following character
// stays in the stream and is examined again by the next step. This lets the
// second character of a ligature start another ligature, e.g. for a font
// with ligatures "fi" and "ij", "fij" yields Double(fi), Double(ij), and a
// final outcome for 'j'.
type StreamResolver struct {
	font     *atlas.Font
	input    io.RuneReader
	peeked   rune
	hasPeek  bool
	eof      bool
	err      error
	consumed int
	outcome  atlas.Outcome
}

var _ Resolver = (*StreamResolver)(nil)

// NewStreamResolver creates a resolver reading characters from input, taking
// glyphs from font. Invalid UTF-8 is read as U+FFFD, as io.RuneReader
// implementations usually do.
func NewStreamResolver(font *atlas.Font, input io.RuneReader) *StreamResolver {
	return &StreamResolver{font: font, input: input}
}

// ResolveString creates a stream resolver for a string.
func ResolveString(font *atlas.Font, s string) *StreamResolver {
	return NewStreamResolver(font, strings.NewReader(s))
}

// NewNormalizingResolver creates a stream resolver for UTF-8 input which is
// normalized to form before being resolved. Fonts built for precomposed
// characters should be fed with norm.NFC; ligature-rich fonts for
// decomposed input with norm.NFD.
func NewNormalizingResolver(font *atlas.Font, input io.Reader, form norm.Form) *StreamResolver {
	return NewStreamResolver(font, bufio.NewReader(form.Reader(input)))
}

// Next consumes the next character of the stream and resolves it.
// It returns false at the end of the stream or on a read error.
func (r *StreamResolver) Next() bool {
	c, ok := r.read()
	if !ok {
		return false
	}
	r.consumed++
	if next, ok := r.peek(); ok {
		if g, found := r.font.LookupDouble(c, next); found {
			r.outcome = atlas.DoubleOutcome(g, atlas.Pair{c, next})
			return true
		}
	}
	if g, found := r.font.LookupSingle(c); found {
		r.outcome = atlas.SingleOutcome(g, c)
		return true
	}
	tracer().Debugf("no glyph for %q at position %d", c, r.consumed-1)
	r.outcome = atlas.UnknownOutcome(c)
	return true
}

// Outcome returns the current outcome.
func (r *StreamResolver) Outcome() atlas.Outcome {
	return r.outcome
}

// Consumed returns the number of characters consumed from the stream so far.
// As every outcome consumes one character, this is the number of outcomes.
func (r *StreamResolver) Consumed() int {
	return r.consumed
}

// Err returns the first read error other than io.EOF.
func (r *StreamResolver) Err() error {
	return r.err
}

// read consumes the next character, which may already have been peeked at.
func (r *StreamResolver) read() (rune, bool) {
	if r.hasPeek {
		r.hasPeek = false
		return r.peeked, true
	}
	return r.readRune()
}

// peek returns the next character without consuming it.
func (r *StreamResolver) peek() (rune, bool) {
	if !r.hasPeek {
		c, ok := r.readRune()
		if !ok {
			return 0, false
		}
		r.peeked, r.hasPeek = c, true
	}
	return r.peeked, true
}

func (r *StreamResolver) readRune() (rune, bool) {
	if r.eof {
		return 0, false
	}
	c, _, err := r.input.ReadRune()
	if err != nil {
		r.eof = true
		if !errors.Is(err, io.EOF) {
			tracer().Errorf("reading text: %v", err)
			r.err = err
		}
		return 0, false
	}
	return c, true
}
