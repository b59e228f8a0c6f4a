/*
Package glyphing resolves text into sequences of atlas glyphs.

A resolver walks a text and asks an atlas font for the glyph at each
position, preferring two-character ligatures over single characters. Every
step yields an atlas.Outcome, which is either a Single glyph, a Double
(ligature) glyph, or Unknown if the font does not cover a character. Unknown
characters never stop a resolver; clients typically draw a placeholder for
them.

There are two kinds of resolvers:

▪︎ SliceResolver works on a text held in memory. A ligature consumes both
of its characters, so the outcomes of a full pass cover every input
position exactly once.

▪︎ StreamResolver reads from an io.RuneReader with one character of
lookahead. It consumes exactly one character per outcome; the second
character of a ligature is only peeked at and will be examined again,
possibly as the start of another ligature.

Resolvers are iterators in the style of bufio.Scanner:

    r := glyphing.NewSliceResolver(font, []rune("office"))
    for r.Next() {
        o := r.Outcome()
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bitglyph.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("bitglyph.glyphs")
}
