/*
Package atlas implements bitmap font atlases and the glyph lookup on top of them.

An atlas font bundles a bitmap (all glyph images packed into one image) with
two tables: a table for single characters and a table for two-character
ligatures. Looking up a position of a text prefers a ligature starting at that
position over a single character, and it never fails: characters which are
not covered by the font are reported as Unknown outcomes, so that clients may
substitute a placeholder and carry on with the rest of the text.

Single characters may be stored in one of two ways, selected when a font is
built:

▪︎ Sparse: an ordered map from Unicode code-point to glyph. Lookups are
O(log n) and the range of code-points is unlimited.

▪︎ Dense: a flat array indexed by a 16-bit code unit. Lookups are O(1), but
fonts may not contain characters beyond the Basic Multilingual Plane, and
the array reserves a slot for every code unit up to the largest one in use.

Ligatures are comparatively rare and always live in an ordered map.

Fonts are immutable after construction and may be shared between goroutines
without synchronization.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atlas

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bitglyph.atlas'.
func tracer() tracing.Trace {
	return tracing.Select("bitglyph.atlas")
}
