/*
Package compile creates atlas fonts from font sources.

Two kinds of sources are supported:

▪︎ Atlas descriptions, a small text format where the atlas bitmap is drawn
with '#' and '.' characters and glyphs and ligatures are declared as cells
of the bitmap:

    atlas "demo" {
        strategy dense
        bitmap {
            "#.#.##"
            "###.#."
        }
        glyph 'A' at 0 0 size 3 2 offset 0 -2
        ligature 'f' 'i' at 3 0 size 3 2 offset 0 -2
    }

▪︎ Fixed-size bitmap faces of package golang.org/x/image/font/basicfont.
Builtin returns an atlas compiled from basicfont.Face7x13, which is always
available as a fallback.

The storage strategy of compiled fonts defaults to the configuration value
'atlas-strategy' ("sparse", "dense" or "auto").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bitglyph.compile'.
func tracer() tracing.Trace {
	return tracing.Select("bitglyph.compile")
}
