/*
Package registry manages a registry for loaded atlas fonts.

Fonts are stored under a normalized name. Clients either look up fonts
which have been stored before, or resolve a font by name:

    promise := registry.ResolveFont("ligatures")
    …
    font, err := promise.Font() // blocks until loading has completed

Resolving a font searches the registry first, then a font file at the given
path, then the atlas descriptions packaged with this module, then the directories listed in the configuration
value 'atlas-path'. If no font can be found, the builtin font is returned
together with an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package registry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'bitglyph.atlas'
func tracer() tracing.Trace {
	return tracing.Select("bitglyph.atlas")
}
