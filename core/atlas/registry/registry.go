package registry

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/bitglyph/core/atlas/compile"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding loaded atlas fonts.
type Registry struct {
	sync.Mutex
	fonts map[string]*atlas.Font
}

// FallbackName is the name the builtin font is stored under.
const FallbackName = "fallback"

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[string]*atlas.Font),
	}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(name string, f *atlas.Font) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %s as %s", name, key)
		fr.fonts[key] = f
	}
}

// Lookup returns a font previously stored under name, if any.
func (fr *Registry) Lookup(name string) (*atlas.Font, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[NormalizeFontname(name)]
	return f, ok
}

// Font returns the font stored under name.
//
// If no such font is present, Font will return the builtin font, together
// with an error of code core.EMISSING.
func (fr *Registry) Font(name string) (*atlas.Font, error) {
	tracer().Debugf("registry searches for font %s", name)
	if f, ok := fr.Lookup(name); ok {
		tracer().Infof("registry found font %s", name)
		return f, nil
	}
	tracer().Infof("registry does not contain font %s", name)
	err := core.Error(core.EMISSING, "font %s not found in registry", name)
	return fr.fallback(), err
}

func (fr *Registry) fallback() *atlas.Font {
	f := compile.Builtin()
	fr.StoreFont(FallbackName, f)
	return f
}

// Names returns the keys of all fonts in the registry, sorted.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.fonts))
	for k := range fr.fonts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range fr.Names() {
		f, _ := fr.Lookup(k)
		tracer().Infof("font [%s] = %s atlas %dx%d, %d glyphs, %d ligatures", k,
			f.Strategy(), f.Width(), f.Height(), f.SingleCount(), f.PairCount())
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname derives a registry key from a font name or font file
// path: directories and the file extension are dropped, spaces are replaced
// by underscores and the result is lower-cased.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = filepath.Base(fname)
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return strings.ToLower(fname)
}
