package registry

import (
	"context"
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/bitglyph/core/atlas/compile"
	"github.com/npillmayer/schuko/gconf"
)

//go:embed packaged/*.atlas
var packaged embed.FS

// FontPromise is returned by ResolveFont. Calling Font blocks until loading
// has completed. A promise may be read repeatedly and always delivers the
// same result.
type FontPromise interface {
	Font() (*atlas.Font, error)
	Await(ctx context.Context) (*atlas.Font, error)
}

type fontPlusErr struct {
	font *atlas.Font
	err  error
}

// fontLoader delivers the result of a loading goroutine. The result is
// written before done is closed and may be read any number of times.
type fontLoader struct {
	done   chan struct{}
	result fontPlusErr
}

func (loader *fontLoader) Font() (*atlas.Font, error) {
	return loader.Await(context.Background())
}

func (loader *fontLoader) Await(ctx context.Context) (*atlas.Font, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.result.font, loader.result.err
	}
}

// ResolveFont resolves a font by name, using the global registry.
func ResolveFont(name string) FontPromise {
	return GlobalRegistry().Resolve(name)
}

// Resolve loads a font asynchronously. name is either a font name or the path
// of a font file. Fonts are searched in the following order:
//
//	▪︎ fonts already present in the registry
//	▪︎ a font file at path name
//	▪︎ atlas descriptions packaged with this module
//	▪︎ font files in the directories of configuration value 'atlas-path'
//
// A font found is stored in the registry. If no font is found, the promise will
// deliver the builtin font together with an error of code core.EMISSING.
func (fr *Registry) Resolve(name string) FontPromise {
	loader := &fontLoader{done: make(chan struct{})}
	go func() {
		defer close(loader.done)
		result := &loader.result
		if f, ok := fr.Lookup(name); ok {
			result.font = f
			return
		}
		opts := compile.DefaultOptions()
		var f *atlas.Font
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() && isFontFile(name) {
			f, result.err = compile.LoadFont(name, opts)
		}
		if f == nil && result.err == nil {
			f, result.err = loadPackaged(name, opts)
		}
		if f == nil && result.err == nil {
			f, result.err = loadFromSearchPath(name, opts)
		}
		if f != nil {
			fr.StoreFont(name, f)
			result.font = f
		} else {
			if result.err == nil {
				result.err = core.Error(core.EMISSING, "font not found: %s", name)
			}
			tracer().Errorf("cannot resolve font %s: %v", name, result.err)
			result.font = fr.fallback()
		}
	}()
	return loader
}

func loadPackaged(name string, opts compile.Options) (*atlas.Font, error) {
	entries, _ := packaged.ReadDir("packaged")
	key := NormalizeFontname(name)
	for _, entry := range entries {
		if NormalizeFontname(entry.Name()) != key {
			continue
		}
		tracer().Debugf("found font as packaged atlas description %s", entry.Name())
		file, err := packaged.Open(path.Join("packaged", entry.Name()))
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "cannot open packaged font %s", entry.Name())
		}
		defer file.Close()
		desc, err := compile.Parse(entry.Name(), file)
		if err != nil {
			return nil, err
		}
		return desc.Compile(opts)
	}
	return nil, nil
}

func loadFromSearchPath(name string, opts compile.Options) (*atlas.Font, error) {
	key := NormalizeFontname(name)
	for _, dir := range filepath.SplitList(gconf.GetString("atlas-path")) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			tracer().Infof("skipping atlas path entry %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !isFontFile(entry.Name()) || NormalizeFontname(entry.Name()) != key {
				continue
			}
			fpath := filepath.Join(dir, entry.Name())
			tracer().Debugf("found font file %s", fpath)
			return compile.LoadFont(fpath, opts)
		}
	}
	return nil, nil
}

func isFontFile(fname string) bool {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".atlas", ".bglf", ".yaml", ".yml":
		return true
	}
	return false
}
