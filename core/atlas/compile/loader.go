package compile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
)

// LoadFont loads an atlas font from a file. The file format is selected
// by the file extension:
//
//	.atlas          atlas description, compiled with opts
//	.bglf           binary atlas font
//	.yaml or .yml   YAML atlas font
//
// An empty path selects the builtin font.
func LoadFont(path string, opts Options) (*atlas.Font, error) {
	if path == "" {
		tracer().Infof("using builtin font")
		return Builtin(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open font %s", path)
	}
	defer file.Close()
	var f *atlas.Font
	switch strings.ToLower(filepath.Ext(path)) {
	case ".atlas":
		var desc *Description
		if desc, err = Parse(filepath.Base(path), file); err == nil {
			f, err = desc.Compile(opts)
		}
	case ".bglf":
		f, err = atlas.ReadFont(file)
	case ".yaml", ".yml":
		var data []byte
		if data, err = io.ReadAll(file); err == nil {
			f, err = atlas.DecodeYAML(data)
		} else {
			err = core.ErrorWithCode(err, core.EINTERNAL)
		}
	default:
		return nil, core.Error(core.EINVALID, "unknown font format %q", filepath.Ext(path))
	}
	if err != nil {
		tracer().Errorf("cannot load font %s: %v", path, err)
		return nil, err
	}
	tracer().Infof("loaded %s font %s", f.Strategy(), path)
	return f, nil
}

// SaveFont writes a font to a file, with the format selected by the file
// extension (.bglf, .yaml or .yml).
func SaveFont(f *atlas.Font, path string) (err error) {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bglf":
		data, err = f.MarshalBinary()
	case ".yaml", ".yml":
		data, err = atlas.EncodeYAML(f)
	default:
		return core.Error(core.EINVALID, "cannot save fonts in format %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write font %s", path)
	}
	tracer().Infof("saved font to %s", path)
	return nil
}
