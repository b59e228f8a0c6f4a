package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	f, err := LoadFont("", Options{})
	require.NoError(t, err)
	assert.Same(t, Builtin(), f)
}

func TestSaveAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	dir := t.TempDir()
	src := filepath.Join(dir, "demo.atlas")
	require.NoError(t, os.WriteFile(src, []byte(demo), 0644))
	f, err := LoadFont(src, Options{Strategy: atlas.Auto})
	require.NoError(t, err)
	assert.Equal(t, atlas.Dense, f.Strategy())
	for _, name := range []string{"demo.bglf", "demo.yaml", "demo.YML"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveFont(f, path), name)
		loaded, err := LoadFont(path, Options{})
		require.NoError(t, err, name)
		if diff := cmp.Diff(f, loaded); diff != "" {
			t.Errorf("%s: loaded font differs (-saved +loaded):\n%s", name, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.compile")
	defer teardown()
	//
	dir := t.TempDir()
	_, err := LoadFont(filepath.Join(dir, "missing.bglf"), Options{})
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	other := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(other, []byte{0, 1, 0, 0}, 0644))
	_, err = LoadFont(other, Options{})
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	broken := filepath.Join(dir, "broken.bglf")
	require.NoError(t, os.WriteFile(broken, []byte("BGLF"), 0644))
	_, err = LoadFont(broken, Options{})
	assert.Equal(t, core.EFORMAT, core.Code(err))
	//
	unreadable := filepath.Join(dir, "folder.yaml")
	require.NoError(t, os.Mkdir(unreadable, 0755))
	_, err = LoadFont(unreadable, Options{})
	assert.Equal(t, core.EINTERNAL, core.Code(err), "read failure should carry an error code")
	//
	err = SaveFont(Builtin(), filepath.Join(dir, "builtin.atlas"))
	assert.Equal(t, core.EINVALID, core.Code(err))
}
