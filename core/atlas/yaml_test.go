package atlas

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestYAMLRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.atlas")
	defer teardown()
	//
	for _, s := range []Strategy{Sparse, Dense} {
		f := abFont(t, s)
		text, err := EncodeYAML(f)
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("YAML:\n%s", text)
		decoded, err := DecodeYAML(text)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(f, decoded); diff != "" {
			t.Errorf("%s: decoded font differs (-want +got):\n%s", s, diff)
		}
		again, err := EncodeYAML(decoded)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(text), string(again)); diff != "" {
			t.Errorf("%s: re-encoded YAML differs (-want +got):\n%s", s, diff)
		}
	}
}

func TestYAMLControlChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.atlas")
	defer teardown()
	//
	for _, s := range []Strategy{Sparse, Dense} {
		f, err := NewBuilder(make([]byte, 16*7), 16).
			AddSingle('\n', g1).
			AddSingle('\t', g2).
			AddSingle('\r', g3).
			AddSingle(0, g1).
			AddSingle(' ', g2).
			AddPair('\n', '\n', g1).
			AddPair('\r', '\n', g2).
			AddPair('\t', ' ', g3).
			Build(s)
		if err != nil {
			t.Fatal(err)
		}
		text, err := EncodeYAML(f)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := DecodeYAML(text)
		if err != nil {
			t.Fatalf("%s: cannot decode YAML:\n%s\n%v", s, text, err)
		}
		if !f.Equal(decoded) {
			t.Errorf("%s: control characters do not survive YAML:\n%s", s, text)
		}
		if !strings.Contains(string(text), `chars: "\r\n"`) {
			t.Errorf("%s: expected ligature chars to be double-quoted:\n%s", s, text)
		}
	}
}

func TestYAMLDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.atlas")
	defer teardown()
	//
	doc := `
width: 2
strategy: dense
bitmap: /wA=
glyphs:
  - chars: "ß"
    at: [1, 0]
    size: [1, 1]
    offset: [0, -1]
ligatures:
  - chars: "ﬀ"
    at: [0, 0]
    size: [1, 1]
    offset: [0, 0]
`
	_, err := DecodeYAML([]byte(doc))
	if core.Code(err) != core.EFORMAT {
		t.Errorf("expected ligature of one character to be rejected, got %v", err)
	}
	doc = strings.Replace(doc, `"ﬀ"`, `"ff"`, 1)
	f, err := DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if f.Strategy() != Dense || f.Width() != 2 || len(f.Bitmap()) != 2 || f.Bitmap()[0] != 0xFF {
		t.Errorf("unexpected font header: %s, width %d, bitmap %v", f.Strategy(), f.Width(), f.Bitmap())
	}
	if g, ok := f.LookupSingle('ß'); !ok || g.Pos.X != 1 || g.Offset.Y != -1 {
		t.Errorf("expected glyph for ß, got %v", g)
	}
	if _, ok := f.LookupDouble('f', 'f'); !ok {
		t.Errorf("expected ligature ff")
	}
}

func TestYAMLRejectsMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.atlas")
	defer teardown()
	//
	for name, doc := range map[string]string{
		"syntax":    "width: [",
		"unknown":   "width: 1\ncolour: red\nstrategy: sparse",
		"strategy":  "width: 1\nstrategy: auto",
		"bitmap":    "width: 1\nstrategy: sparse\nbitmap: '***'",
		"glyph":     "width: 1\nstrategy: sparse\nglyphs:\n  - chars: AB\n",
		"duplicate": "width: 1\nstrategy: sparse\nglyphs:\n  - chars: A\n  - chars: A\n",
		"overflow":  "width: 1\nstrategy: sparse\nglyphs:\n  - chars: A\n    size: [300, 1]\n",
	} {
		if _, err := DecodeYAML([]byte(doc)); core.Code(err) != core.EFORMAT {
			t.Errorf("%s: expected format error, got %v", name, err)
		}
	}
}

func TestYAMLRejectsInvalidRunes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitglyph.atlas")
	defer teardown()
	//
	f, err := NewBuilder(nil, 0).AddSingle(0xD800, g1).Build(Sparse)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = EncodeYAML(f); core.Code(err) != core.EINVALID {
		t.Errorf("expected surrogate to be rejected, got %v", err)
	}
}
