package atlas

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/npillmayer/bitglyph/core"
)

// Binary layout of a font, all integers big-endian:
//
//	magic "BGLF" | version u8 | strategy u8 | width u32
//	bitmap length u32 | bitmap bytes
//	single count u32 | { char i32 | glyph }*
//	pair count u32   | { char i32 | char i32 | glyph }*
//
// with glyph = x u32 | y u32 | w u8 | h u8 | dx i8 | dy i8.
// Table entries are stored in strictly ascending order of their keys, which
// makes the encoding of a font unique.
const (
	magic         = "BGLF"
	formatVersion = 1
)

type glyphRecord struct {
	X, Y   uint32
	W, H   uint8
	DX, DY int8
}

func toRecord(g Glyph) glyphRecord {
	return glyphRecord{g.Pos.X, g.Pos.Y, g.Size.W, g.Size.H, g.Offset.X, g.Offset.Y}
}

func (r glyphRecord) glyph() Glyph {
	return Glyph{AtlasPos{r.X, r.Y}, CellSize{r.W, r.H}, PenOffset{r.DX, r.DY}}
}

// MarshalBinary encodes f in its binary form.
func (f *Font) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the binary form of f to w.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	put := func(v interface{}) {
		if cw.err == nil {
			cw.err = binary.Write(cw, binary.BigEndian, v)
		}
	}
	put([]byte(magic))
	put(uint8(formatVersion))
	put(uint8(f.Strategy()))
	put(f.width)
	put(uint32(len(f.bitmap)))
	if len(f.bitmap) > 0 {
		put(f.bitmap)
	}
	put(uint32(f.SingleCount()))
	f.EachSingle(func(c rune, g Glyph) {
		put(int32(c))
		put(toRecord(g))
	})
	put(uint32(f.PairCount()))
	f.EachPair(func(p Pair, g Glyph) {
		put([2]int32{int32(p[0]), int32(p[1])})
		put(toRecord(g))
	})
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// UnmarshalBinary decodes a font from its binary form. data has to contain
// exactly one font; keys out of order, duplicate keys and trailing bytes are
// rejected.
func UnmarshalBinary(data []byte) (*Font, error) {
	r := bytes.NewReader(data)
	f, err := ReadFont(r)
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, core.Error(core.EFORMAT, "%d bytes of trailing data after font", r.Len())
	}
	return f, nil
}

// ReadFont reads the binary form of one font from r.
func ReadFont(r io.Reader) (*Font, error) {
	d := decoder{r: r}
	var hdr [4]byte
	d.get(&hdr)
	if d.err == nil && string(hdr[:]) != magic {
		return nil, core.Error(core.EFORMAT, "not a bitglyph font (magic %q)", hdr[:])
	}
	var version, strategy uint8
	d.get(&version)
	if d.err == nil && version != formatVersion {
		return nil, core.Error(core.EFORMAT, "unsupported font format version %d", version)
	}
	d.get(&strategy)
	if d.err == nil && Strategy(strategy) != Sparse && Strategy(strategy) != Dense {
		return nil, core.Error(core.EFORMAT, "unsupported storage strategy %d", strategy)
	}
	var width, size uint32
	d.get(&width)
	d.get(&size)
	bitmap := d.bytes(size)
	if d.err != nil {
		return nil, d.failure("header")
	}
	b := NewBuilder(bitmap, width)
	var count uint32
	d.get(&count)
	var last int32
	for i := uint32(0); i < count && d.err == nil; i++ {
		var c int32
		var rec glyphRecord
		d.get(&c)
		d.get(&rec)
		if d.err == nil && i > 0 && c <= last {
			return nil, core.Error(core.EFORMAT, "character %U out of order", c)
		}
		last = c
		b.AddSingle(rune(c), rec.glyph())
	}
	d.get(&count)
	var lastPair Pair
	for i := uint32(0); i < count && d.err == nil; i++ {
		var p [2]int32
		var rec glyphRecord
		d.get(&p)
		d.get(&rec)
		pair := Pair{rune(p[0]), rune(p[1])}
		if d.err == nil && i > 0 && comparePairs(lastPair, pair) >= 0 {
			return nil, core.Error(core.EFORMAT, "ligature %q out of order", pair.String())
		}
		lastPair = pair
		b.AddPair(pair[0], pair[1], rec.glyph())
	}
	if d.err != nil {
		return nil, d.failure("tables")
	}
	f, err := b.Build(Strategy(strategy))
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "inconsistent font tables")
	}
	return f, nil
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) get(v interface{}) {
	if d.err == nil {
		d.err = binary.Read(d.r, binary.BigEndian, v)
	}
}

func (d *decoder) bytes(n uint32) []byte {
	if d.err != nil {
		return nil
	}
	var buf bytes.Buffer
	m, err := io.CopyN(&buf, d.r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) && m < int64(n) {
			err = io.ErrUnexpectedEOF
		}
		d.err = err
		return nil
	}
	return buf.Bytes()
}

func (d *decoder) failure(section string) error {
	err := d.err
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	tracer().Errorf("decoding font %s: %v", section, err)
	return core.WrapError(err, core.EFORMAT, "truncated or malformed font %s", section)
}
