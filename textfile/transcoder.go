package textfile

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Chunk size for raw reads from the medium.
const rawChunkSize = 1024

// errCodec wraps a message as a user-facing transcoding error.
func errCodec(format string, args ...interface{}) error {
	return fmt.Errorf("textfile codec: "+format, args...)
}

// Transcoder is the stock [Codec]: character transcoding over an
// io.ReadWriteSeeker through an encoding from golang.org/x/text. A nil
// encoding selects plain UTF-8.
//
// The transcoder decodes rune by rune, which lets it attribute source bytes
// to individual characters: byte positions for TellRead stay exact even for
// multi-byte and shift-state encodings, because every shift sequence is
// accounted to the character it precedes. Positions are relative to the
// medium position at construction time, which for the typical
// freshly-opened file is offset zero.
//
// A Transcoder serves one Buffered instance and is not safe for concurrent
// use.
type Transcoder struct {
	rws io.ReadWriteSeeker
	enc encoding.Encoding

	dec transform.Transformer // byte stream -> UTF-8
	out transform.Transformer // UTF-8 -> byte stream

	raw        []byte // raw bytes read ahead of the decoder
	rawPos     int
	rawEnd     int
	srcEOF     bool // medium reported EOF (ignored under dynamicEOF)
	decodeDone bool // decoder fully drained after EOF

	pending []rune // decoded characters; pending[:ahead] delivered
	srcLens []int  // source bytes per pending character
	ahead   int
	carry   int // source bytes consumed without character output (e.g. a BOM)

	pos     Position // byte position of the consumed character position
	scratch [utf8.UTFMax]byte
}

// NewTranscoder wraps rws with a transcoding codec for enc. A nil enc means
// the medium already is UTF-8.
func NewTranscoder(rws io.ReadWriteSeeker, enc encoding.Encoding) *Transcoder {
	c := &Transcoder{rws: rws}
	c.setEncoding(enc)
	return c
}

func (c *Transcoder) setEncoding(enc encoding.Encoding) {
	c.enc = enc
	if enc == nil {
		c.dec = nil
		c.out = nil
		return
	}
	c.dec = enc.NewDecoder()
	c.out = enc.NewEncoder()
}

// Reset returns the transcoder to its initial state. The medium is not
// touched; in particular its read/write offset keeps whatever value it has.
func (c *Transcoder) Reset() {
	if c.dec != nil {
		c.dec.Reset()
	}
	if c.out != nil {
		c.out.Reset()
	}
	c.rawPos, c.rawEnd = 0, 0
	c.srcEOF, c.decodeDone = false, false
	c.pending = c.pending[:0]
	c.srcLens = c.srcLens[:0]
	c.ahead = 0
	c.carry = 0
	c.pos = 0
}

// fillRaw reads one chunk of raw bytes from the medium. Under dynamicEOF an
// EOF from the medium is not sticky: the medium may grow, so the caller
// reports "nothing right now" instead of end of input.
func (c *Transcoder) fillRaw(dynamicEOF bool) error {
	if c.srcEOF {
		return nil
	}
	if c.rawPos == c.rawEnd {
		c.rawPos, c.rawEnd = 0, 0
	} else if len(c.raw)-c.rawEnd < rawChunkSize/2 {
		copy(c.raw, c.raw[c.rawPos:c.rawEnd])
		c.rawEnd -= c.rawPos
		c.rawPos = 0
	}
	if len(c.raw)-c.rawEnd < rawChunkSize {
		raw := make([]byte, c.rawEnd+rawChunkSize)
		copy(raw, c.raw[:c.rawEnd])
		c.raw = raw
	}
	n, err := c.rws.Read(c.raw[c.rawEnd : c.rawEnd+rawChunkSize])
	c.rawEnd += n
	if err == io.EOF {
		if !dynamicEOF {
			c.srcEOF = true
		}
		return nil
	}
	return err
}

// decodeRune decodes exactly one character from the raw buffer. It returns
// false without error when more raw input is needed (or, at a true end of
// input, when the decoder is fully drained).
//
// The destination window is widened one byte at a time, so a successful
// transform step can never produce more than one character; the source
// bytes it consumed, shift sequences and byte-order marks included, are
// attributed to that character for position accounting.
func (c *Transcoder) decodeRune() (bool, error) {
	if c.enc == nil {
		return c.decodeUTF8()
	}
	dst := c.scratch[:]
restart:
	for {
		src := c.raw[c.rawPos:c.rawEnd]
		for k := 1; ; k++ {
			if k > len(dst) {
				dst = make([]byte, 2*len(dst))
			}
			nDst, nSrc, err := c.dec.Transform(dst[:k], src, c.srcEOF)
			if nDst > 0 {
				// The destination window was widened byte by byte, so this
				// is normally exactly one character; a decoder emitting an
				// atomic multi-character sequence charges all source bytes
				// to the first of them.
				srcLen := c.carry + nSrc
				c.carry = 0
				for b := dst[:nDst]; len(b) > 0; {
					r, size := utf8.DecodeRune(b)
					b = b[size:]
					c.pending = append(c.pending, r)
					c.srcLens = append(c.srcLens, srcLen)
					srcLen = 0
				}
				c.rawPos += nSrc
				return true, nil
			}
			if nSrc > 0 {
				// Source consumed without character output, e.g. a BOM;
				// charge it to the next character.
				c.carry += nSrc
				c.rawPos += nSrc
				continue restart
			}
			if err == transform.ErrShortDst {
				continue // character needs a wider destination
			}
			if err == transform.ErrShortSrc {
				return false, nil // need more raw input
			}
			if err != nil {
				return false, errCodec("decoding failed: %w", err)
			}
			// No progress and no error: the decoder is drained.
			if c.srcEOF {
				c.decodeDone = true
			}
			return false, nil
		}
	}
}

// decodeUTF8 is the decode step of the nil-encoding fast path.
func (c *Transcoder) decodeUTF8() (bool, error) {
	src := c.raw[c.rawPos:c.rawEnd]
	if len(src) == 0 {
		if c.srcEOF {
			c.decodeDone = true
		}
		return false, nil
	}
	if !utf8.FullRune(src) && !c.srcEOF {
		return false, nil
	}
	r, size := utf8.DecodeRune(src)
	c.pending = append(c.pending, r)
	c.srcLens = append(c.srcLens, c.carry+size)
	c.carry = 0
	c.rawPos += size
	return true, nil
}

// ReadAhead decodes up to len(dst) characters beyond the read-ahead
// position. A return of (0, nil) is end of input or, under dynamicEOF,
// "no data right now".
func (c *Transcoder) ReadAhead(dst []rune, dynamicEOF bool) (int, error) {
	for len(c.pending)-c.ahead < len(dst) && !c.decodeDone {
		ok, err := c.decodeRune()
		if err != nil {
			return 0, err
		}
		if ok {
			continue
		}
		if c.decodeDone {
			break
		}
		before := c.rawEnd - c.rawPos
		wasEOF := c.srcEOF
		if err := c.fillRaw(dynamicEOF); err != nil {
			return 0, errCodec("reading medium: %w", err)
		}
		if c.rawEnd-c.rawPos == before && c.srcEOF == wasEOF {
			break // no forward progress possible right now
		}
	}
	n := copy(dst, c.pending[c.ahead:])
	c.ahead += n
	return n, nil
}

// Advance declares n delivered characters consumed, moving the byte
// position forward by their source lengths.
func (c *Transcoder) Advance(n int) {
	assert(n >= 0 && n <= c.ahead, "textfile codec: Advance beyond delivered characters")
	for i := 0; i < n; i++ {
		c.pos += Position(c.srcLens[i])
	}
	c.pending = append(c.pending[:0], c.pending[n:]...)
	c.srcLens = append(c.srcLens[:0], c.srcLens[n:]...)
	c.ahead -= n
}

// Discard drops everything delivered but not consumed and repositions the
// medium at the consumed position.
func (c *Transcoder) Discard() error {
	if _, err := c.rws.Seek(int64(c.pos), io.SeekStart); err != nil {
		return errCodec("repositioning medium: %w", err)
	}
	if c.dec != nil {
		c.dec.Reset()
	}
	c.rawPos, c.rawEnd = 0, 0
	c.srcEOF, c.decodeDone = false, false
	c.pending = c.pending[:0]
	c.srcLens = c.srcLens[:0]
	c.ahead = 0
	c.carry = 0
	return nil
}

// Write encodes src and writes the bytes through to the medium.
func (c *Transcoder) Write(src []rune) (int, error) {
	var buf []byte
	var u [utf8.UTFMax]byte
	var enc [4 * utf8.UTFMax]byte
	for i, r := range src {
		n := utf8.EncodeRune(u[:], r)
		if c.out == nil {
			buf = append(buf, u[:n]...)
			continue
		}
		nDst, _, err := c.out.Transform(enc[:], u[:n], false)
		if err != nil {
			if werr := c.writeRaw(buf); werr != nil {
				return 0, werr
			}
			return i, errCodec("encoding U+%04X: %w", r, err)
		}
		buf = append(buf, enc[:nDst]...)
	}
	if err := c.writeRaw(buf); err != nil {
		// The medium write is all-or-nothing from the caller's view.
		return 0, err
	}
	return len(src), nil
}

func (c *Transcoder) writeRaw(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := c.rws.Write(buf); err != nil {
		return errCodec("writing medium: %w", err)
	}
	return nil
}

// Unshift emits whatever byte sequence returns the output encoding to its
// initial shift state.
func (c *Transcoder) Unshift() error {
	if c.DegenerateUnshift() {
		return nil
	}
	var enc [4 * utf8.UTFMax]byte
	nDst, _, err := c.out.Transform(enc[:], nil, true)
	if err != nil {
		return errCodec("unshift: %w", err)
	}
	c.out.Reset()
	return c.writeRaw(enc[:nDst])
}

// DegenerateUnshift reports whether unshifting can never have an effect:
// true for UTF-8 and for single-byte character maps.
func (c *Transcoder) DegenerateUnshift() bool {
	if c.enc == nil {
		return true
	}
	_, isCharmap := c.enc.(*charmap.Charmap)
	return isCharmap
}

// Flush is a no-op: Write hands bytes straight to the medium.
func (c *Transcoder) Flush() error {
	return nil
}

// TellRead returns the byte position of the consumed read position.
func (c *Transcoder) TellRead() (Position, error) {
	return c.pos, nil
}

// TellWrite returns the medium's current byte offset.
func (c *Transcoder) TellWrite() (Position, error) {
	off, err := c.rws.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errCodec("querying medium offset: %w", err)
	}
	return Position(off), nil
}

// Seek repositions the medium and resets all decoding state.
func (c *Transcoder) Seek(pos Position) error {
	if _, err := c.rws.Seek(int64(pos), io.SeekStart); err != nil {
		return errCodec("seeking medium: %w", err)
	}
	c.Reset()
	c.pos = pos
	return nil
}

// Imbue switches to a different character encoding. Pending transcoding
// state makes the switch ambiguous and is reported as an error.
func (c *Transcoder) Imbue(enc encoding.Encoding) error {
	if len(c.pending) > 0 || c.rawPos != c.rawEnd || c.carry != 0 {
		return errCodec("cannot imbue with transcoding state pending")
	}
	c.setEncoding(enc)
	return nil
}
