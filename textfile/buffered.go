package textfile

import "golang.org/x/text/encoding"

// Default reserved buffer capacity, in characters. The buffer grows on
// demand; one character is the hard minimum.
const defaultBufferSize = 256

// mode is the operating state of a Buffered instance.
type mode int8

const (
	modeNeutral mode = iota
	modeReading
	modeWriting
)

func (m mode) String() string {
	switch m {
	case modeNeutral:
		return "neutral"
	case modeReading:
		return "reading"
	case modeWriting:
		return "writing"
	}
	return "invalid"
}

// Buffered is a character buffer layered over a [Codec].
//
// Four cursors index into the buffer. In reading mode:
//
//	0 ≤ offset ≤ begin ≤ curr ≤ end ≤ len(buf)
//
// offset is the buffer position corresponding to the codec's consumed
// position, begin the position consumed by the client (via Advance), curr
// the position delivered to the client, and end the extent filled by codec
// read-ahead. In writing mode offset and curr are unused (zero), begin is
// the position the codec has accepted, and end the client's write position.
//
// The zero Buffered is not usable; construct instances with NewBuffered.
type Buffered struct {
	codec Codec
	buf   []rune
	begin int
	end   int
	off   int
	curr  int
	mod   mode
}

// NewBuffered wraps codec with a character buffer of the given reserved
// capacity. Non-positive capacity selects a default; capacity is never less
// than one character.
func NewBuffered(codec Codec, capacity int) *Buffered {
	assert(codec != nil, "textfile: nil codec")
	if capacity <= 0 {
		capacity = defaultBufferSize
	}
	return &Buffered{
		codec: codec,
		buf:   make([]rune, capacity),
	}
}

// Mode reports the current operating mode as a string, for tracing and
// test inspection.
func (b *Buffered) Mode() string {
	return b.mod.String()
}

func (b *Buffered) checkMode(allowed mode, op string) {
	assert(b.mod == modeNeutral || b.mod == allowed,
		"textfile: "+op+" called in "+b.mod.String()+" mode")
}

func (b *Buffered) resetCursors() {
	b.begin, b.end, b.off, b.curr = 0, 0, 0, 0
}

// Reset resets the codec and all cursors and returns to neutral mode. The
// underlying medium is not touched. Reset is legal in any mode.
func (b *Buffered) Reset() {
	b.codec.Reset()
	b.resetCursors()
	b.mod = modeNeutral
}

// grow enlarges the buffer, preserving contents and cursors.
func (b *Buffered) grow() {
	n := len(b.buf) * 2
	if n < 1 {
		n = 1
	}
	buf := make([]rune, n)
	copy(buf, b.buf)
	b.buf = buf
}

// syncReadPos advances the codec's consumed position to the client's,
// closing the gap accumulated by Advance calls.
func (b *Buffered) syncReadPos() {
	if gap := b.begin - b.off; gap > 0 {
		b.codec.Advance(gap)
		b.off = b.begin
	}
}

// ReadAhead delivers up to len(dst) characters into dst, advancing the
// delivery cursor but not the consumed position (see Advance). Buffered
// characters are served without consulting the codec; only an empty buffer
// triggers a codec read-ahead. A return of (0, nil) is end of input.
//
// Legal in neutral and reading mode; enters reading mode.
func (b *Buffered) ReadAhead(dst []rune, dynamicEOF bool) (int, error) {
	b.checkMode(modeReading, "ReadAhead")
	b.mod = modeReading
	if len(dst) == 0 {
		return 0, nil
	}
	if b.curr < b.end {
		n := copy(dst, b.buf[b.curr:b.end])
		b.curr += n
		return n, nil
	}
	// Make room at the tail: release consumed characters and compact.
	b.syncReadPos()
	if b.begin > 0 {
		copy(b.buf, b.buf[b.begin:b.end])
		b.end -= b.begin
		b.curr -= b.begin
		b.off = 0
		b.begin = 0
	}
	if b.end == len(b.buf) {
		b.grow()
	}
	n2, err := b.codec.ReadAhead(b.buf[b.end:], dynamicEOF)
	if err != nil {
		return 0, err
	}
	if n2 == 0 {
		return 0, nil // end of input
	}
	b.end += n2
	n := copy(dst, b.buf[b.curr:b.end])
	b.curr += n
	return n, nil
}

// ReadUntil scans for delim, appending everything up to and including a
// found delimiter to dst, and returns the extended slice. found is false
// only at end of input; the scanned tail is still appended then.
//
// ReadUntil consumes what it delivers: the internal buffer is drained and
// the codec's consumed position kept in step, so interleaving with
// Advance-based reading is not meaningful.
//
// Legal in neutral and reading mode; enters reading mode.
func (b *Buffered) ReadUntil(delim rune, dst []rune, dynamicEOF bool) ([]rune, bool, error) {
	b.checkMode(modeReading, "ReadUntil")
	b.mod = modeReading
	for {
		for i := b.curr; i < b.end; i++ {
			if b.buf[i] == delim {
				dst = append(dst, b.buf[b.curr:i+1]...)
				b.curr = i + 1
				b.begin = b.curr
				return dst, true, nil
			}
		}
		dst = append(dst, b.buf[b.curr:b.end]...)
		// The buffer is exhausted: everything delivered counts as consumed.
		b.syncReadPos()
		if delivered := b.end - b.off; delivered > 0 {
			b.codec.Advance(delivered)
		}
		b.resetCursors()
		n, err := b.codec.ReadAhead(b.buf, dynamicEOF)
		if err != nil {
			return dst, false, err
		}
		if n == 0 {
			return dst, false, nil // end of input
		}
		b.end = n
	}
}

// shallowFlush hands the buffered-but-unwritten region to the codec in one
// call. On success the write cursors rewind to the buffer start; on partial
// failure begin advances by whatever the codec accepted, so a caller may
// retry or abort with exact progress information.
func (b *Buffered) shallowFlush() error {
	if b.begin == b.end {
		b.begin, b.end = 0, 0
		return nil
	}
	n, err := b.codec.Write(b.buf[b.begin:b.end])
	if err != nil {
		b.begin += n
		return err
	}
	b.begin, b.end = 0, 0
	return nil
}

// Write appends src to the write buffer, shallow-flushing to the codec
// whenever the buffer fills. On success the returned count is len(src); on
// failure it is the number of characters actually taken.
//
// Legal in neutral and writing mode; enters writing mode.
func (b *Buffered) Write(src []rune) (int, error) {
	b.checkMode(modeWriting, "Write")
	b.mod = modeWriting
	written := 0
	for {
		n := copy(b.buf[b.end:], src)
		b.end += n
		written += n
		src = src[n:]
		if len(src) == 0 {
			return written, nil
		}
		if err := b.shallowFlush(); err != nil {
			return written, err
		}
	}
}

// Unshift returns the output encoding to its initial shift state. For
// codecs whose unshift is degenerate this is a complete no-op; otherwise
// pending output is shallow-flushed first so the unshift sequence lands
// behind it.
//
// Legal in neutral and writing mode; enters writing mode (except for the
// degenerate no-op).
func (b *Buffered) Unshift() error {
	b.checkMode(modeWriting, "Unshift")
	if b.codec.DegenerateUnshift() {
		return nil
	}
	b.mod = modeWriting
	if err := b.shallowFlush(); err != nil {
		return err
	}
	return b.codec.Unshift()
}

// Advance declares all delivered characters as consumed.
//
// Legal in neutral and reading mode; enters reading mode.
func (b *Buffered) Advance() {
	b.checkMode(modeReading, "Advance")
	b.mod = modeReading
	b.begin = b.curr
}

// AdvanceBy declares n delivered characters as consumed. n exceeding the
// delivered-but-unconsumed count is a caller bug.
//
// Legal in neutral and reading mode; enters reading mode.
func (b *Buffered) AdvanceBy(n int) {
	b.checkMode(modeReading, "AdvanceBy")
	assert(n >= 0 && n <= b.curr-b.begin, "textfile: AdvanceBy beyond delivered characters")
	b.mod = modeReading
	b.begin += n
}

// Discard drops everything delivered but not consumed, repositions the
// codec at the consumed position, and returns to neutral mode. The mode is
// unchanged on failure.
//
// Legal in neutral and reading mode.
func (b *Buffered) Discard() error {
	b.checkMode(modeReading, "Discard")
	b.syncReadPos()
	if err := b.codec.Discard(); err != nil {
		return err
	}
	b.resetCursors()
	b.mod = modeNeutral
	return nil
}

// Flush writes all buffered output through to the codec and the medium and
// returns to neutral mode. When the shallow flush fails midway, whatever
// the codec did accept is still flushed on a best-effort basis. That
// secondary flush keeps its error to itself, the primary failure is the one
// reported, and the mode is unchanged.
//
// Legal in neutral and writing mode. Flush after read activity without an
// intervening Discard or Seek is unsupported.
func (b *Buffered) Flush() error {
	b.checkMode(modeWriting, "Flush")
	assert(b.off == 0 && b.curr == 0, "textfile: Flush with pending read state")
	b.mod = modeWriting
	if err := b.shallowFlush(); err != nil {
		_ = b.codec.Flush() // best effort for what did arrive
		return err
	}
	if err := b.codec.Flush(); err != nil {
		return err
	}
	b.mod = modeNeutral
	return nil
}

// TellRead reports the byte position of the consumed read position. The
// mode is not changed.
//
// Legal in neutral and reading mode.
func (b *Buffered) TellRead() (Position, error) {
	b.checkMode(modeReading, "TellRead")
	b.syncReadPos()
	return b.codec.TellRead()
}

// TellWrite reports the byte position of the current write position. The
// codec's write path is only touched when output is actually pending, so a
// neutral-mode TellWrite does not push the codec into writing. The mode is
// not changed.
//
// Legal in neutral and writing mode.
func (b *Buffered) TellWrite() (Position, error) {
	b.checkMode(modeWriting, "TellWrite")
	if b.end > b.begin {
		if err := b.shallowFlush(); err != nil {
			return 0, err
		}
	}
	return b.codec.TellWrite()
}

// Seek repositions the stream, drops all buffered state on success and
// returns to neutral mode. The mode is unchanged on failure.
//
// Legal in neutral and reading mode.
func (b *Buffered) Seek(pos Position) error {
	b.checkMode(modeReading, "Seek")
	if err := b.codec.Seek(pos); err != nil {
		return err
	}
	b.resetCursors()
	b.mod = modeNeutral
	return nil
}

// Imbue switches the codec to a different character encoding. The mode is
// not changed.
//
// Legal in neutral mode only.
func (b *Buffered) Imbue(enc encoding.Encoding) error {
	assert(b.mod == modeNeutral, "textfile: Imbue called in "+b.mod.String()+" mode")
	return b.codec.Imbue(enc)
}
