package textfile

import (
	"errors"

	"golang.org/x/text/encoding"
)

// Position is a byte-oriented position in the underlying medium. Positions
// are produced by TellRead/TellWrite and consumed by Seek; they are opaque
// to Buffered, which never does arithmetic on them.
type Position int64

// ErrPositionUnknown is returned by codecs that cannot express their current
// character position as a byte offset, e.g. stateful encodings mid-sequence.
var ErrPositionUnknown = errors.New("textfile: byte position not representable")

// Codec is the lower-level transcoding collaborator of [Buffered]. It reads
// and writes characters (runes) against a byte medium and owns all encoding
// state.
//
// A codec distinguishes two read positions, mirroring the buffered layer
// above it: the consumed position, moved by Advance, and the read-ahead
// position, moved by ReadAhead. Successive ReadAhead calls deliver
// successive characters; Advance(n) declares the oldest n delivered
// characters consumed; Discard drops everything delivered but not consumed,
// repositioning the medium at the consumed position.
//
// All failures are reported as ordinary error returns. A ReadAhead returning
// (0, nil) signals end of input.
type Codec interface {
	// Reset returns the codec to its initial state with all positions
	// zeroed. It must not touch the underlying medium.
	Reset()

	// ReadAhead decodes up to len(dst) characters beyond the read-ahead
	// position into dst and advances the read-ahead position accordingly.
	// dynamicEOF marks media that may grow while being read: a zero count
	// then means "no data right now" rather than a final end of input.
	ReadAhead(dst []rune, dynamicEOF bool) (int, error)

	// Advance declares n characters beyond the consumed position as
	// consumed. Negative n is a caller bug. n must not exceed the number of
	// characters delivered by ReadAhead but not yet consumed.
	Advance(n int)

	// Discard drops all characters delivered but not consumed and
	// repositions the medium at the consumed position.
	Discard() error

	// Write encodes src to the medium and returns the number of characters
	// consumed from src. On success the count equals len(src).
	Write(src []rune) (int, error)

	// Unshift writes whatever byte sequence returns the output encoding to
	// its initial shift state.
	Unshift() error

	// DegenerateUnshift reports that Unshift never has an effect for this
	// codec, so callers may skip it entirely.
	DegenerateUnshift() bool

	// Flush forwards buffered output to the medium.
	Flush() error

	// TellRead returns the byte position corresponding to the consumed
	// read position.
	TellRead() (Position, error)

	// TellWrite returns the byte position corresponding to the current
	// write position.
	TellWrite() (Position, error)

	// Seek repositions the medium and resets decoding state. Only Position
	// zero and positions previously returned by TellRead/TellWrite are
	// meaningful.
	Seek(pos Position) error

	// Imbue switches the codec to a different character encoding. Legal
	// only while no transcoding state is pending.
	Imbue(enc encoding.Encoding) error
}
