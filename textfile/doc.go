/*
Package textfile layers a character buffer over raw transcoding I/O.

A [Codec] performs the actual work of moving characters to and from an
underlying byte medium: decoding bytes to runes on the way in, encoding runes
to bytes on the way out, and keeping track of byte-oriented positions and
encoding shift state. Codec calls are potentially expensive and potentially
blocking, so [Buffered] amortizes them: reads are served from an in-memory
read-ahead buffer, writes are collected and handed to the codec in large
chunks.

A Buffered instance is always in one of three modes (neutral, reading, or
writing) and tracks the mode it is in. Reading operations are legal in
neutral and reading mode, writing operations in neutral and writing mode, and
the transitions back to neutral are Discard and Seek (from reading) and Flush
(from writing). Calling an operation in the wrong mode is a caller bug, not a
recoverable error: the package asserts mode consistency and panics on
violations.

Instances are not safe for concurrent use. Operations on one Buffered must be
issued by a single logical owner in strict sequence; no internal locking is
performed and no cancellation points exist; a blocking codec call simply
blocks.

[Transcoder] is the stock codec: it wraps an io.ReadWriteSeeker and an
encoding from golang.org/x/text, turning any file handle into a
character-oriented stream in the charset of the caller's choosing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeline.textfile'
func tracer() tracing.Trace {
	return tracing.Select("typeline.textfile")
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
