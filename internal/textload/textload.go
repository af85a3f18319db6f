package textload

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/npillmayer/typeline/textfile"
)

// TextStream is an open text file together with its buffered transcoding
// view.
type TextStream struct {
	Filename string
	Charset  string
	File     *os.File
	Stream   *textfile.Buffered
}

// Close closes the underlying file.
func (ts *TextStream) Close() error {
	return ts.File.Close()
}

// ResolveCharset maps an IANA charset name to its encoding. UTF-8 (and an
// empty name) map to nil, which the transcoder treats as a pass-through.
func ResolveCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no decoder", name)
	}
	return enc, nil
}

// OpenTextFile opens a text file and layers a buffered transcoder for the
// given charset over it.
func OpenTextFile(path string, charset string) (*TextStream, error) {
	enc, err := ResolveCharset(charset)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		// fall back to read-only media
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}
	return &TextStream{
		Filename: path,
		Charset:  charset,
		File:     f,
		Stream:   textfile.NewBuffered(textfile.NewTranscoder(f, enc), 0),
	}, nil
}
