/*
Package measure turns text into measured word runs for package linebreak.

The line breakers are unit-agnostic: they consume words with abstract widths.
This package produces such words for the two common cases: fixed-width
terminal output, where a character occupies one or two cells, and proportional
font output, where widths come from font metrics.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package measure

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"

	"github.com/npillmayer/typeline/linebreak"
)

// tracer writes to trace with key 'typeline.measure'
func tracer() tracing.Trace {
	return tracing.Select("typeline.measure")
}

// Words splits text on white-space runs and measures the fragments in
// terminal cells, using Unicode column widths (East Asian wide characters
// count as two cells). The width of each white-space run becomes the
// SpaceSize of the word preceding it; white-space before the first word is
// dropped. The returned strings are the word fragments, aligned with the
// word run.
func Words(text string) ([]linebreak.Word, []string) {
	var words []linebreak.Word
	var frags []string
	i := skipSpace(text, 0)
	for i < len(text) {
		j := i
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if unicode.IsSpace(r) {
				break
			}
			j += size
		}
		k := skipSpace(text, j)
		frag := text[i:j]
		words = append(words, linebreak.Word{
			Size:      Dimen(runewidth.StringWidth(frag)),
			SpaceSize: Dimen(runewidth.StringWidth(text[j:k])),
		})
		frags = append(frags, frag)
		i = k
	}
	tracer().Debugf("measured %d words in %d bytes of text", len(words), len(text))
	return words, frags
}

// WordsForFace measures the white-space separated fragments of text with
// the metrics of a font face. Widths are raw 26.6 fixed-point advances, so
// one linebreak.Dimen unit is 1/64 of a pixel; line geometries must use the
// same scale.
func WordsForFace(face font.Face, text string) ([]linebreak.Word, []string) {
	var words []linebreak.Word
	var frags []string
	space := font.MeasureString(face, " ")
	for _, frag := range strings.Fields(text) {
		adv := font.MeasureString(face, frag)
		words = append(words, linebreak.Word{
			Size:      Dimen(int(adv)),
			SpaceSize: Dimen(int(space)),
		})
		frags = append(frags, frag)
	}
	return words, frags
}

// Dimen converts a non-negative int to a linebreak width, clamping negative
// values to zero.
func Dimen(n int) linebreak.Dimen {
	if n < 0 {
		return 0
	}
	return linebreak.Dimen(n)
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
