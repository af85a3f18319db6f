/*
Package typeline provides character-oriented text file I/O and paragraph
line breaking.

The heavy lifting is done by the sub-packages: `textfile` layers a buffered,
mode-tracking character stream over raw transcoding I/O, `linebreak` computes
paragraph break points (greedy or TeX-style optimal), and `measure` produces
measured word runs from plain text. This package bundles the pieces into
convenience calls for the common cases; clients needing control over
encodings, buffer sizes or line geometries use the sub-packages directly.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package typeline

import (
	"strings"

	"github.com/npillmayer/typeline/internal/textload"
	"github.com/npillmayer/typeline/linebreak"
	"github.com/npillmayer/typeline/measure"
)

// AssembleLines joins word fragments into lines according to break points,
// separating words on a line with single spaces.
func AssembleLines(frags []string, breaks []int) []string {
	if len(frags) == 0 {
		return nil
	}
	lines := make([]string, 0, len(breaks)+1)
	from := 0
	for _, b := range breaks {
		lines = append(lines, strings.Join(frags[from:b], " "))
		from = b
	}
	return append(lines, strings.Join(frags[from:], " "))
}

// BreakIntoLines wraps text greedily to the given width in terminal cells.
//
// This is a convenience API for the most common use-case. Clients who need
// non-uniform line widths, font-metric measurements, or badness-minimizing
// breaks use packages measure and linebreak directly.
func BreakIntoLines(text string, width int) []string {
	words, frags := measure.Words(text)
	geoms := []linebreak.Geometry{{LineSize: measure.Dimen(width), Next: 0}}
	breaks := linebreak.FirstFit(words, 0, geoms, 0, nil)
	return AssembleLines(frags, breaks)
}

// BreakIntoLinesBalanced wraps text to the given width in terminal cells,
// minimizing the total squared slack of the produced lines. It fails with
// linebreak.ErrImpossible when a single word exceeds the width.
func BreakIntoLinesBalanced(text string, width int) ([]string, error) {
	words, frags := measure.Words(text)
	geoms := []linebreak.Geometry{{LineSize: measure.Dimen(width), Next: 0}}
	kp := linebreak.NewKnuthPlass()
	breaks, _, err := kp.BreakParagraph(words, 0, geoms, 0, nil)
	if err != nil {
		return nil, err
	}
	return AssembleLines(frags, breaks), nil
}

// ReadLines reads a whole text file in the given IANA charset (empty means
// UTF-8) and returns its lines, without line terminators.
func ReadLines(path string, charset string) ([]string, error) {
	ts, err := textload.OpenTextFile(path, charset)
	if err != nil {
		return nil, err
	}
	defer ts.Close()
	var lines []string
	var buf []rune
	for {
		var found bool
		buf, found, err = ts.Stream.ReadUntil('\n', buf[:0], false)
		if err != nil {
			return lines, err
		}
		line := buf
		if found {
			line = line[:len(line)-1]
		}
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if !found && len(line) == 0 {
			return lines, nil
		}
		lines = append(lines, string(line))
		if !found {
			return lines, nil
		}
	}
}
