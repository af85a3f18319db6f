/*
Package linebreak computes paragraph break points.

Clients hand the package a run of measured words (each word carries its own
printable width plus the width of the white-space that follows it) together
with a sequence of line geometries. A geometry describes the width budget of
one line and names the geometry governing the line after it, so geometries may
form arbitrary walks, including cyclic ones (think of a hanging indent:
a first-line geometry followed by a repeating body geometry).

Two breakers are provided:

▪︎ [FirstFit] packs words greedily, first-fit, with no lookahead. It is cheap,
single-pass, and produces the breaking most people write by hand.

▪︎ [KnuthPlass] searches for the breaking with minimal total badness, where the
badness of a line is the square of its unused width. This is the
paragraph-breaking approach made famous by TeX: squared slack penalizes very
loose lines disproportionately and thus spreads white-space evenly over the
paragraph instead of pushing it all into the last lines.

Widths are opaque to this package. Whether a [Dimen] is a terminal cell count,
a big-point, or a 26.6 fixed-point font advance is the client's business;
package measure produces word runs for the common cases.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package linebreak

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeline.linebreak'
func tracer() tracing.Trace {
	return tracing.Select("typeline.linebreak")
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
