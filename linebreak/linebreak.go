package linebreak

import "errors"

// Dimen is a non-negative width. The unit is up to the client: terminal
// cells, printer's points, 26.6 fixed-point font advances. The breakers
// only ever add and compare.
type Dimen uint32

// MaxDimen is the largest representable width. Saturating arithmetic clamps
// to MaxDimen, so an overflowing accumulation can never spuriously fit a
// line budget.
const MaxDimen = Dimen(^Dimen(0))

// Badness rates one breaking of a paragraph: the sum over all lines of the
// square of the line's unused width.
type Badness uint64

// InfiniteBadness marks an infeasible line or breaking. It compares worse
// than every finite badness value.
const InfiniteBadness = Badness(^Badness(0))

// ErrImpossible is returned by the optimal breaker when no feasible breaking
// exists, i.e. when some line cannot be formed without exceeding its width
// budget, or when total badness overflows.
var ErrImpossible = errors.New("linebreak: no feasible paragraph breaking")

// Word is one measured word of a paragraph. Size is the printable width of
// the word itself, SpaceSize the width of the white-space following it.
// SpaceSize of the very last word is ignored; the breakers take a separate
// trailing-space width instead (a paragraph may be flowed into surrounding
// material, so the final gap is the caller's to choose).
type Word struct {
	Size      Dimen
	SpaceSize Dimen
}

// Geometry is the width budget of one line, plus the index of the geometry
// governing the following line. Geometries form a walk through a slice and
// the walk may be cyclic.
type Geometry struct {
	LineSize Dimen
	Next     int
}

// satAdd adds two widths, clamping to MaxDimen on overflow.
func satAdd(a, b Dimen) Dimen {
	if c := a + b; c >= a {
		return c
	}
	return MaxDimen
}

// satAddBadness adds two badness values, clamping to InfiniteBadness on
// overflow. Anything involving InfiniteBadness stays infinite.
func satAddBadness(a, b Badness) Badness {
	if c := a + b; c >= a {
		return c
	}
	return InfiniteBadness
}

// wordSpan is the width one word contributes to a line: its own size plus
// the white-space after it, where the last word of the run gets the
// caller-supplied trailing space instead of its own.
func wordSpan(words []Word, i int, trailingSpace Dimen) Dimen {
	if i == len(words)-1 {
		return satAdd(words[i].Size, trailingSpace)
	}
	return satAdd(words[i].Size, words[i].SpaceSize)
}

// lineBadness rates a single line: the square of the unused width, or
// InfiniteBadness if the line overflows its budget.
func lineBadness(lineSize, cursor Dimen) Badness {
	if cursor > lineSize {
		return InfiniteBadness
	}
	slack := Badness(lineSize - cursor)
	return slack * slack
}

// TotalBadness scores an existing breaking of words with the squared-slack
// formula used by the optimal breaker. breaks lists the indices of words
// starting a new line, in increasing order; geometries are walked from
// start. A line exceeding its budget makes the total infinite.
//
// The function lets clients compare breakings across breakers, e.g. the
// first-fit result against the optimum.
func TotalBadness(words []Word, trailingSpace Dimen, geoms []Geometry, start int, breaks []int) Badness {
	if len(words) == 0 {
		return 0
	}
	assert(len(geoms) > 0, "linebreak: no geometries")
	assert(start >= 0 && start < len(geoms), "linebreak: geometry start index out of range")
	total := Badness(0)
	g := start
	cursor := Dimen(0)
	b := 0
	for i := range words {
		if b < len(breaks) && breaks[b] == i {
			total = satAddBadness(total, lineBadness(geoms[g].LineSize, cursor))
			g = geoms[g].Next
			cursor = 0
			b++
		}
		cursor = satAdd(cursor, wordSpan(words, i, trailingSpace))
	}
	return satAddBadness(total, lineBadness(geoms[g].LineSize, cursor))
}
