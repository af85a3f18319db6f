package linebreak

// KnuthPlass is a paragraph breaker minimizing total badness, in the spirit
// of the TeX line-breaking algorithm. It performs a memoized backtracking
// search over all feasible breakings, pruned by a monotonically tightening
// badness bound.
//
// A KnuthPlass value owns reusable scratch state (the memo table and its
// entry arena), cleared and re-populated on every call. It must not be used
// from two goroutines at the same time; concurrent breaking needs one
// instance per goroutine.
type KnuthPlass struct {
	words    []Word
	trailing Dimen
	geoms    []Geometry
	entries  []memoEntry
	index    map[memoKey]int32
}

// memoKey identifies a search state: breaking the word suffix starting at
// word under the geometry walk starting at geom.
type memoKey struct {
	geom int
	word int
}

// memoEntry caches the outcome of one search state.
//
// result is the exact minimal badness achievable from this state on, once it
// has been established. While result is still None, pruned records the
// largest bound under which the search came up empty, so a repeat visit with
// an equal or tighter bound can fail immediately.
type memoEntry struct {
	result    Option[Badness]
	bestBreak int // word index starting the next line; -1 when this is the last line
	pruned    Badness
}

// NewKnuthPlass creates a breaker with empty scratch state.
func NewKnuthPlass() *KnuthPlass {
	return &KnuthPlass{
		index: make(map[memoKey]int32),
	}
}

// BreakParagraph computes the breaking of words with minimal total badness,
// i.e. minimal sum of squared unused line widths. Inputs are as for
// [FirstFit]: trailingSpace replaces the final word's SpaceSize, geoms is
// walked from index start, and breaks is cleared, re-populated and returned.
// The second return value is the total badness of the returned breaking.
//
// When ties occur, the first breaking found wins; candidate lines are
// explored shortest-first, so among equally bad breakings the one breaking
// earliest is kept.
//
// BreakParagraph returns ErrImpossible when no feasible breaking exists:
// some word alone overflows every line it could be placed on, or the total
// badness is unrepresentable. An overflowing badness sum is treated as
// infeasible rather than wrapped.
func (kp *KnuthPlass) BreakParagraph(words []Word, trailingSpace Dimen, geoms []Geometry, start int, breaks []int) ([]int, Badness, error) {
	breaks = breaks[:0]
	if len(words) == 0 {
		return breaks, 0, nil
	}
	assert(len(geoms) > 0, "linebreak: no geometries")
	assert(start >= 0 && start < len(geoms), "linebreak: geometry start index out of range")
	if len(words) == 1 {
		total := TotalBadness(words, trailingSpace, geoms, start, nil)
		if total == InfiniteBadness {
			return breaks, InfiniteBadness, ErrImpossible
		}
		return breaks, total, nil
	}
	kp.words = words
	kp.trailing = trailingSpace
	kp.geoms = geoms
	kp.entries = kp.entries[:0]
	clear(kp.index)

	total := kp.solve(start, 0, InfiniteBadness)
	kp.words = nil // do not retain caller slices across calls
	kp.geoms = nil
	if total == InfiniteBadness {
		tracer().Debugf("optimal breaking found no feasible solution for %d words", len(words))
		return breaks, InfiniteBadness, ErrImpossible
	}
	g, w := start, 0
	for {
		e := kp.entries[kp.index[memoKey{geom: g, word: w}]]
		if e.bestBreak < 0 {
			break
		}
		breaks = append(breaks, e.bestBreak)
		g = geoms[g].Next
		w = e.bestBreak
	}
	tracer().Debugf("optimal breaking produced %d break points, badness %d", len(breaks), total)
	return breaks, total, nil
}

// solve returns the minimal total badness for breaking the word suffix at w
// under the geometry walk at g, or InfiniteBadness when no breaking with
// badness strictly below limit exists. Definite results are memoized and
// exact regardless of the limit they were found under: every branch pruned
// along the way was provably no better than the result kept.
//
// Word indices strictly increase with every committed break, so recursion
// depth is bounded by the number of words and states never revisit
// themselves within one descent.
func (kp *KnuthPlass) solve(g, w int, limit Badness) Badness {
	key := memoKey{geom: g, word: w}
	if ei, ok := kp.index[key]; ok {
		e := &kp.entries[ei]
		if v, ok := e.result.Unwrap(); ok {
			if v < limit {
				return v
			}
			return InfiniteBadness
		}
		if limit <= e.pruned {
			return InfiniteBadness
		}
	} else {
		kp.index[key] = int32(len(kp.entries))
		kp.entries = append(kp.entries, memoEntry{bestBreak: -1})
	}

	lineSize := kp.geoms[g].LineSize
	bound := limit
	best := InfiniteBadness
	bestBreak := -1
	cursor := Dimen(0)
	for j := w; j < len(kp.words); j++ {
		cursor = satAdd(cursor, wordSpan(kp.words, j, kp.trailing))
		if j == len(kp.words)-1 {
			// all remaining words on this line, no further break
			if lb := lineBadness(lineSize, cursor); lb < bound {
				best, bestBreak = lb, -1
			}
			break
		}
		if cursor > lineSize {
			// the line overflowed; growing it further cannot help
			break
		}
		lb := lineBadness(lineSize, cursor)
		if lb >= bound {
			continue // this break cannot beat the bound, skip the descent
		}
		sub := kp.solve(kp.geoms[g].Next, j+1, bound-lb)
		total := satAddBadness(lb, sub)
		if total < bound {
			best, bestBreak, bound = total, j+1, total
			if total == 0 {
				break // a perfect fit cannot be improved on
			}
		}
	}

	e := &kp.entries[kp.index[key]] // re-fetch, the arena may have grown
	if best != InfiniteBadness {
		e.result = Some(best)
		e.bestBreak = bestBreak
	} else if limit > e.pruned {
		e.pruned = limit
	}
	return best
}
