package linebreak

// FirstFit breaks a run of words greedily: as many words as fit are packed
// onto the current line, and the first word that does not fit starts the
// next one. No lookahead, no backtracking.
//
// trailingSpace replaces the SpaceSize of the final word. geoms is walked
// from index start, following each geometry's Next link whenever a line
// breaks. breaks is cleared and re-populated with the indices of words that
// begin a new line; the (possibly re-allocated) slice is returned.
//
// A word is always placed, even when it alone exceeds the line budget;
// words are never split. Fewer than two words produce no break points.
func FirstFit(words []Word, trailingSpace Dimen, geoms []Geometry, start int, breaks []int) []int {
	breaks = breaks[:0]
	if len(words) < 2 {
		return breaks
	}
	assert(len(geoms) > 0, "linebreak: no geometries")
	assert(start >= 0 && start < len(geoms), "linebreak: geometry start index out of range")
	g := start
	cursor := wordSpan(words, 0, trailingSpace)
	for i := 1; i < len(words); i++ {
		span := wordSpan(words, i, trailingSpace)
		if cursor <= geoms[g].LineSize && span <= geoms[g].LineSize-cursor {
			cursor = satAdd(cursor, span)
			continue
		}
		breaks = append(breaks, i)
		g = geoms[g].Next
		cursor = span
	}
	tracer().Debugf("first-fit breaking produced %d break points", len(breaks))
	return breaks
}
