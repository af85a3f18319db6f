package linebreak

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// lineCursors replays a breaking and returns the accumulated width of every
// line, using the same span accounting as the breakers.
func lineCursors(words []Word, trailing Dimen, geoms []Geometry, start int, breaks []int) (cursors []Dimen, sizes []Dimen, counts []int) {
	g := start
	cursor := Dimen(0)
	count := 0
	b := 0
	for i := range words {
		if b < len(breaks) && breaks[b] == i {
			cursors = append(cursors, cursor)
			sizes = append(sizes, geoms[g].LineSize)
			counts = append(counts, count)
			g = geoms[g].Next
			cursor, count = 0, 0
			b++
		}
		cursor = satAdd(cursor, wordSpan(words, i, trailing))
		count++
	}
	cursors = append(cursors, cursor)
	sizes = append(sizes, geoms[g].LineSize)
	counts = append(counts, count)
	return
}

func TestFirstFitTrivial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeline.linebreak")
	defer teardown()
	geoms := []Geometry{{LineSize: 10, Next: 0}}
	if breaks := FirstFit(nil, 0, geoms, 0, nil); len(breaks) != 0 {
		t.Fatalf("breaking an empty word run produced breaks %v", breaks)
	}
	breaks := FirstFit([]Word{{Size: 5, SpaceSize: 1}}, 0, geoms, 0, nil)
	if len(breaks) != 0 {
		t.Fatalf("breaking a single word produced breaks %v", breaks)
	}
}

func TestFirstFitConcrete(t *testing.T) {
	words := []Word{
		{Size: 4, SpaceSize: 1},
		{Size: 3, SpaceSize: 1},
		{Size: 5, SpaceSize: 1},
		{Size: 2, SpaceSize: 0},
	}
	geoms := []Geometry{{LineSize: 10, Next: 0}}
	breaks := FirstFit(words, 0, geoms, 0, nil)
	if want := []int{2}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("first-fit breaks = %v, want %v", breaks, want)
	}
}

func TestFirstFitOversizedWordGetsOwnLine(t *testing.T) {
	words := []Word{
		{Size: 3, SpaceSize: 1},
		{Size: 50, SpaceSize: 1}, // wider than any line, still must be placed
		{Size: 3, SpaceSize: 0},
	}
	geoms := []Geometry{{LineSize: 10, Next: 0}}
	breaks := FirstFit(words, 0, geoms, 0, nil)
	if want := []int{1, 2}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("first-fit breaks = %v, want %v", breaks, want)
	}
	cursors, sizes, counts := lineCursors(words, 0, geoms, 0, breaks)
	for i := range cursors {
		if cursors[i] > sizes[i] && counts[i] != 1 {
			t.Fatalf("line %d overflows (%d > %d) with %d words on it", i, cursors[i], sizes[i], counts[i])
		}
	}
}

func TestFirstFitFitsConstraint(t *testing.T) {
	cases := []struct {
		name     string
		words    []Word
		trailing Dimen
		geoms    []Geometry
	}{
		{
			name: "uniform",
			words: []Word{
				{2, 1}, {4, 1}, {1, 1}, {3, 1}, {3, 1}, {2, 1}, {5, 0},
			},
			geoms: []Geometry{{LineSize: 9, Next: 0}},
		},
		{
			name: "hanging indent",
			words: []Word{
				{3, 1}, {3, 1}, {3, 1}, {3, 1}, {3, 1}, {3, 1}, {3, 0},
			},
			geoms: []Geometry{{LineSize: 6, Next: 1}, {LineSize: 12, Next: 1}},
		},
		{
			name:     "trailing space counts on the last line",
			words:    []Word{{4, 1}, {4, 1}, {4, 0}},
			trailing: 3,
			geoms:    []Geometry{{LineSize: 9, Next: 0}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			breaks := FirstFit(c.words, c.trailing, c.geoms, 0, nil)
			cursors, sizes, counts := lineCursors(c.words, c.trailing, c.geoms, 0, breaks)
			for i := range cursors {
				if cursors[i] > sizes[i] && counts[i] != 1 {
					t.Fatalf("line %d overflows (%d > %d) with %d words on it, breaks %v",
						i, cursors[i], sizes[i], counts[i], breaks)
				}
			}
		})
	}
}

func TestFirstFitSaturatesInsteadOfWrapping(t *testing.T) {
	words := []Word{
		{Size: MaxDimen - 1, SpaceSize: 4}, // size+space wraps if added naively
		{Size: 2, SpaceSize: 0},
	}
	geoms := []Geometry{{LineSize: 10, Next: 0}}
	breaks := FirstFit(words, 0, geoms, 0, nil)
	if want := []int{1}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("first-fit breaks = %v, want %v (oversized first word must not wrap into fitting)", breaks, want)
	}
}

func TestFirstFitGeometryWalk(t *testing.T) {
	// Narrow first line, wide body lines repeating.
	words := []Word{
		{4, 1}, {4, 1}, {4, 1}, {4, 1}, {4, 0},
	}
	geoms := []Geometry{{LineSize: 5, Next: 1}, {LineSize: 20, Next: 1}}
	breaks := FirstFit(words, 0, geoms, 0, nil)
	if want := []int{1}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("first-fit breaks = %v, want %v", breaks, want)
	}
}

func TestFirstFitReusesBreaksSlice(t *testing.T) {
	words := []Word{{4, 1}, {4, 1}, {4, 0}}
	geoms := []Geometry{{LineSize: 5, Next: 0}}
	scratch := make([]int, 0, 8)
	breaks := FirstFit(words, 0, geoms, 0, scratch)
	if want := []int{1, 2}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("first-fit breaks = %v, want %v", breaks, want)
	}
	if cap(breaks) != cap(scratch) {
		t.Fatalf("first-fit re-allocated the breaks slice (cap %d -> %d)", cap(scratch), cap(breaks))
	}
	breaks = FirstFit(words[:1], 0, geoms, 0, breaks)
	if len(breaks) != 0 {
		t.Fatalf("re-populated breaks = %v, want empty", breaks)
	}
}

func TestTotalBadness(t *testing.T) {
	words := []Word{
		{Size: 4, SpaceSize: 1},
		{Size: 3, SpaceSize: 1},
		{Size: 5, SpaceSize: 1},
		{Size: 2, SpaceSize: 0},
	}
	geoms := []Geometry{{LineSize: 10, Next: 1}, {LineSize: 10, Next: 0}}
	// lines "4 3" (cursor 9, slack 1) and "5 2" (cursor 8, slack 2)
	if got := TotalBadness(words, 0, geoms, 0, []int{2}); got != 1+4 {
		t.Fatalf("total badness = %d, want 5", got)
	}
	// an overflowing line makes the total infinite
	if got := TotalBadness(words, 0, geoms, 0, nil); got != InfiniteBadness {
		t.Fatalf("total badness of unbroken paragraph = %d, want infinite", got)
	}
	if got := TotalBadness(nil, 0, geoms, 0, nil); got != 0 {
		t.Fatalf("total badness of empty paragraph = %d, want 0", got)
	}
}
