package measure

import (
	"reflect"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/npillmayer/typeline/linebreak"
)

func TestWords(t *testing.T) {
	words, frags := Words("  the quick brown  fox ")
	if want := []string{"the", "quick", "brown", "fox"}; !reflect.DeepEqual(frags, want) {
		t.Fatalf("fragments = %v, want %v", frags, want)
	}
	want := []linebreak.Word{
		{Size: 3, SpaceSize: 1},
		{Size: 5, SpaceSize: 1},
		{Size: 5, SpaceSize: 2},
		{Size: 3, SpaceSize: 1},
	}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
}

func TestWordsWideCharacters(t *testing.T) {
	words, frags := Words("日本語 text")
	if len(words) != 2 || frags[0] != "日本語" {
		t.Fatalf("words = %v, frags = %v", words, frags)
	}
	if words[0].Size != 6 {
		t.Fatalf("CJK word measures %d cells, want 6", words[0].Size)
	}
	if words[1].Size != 4 || words[1].SpaceSize != 0 {
		t.Fatalf("final word = %v, want {4 0}", words[1])
	}
}

func TestWordsEmpty(t *testing.T) {
	words, frags := Words("   ")
	if len(words) != 0 || len(frags) != 0 {
		t.Fatalf("white-space only text produced words %v", words)
	}
}

func TestWordsForFace(t *testing.T) {
	face := basicfont.Face7x13
	words, frags := WordsForFace(face, "fixed width")
	if want := []string{"fixed", "width"}; !reflect.DeepEqual(frags, want) {
		t.Fatalf("fragments = %v, want %v", frags, want)
	}
	// Face7x13 is a fixed-width face: every glyph advances 7 pixels,
	// i.e. 7<<6 in 26.6 fixed point.
	adv := Dimen(int(font.MeasureString(face, "x")))
	if words[0].Size != 5*adv || words[1].Size != 5*adv {
		t.Fatalf("words = %v, want multiples of the fixed advance %d", words, adv)
	}
	if words[0].SpaceSize != adv {
		t.Fatalf("space advance = %d, want %d", words[0].SpaceSize, adv)
	}
}

func TestWordsFeedTheBreakers(t *testing.T) {
	words, frags := Words("aa bb cc dd")
	geoms := []linebreak.Geometry{{LineSize: 6, Next: 0}}
	breaks := linebreak.FirstFit(words, 0, geoms, 0, nil)
	if want := []int{2}; !reflect.DeepEqual(breaks, want) {
		t.Fatalf("breaks = %v, want %v (lines %q / %q)", breaks, want, frags[:2], frags[2:])
	}
}
