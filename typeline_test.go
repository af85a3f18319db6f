package typeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestBreakIntoLines(t *testing.T) {
	lines := BreakIntoLines("the quick brown fox jumps over the lazy dog", 16)
	want := []string{
		"the quick brown",
		"fox jumps over",
		"the lazy dog",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for _, line := range lines {
		if len(line) > 16 {
			t.Fatalf("line %q exceeds width 16", line)
		}
	}
}

func TestBreakIntoLinesBalanced(t *testing.T) {
	lines, err := BreakIntoLinesBalanced("the quick brown fox jumps over the lazy dog", 16)
	if err != nil {
		t.Fatalf("balanced breaking failed: %v", err)
	}
	for _, line := range lines {
		if len(line) > 16 {
			t.Fatalf("line %q exceeds width 16", line)
		}
	}
	if _, err := BreakIntoLinesBalanced("incomprehensibilities", 5); err == nil {
		t.Fatalf("expected failure for an unbreakable over-wide word")
	}
}

func TestBreakIntoLinesDegenerate(t *testing.T) {
	if lines := BreakIntoLines("", 10); len(lines) != 0 {
		t.Fatalf("empty text produced lines %q", lines)
	}
	if lines := BreakIntoLines("word", 10); !reflect.DeepEqual(lines, []string{"word"}) {
		t.Fatalf("single word produced lines %q", lines)
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.txt")
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("première\r\ndeuxième\ntroisième"))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	lines, err := ReadLines(path, "latin1")
	if err != nil {
		t.Fatalf("reading lines: %v", err)
	}
	want := []string{"première", "deuxième", "troisième"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}
