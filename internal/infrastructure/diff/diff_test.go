package diff

import (
	"strings"
	"testing"
)

func TestTextsMarksChangedLines(t *testing.T) {
	t.Parallel()

	a := "first line\nsecond line\nthird line"
	b := "first line\nchanged line\nthird line"

	got := Texts(a, b)
	want := strings.Join([]string{
		"  first line",
		"- second line",
		"+ changed line",
		"  third line",
	}, "\n")

	if got != want {
		t.Fatalf("unexpected diff:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextsEqualInputs(t *testing.T) {
	t.Parallel()

	got := Texts("a\nb", "a\nb")
	if got != "  a\n  b" {
		t.Fatalf("expected all-common diff, got:\n%s", got)
	}
}

func TestTextsInsertionsAndDeletions(t *testing.T) {
	t.Parallel()

	got := Texts("a\nb\nc", "a\nc\nd")
	want := strings.Join([]string{
		"  a",
		"- b",
		"  c",
		"+ d",
	}, "\n")

	if got != want {
		t.Fatalf("unexpected diff:\n%s\nwant:\n%s", got, want)
	}
}
