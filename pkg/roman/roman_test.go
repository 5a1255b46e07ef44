package roman

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"I":       1,
		"IV":      4,
		"IX":      9,
		"XIV":     14,
		"XL":      40,
		"XCIX":    99,
		"MMXXIV":  2024,
		"MCMXCIV": 1994,
	}

	for input, want := range cases {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "IIII", "VX", "iv", "ABC", "X I"} {
		if _, err := Parse(input); err == nil {
			t.Fatalf("Parse(%q) accepted an invalid numeral", input)
		}
	}
}
