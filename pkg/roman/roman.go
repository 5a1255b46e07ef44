// Package roman converts roman numerals to integers.
package roman

import (
	"fmt"
	"regexp"
)

// numeralExpr accepts canonical roman numerals up to 4999.
var numeralExpr = regexp.MustCompile(`^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

var values = map[byte]int{
	'M': 1000,
	'D': 500,
	'C': 100,
	'L': 50,
	'X': 10,
	'V': 5,
	'I': 1,
}

// Parse converts an uppercase roman numeral to its integer value.
// Non-canonical forms (IIII, VX, lowercase) are rejected.
func Parse(s string) (int, error) {
	if s == "" || !numeralExpr.MatchString(s) {
		return 0, fmt.Errorf("invalid roman numeral %q", s)
	}

	total := 0
	for i := 0; i < len(s); i++ {
		v := values[s[i]]
		if i+1 < len(s) && v < values[s[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	return total, nil
}
