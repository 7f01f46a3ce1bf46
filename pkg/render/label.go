package render

import (
	"strconv"
	"strings"
)

// ExpandLabel applies an enumeration pattern to the counter value n:
// every 'a' in the pattern becomes the n'th lowercase letter and every '1'
// becomes the decimal counter value. Both substitutions may coexist in one
// pattern; all other runes pass through unchanged.
func ExpandLabel(pattern string, n int) string {
	if n < 1 {
		n = 1
	}
	letter := string(rune('a' + (n-1)%26))
	decimal := strconv.Itoa(n)
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case 'a':
			b.WriteString(letter)
		case '1':
			b.WriteString(decimal)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
