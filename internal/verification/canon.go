// Package verification compares user-asserted identity data against a
// resolved record and produces the tri-state verdict shown to the user.
package verification

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canon normalizes a free-text identity field for comparison: whitespace runs
// collapse to single spaces, accents are decomposed and their combining marks
// stripped, and the result is uppercased. When decomposition fails the
// function degrades to collapse+uppercase; it never fails.
func Canon(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, collapsed)
	if err != nil {
		return strings.ToUpper(collapsed)
	}
	return strings.ToUpper(stripped)
}
