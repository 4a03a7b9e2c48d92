package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity scores how close two declaration names are, from 0 (no
// character in common) to 1 (the same name once case and separators are
// ignored, as in DropItem and drop_item).
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)

	longest := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshtein.ComputeDistance(na, nb))/float64(longest)
}
