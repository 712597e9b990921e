package argv

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns the allowed value closest to v, or "" if none is close
// enough to be a plausible typo.
func suggest(v string, allowed []string) string {
	best, bestDist := "", -1
	for _, a := range allowed {
		d := levenshtein.ComputeDistance(strings.ToLower(v), strings.ToLower(a))
		if bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(v) {
		return ""
	}
	return best
}

// maxSuggestDistance allows two edits, more for long values, but never half
// the value: "tcsh" is not a typo of "bash".
func maxSuggestDistance(v string) int {
	n := max(2, len(v)/3)
	if half := (len(v) - 1) / 2; n > half {
		n = half
	}
	return n
}
