package transcript

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// minSimilarity is the lowest Jaro-Winkler score accepted as a name match.
const minSimilarity = 0.8

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Resolve returns the participant whose name is closest to name, ok is false
// when the transcript is empty or neither participant is similar enough.
func (t Transcript) Resolve(name string) (Speaker, bool) {
	if t.Empty() {
		return Speaker{}, false
	}
	target := normalizeName(name)
	if target == "" {
		return Speaker{}, false
	}

	var best Speaker
	bestScore := 0.0
	for _, s := range []Speaker{t.A, t.B} {
		score := matchr.JaroWinkler(normalizeName(s.Name), target, false)
		if score > bestScore {
			best = s
			bestScore = score
		}
	}
	if bestScore < minSimilarity {
		return Speaker{}, false
	}
	return best, true
}
