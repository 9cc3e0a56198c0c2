package textmatch

import (
	"sort"
	"unicode/utf8"
)

// PartialMatch is a stored phrase whose beginning is spelled out by the end
// of a text fragment.
type PartialMatch struct {
	Entry string `json:"entry" msgpack:"w"`
	// MatchedChars counts phrase runes already satisfied by the fragment.
	MatchedChars int `json:"matched" msgpack:"m"`
	// CompletingChars counts fragment runes the phrase would replace,
	// trailing blanks included.
	CompletingChars int `json:"completing" msgpack:"c"`
}

// trimTrailingBlanks cuts the blank run at the end of t.
func trimTrailingBlanks(t []rune) ([]rune, int) {
	n := 0
	for len(t) > 0 && t[len(t)-1] == blank {
		t = t[:len(t)-1]
		n++
	}
	return t, n
}

// scanPartial looks for the rightmost start in t from which the rest of t is
// a prefix of p, with blank runs in t counting as one blank.
func scanPartial(t, p []rune, numTrailingBlanks int) (PartialMatch, bool) {
	size, l := len(t), len(p)
	numBlanks := 0
	for i := size - 1; i >= 0 && i >= size-l-numBlanks; i-- {
		if t[i] != p[0] {
			if t[i] == blank && i+1 < size && t[i+1] == blank {
				numBlanks++
			}
			continue
		}
		j, ok := extendPartial(t[i:], p)
		if !ok {
			continue
		}
		if numTrailingBlanks > 0 && j < l {
			// the fragment ends a word, so the phrase must continue with one
			if p[j] != blank {
				return PartialMatch{}, false
			}
			j++
		}
		return PartialMatch{
			Entry:           string(p),
			MatchedChars:    j,
			CompletingChars: size - i + numTrailingBlanks,
		}, true
	}
	return PartialMatch{}, false
}

// extendPartial walks rest and p together and reports how much of p was
// consumed. ok is true only if all of rest was consumed.
func extendPartial(rest, p []rune) (j int, ok bool) {
	prev := rune(0)
	k := 0
	for k < len(rest) && j < len(p) {
		c := rest[k]
		if c == blank && prev == blank {
			k++
			continue
		}
		if c != p[j] {
			return 0, false
		}
		prev = c
		k++
		j++
	}
	return j, k == len(rest)
}

// resolvePartial orders candidates by MatchedChars, keeps the first
// candidate per phrase and, when the fragment ended with a blank, drops fully
// typed phrases unless some candidate is further along. It returns nil when
// nothing is left.
func resolvePartial(raw []PartialMatch, numTrailingBlanks int) []PartialMatch {
	if len(raw) == 0 {
		return nil
	}
	sort.SliceStable(raw, func(a, b int) bool {
		return raw[a].MatchedChars < raw[b].MatchedChars
	})
	best := raw[len(raw)-1].MatchedChars

	seen := make(map[string]struct{}, len(raw))
	resolved := make([]PartialMatch, 0, len(raw))
	for _, pm := range raw {
		if _, dup := seen[pm.Entry]; dup {
			continue
		}
		seen[pm.Entry] = struct{}{}
		complete := pm.MatchedChars == utf8.RuneCountInString(pm.Entry)
		if numTrailingBlanks > 0 && complete && pm.MatchedChars >= best {
			continue
		}
		resolved = append(resolved, pm)
	}
	if len(resolved) == 0 {
		return nil
	}
	return resolved
}
