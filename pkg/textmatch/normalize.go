package textmatch

import "unicode"

const blank = ' '

// Normalize returns raw the way it is stored: blank runs collapsed to one
// blank, no leading or trailing blank, lowercased.
func Normalize(raw string) string {
	return string(normalizeRunes(raw))
}

func normalizeRunes(raw string) []rune {
	out := make([]rune, 0, len(raw))
	prevBlank := true
	for _, r := range raw {
		isBlank := r == blank
		if !isBlank || !prevBlank {
			out = append(out, r)
		}
		prevBlank = isBlank
	}
	if n := len(out); n > 0 && out[n-1] == blank {
		out = out[:n-1]
	}
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// lowerRunes lowercases rune by rune so offsets in the result are offsets in s.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
