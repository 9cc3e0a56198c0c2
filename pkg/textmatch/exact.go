package textmatch

// ExactMatch is a span of the scanned text matched by one or more keys.
// Start and End are inclusive rune offsets.
type ExactMatch struct {
	Start int   `json:"start" msgpack:"s"`
	End   int   `json:"end" msgpack:"e"`
	Keys  []int `json:"keys" msgpack:"k"`
}

// scanExact returns every boundary-valid occurrence of g in t.
// t must already be lowercased.
func scanExact(t []rune, g phraseGroup) ([]ExactMatch, error) {
	var found []ExactMatch
	p := g.runes
	n, size := len(t), len(p)

	for i := 0; i <= n-size; {
		start := i
		j := size - 1
		numBlanks := 0
		prev := rune(0)
		matched := false
		for {
			pos := i + j
			if pos < 0 {
				break
			}
			c := t[pos]
			if c == blank && prev == blank {
				// extra blank in the text, the phrase expects only one
				if pos == 0 {
					break
				}
				i--
				numBlanks++
				continue
			}
			if c != p[j] {
				break
			}
			if j == 0 {
				matched = true
				break
			}
			prev = c
			j--
		}

		if matched {
			end := i + numBlanks + size
			if (i == 0 || t[i-1] == blank) && (end == n || t[end] == blank) {
				found = append(found, ExactMatch{
					Start: i,
					End:   end - 1,
					Keys:  append([]int(nil), g.keys...),
				})
			}
		}

		pos := i + j
		if pos < 0 {
			i = start + 1
			continue
		}
		shift, ok := g.table.shift(j, t[pos])
		if !ok {
			return nil, &UnsupportedCharacterError{Rune: t[pos], Position: pos}
		}
		i += shift
		if i <= start {
			i = start + 1
		}
	}
	return found, nil
}
