package textmatch

// skipTable holds the Boyer-Moore shift tables of one stored phrase.
type skipTable struct {
	maxRune    int
	badChar    map[rune]int // last index of a rune in text[:L-1]
	goodSuffix []int        // shift per mismatch position
}

func buildSkipTable(text []rune, maxRune int) *skipTable {
	table := &skipTable{
		maxRune:    maxRune,
		badChar:    make(map[rune]int, len(text)),
		goodSuffix: goodSuffixTable(text),
	}
	for i := 0; i < len(text)-1; i++ {
		if r := text[i]; r >= 0 && int(r) < maxRune {
			table.badChar[r] = i
		}
	}
	return table
}

// suffixLengths returns, for every i, the length of the longest substring
// ending at i that is also a suffix of p.
func suffixLengths(p []rune) []int {
	m := len(p)
	suff := make([]int, m)
	suff[m-1] = m
	g, f := m-1, m-1
	for i := m - 2; i >= 0; i-- {
		if i > g && suff[i+m-1-f] < i-g {
			suff[i] = suff[i+m-1-f]
			continue
		}
		if i < g {
			g = i
		}
		f = i
		for g >= 0 && p[g] == p[g+m-1-f] {
			g--
		}
		suff[i] = f - g
	}
	return suff
}

// goodSuffixTable gives the shift after a mismatch at position j, when
// p[j+1:] already matched: the distance to the rightmost other occurrence
// of that suffix, or to the longest prefix of p that is also its suffix.
func goodSuffixTable(p []rune) []int {
	m := len(p)
	if m == 0 {
		return nil
	}
	suff := suffixLengths(p)
	gs := make([]int, m)
	for i := range gs {
		gs[i] = m
	}
	j := 0
	for i := m - 1; i >= 0; i-- {
		if suff[i] != i+1 {
			continue
		}
		// p[:i+1] is a suffix of p
		for ; j < m-1-i; j++ {
			if gs[j] == m {
				gs[j] = m - 1 - i
			}
		}
	}
	for i := 0; i < m-1; i++ {
		gs[m-1-suff[i]] = m - 1 - i
	}
	return gs
}

// last returns the rightmost index of c in the phrase minus its final rune,
// -1 if absent.
func (t *skipTable) last(c rune) int {
	if i, ok := t.badChar[c]; ok {
		return i
	}
	return -1
}

// shift returns how far to move the alignment after comparing text rune c
// against position j of the phrase. ok is false when c is outside the
// supported alphabet.
func (t *skipTable) shift(j int, c rune) (n int, ok bool) {
	if c < 0 || int(c) >= t.maxRune {
		return 0, false
	}
	return max(t.goodSuffix[j], j-t.last(c)), true
}
