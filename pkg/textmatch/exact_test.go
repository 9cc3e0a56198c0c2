package textmatch

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

func group(raw string) phraseGroup {
	runes := normalizeRunes(raw)
	return phraseGroup{runes: runes, keys: []int{1}, table: buildSkipTable(runes, DefaultMaxRune)}
}

// naiveScan tries every word start in t and follows p with blank runs in t
// counting as one blank.
func naiveScan(t, p []rune) []ExactMatch {
	var found []ExactMatch
	n := len(t)
	for s := 0; s < n; s++ {
		if t[s] == blank || (s > 0 && t[s-1] != blank) {
			continue
		}
		k, j := s, 0
		for j < len(p) && k < n {
			if t[k] == blank && k > s && t[k-1] == blank {
				k++
				continue
			}
			if t[k] != p[j] {
				break
			}
			j++
			k++
		}
		if j == len(p) && (k == n || t[k] == blank) {
			found = append(found, ExactMatch{Start: s, End: k - 1, Keys: []int{1}})
		}
	}
	return found
}

func TestScanExact(t *testing.T) {
	testCases := []struct {
		pattern string
		text    string
		want    []ExactMatch
	}{
		{"see", "i see", []ExactMatch{{Start: 2, End: 4, Keys: []int{1}}}},
		{"noon", "at noon", []ExactMatch{{Start: 3, End: 6, Keys: []int{1}}}},
		{"noon", "noon noon", []ExactMatch{{Start: 0, End: 3, Keys: []int{1}}, {Start: 5, End: 8, Keys: []int{1}}}},
		{"a b", "a   b", []ExactMatch{{Start: 0, End: 4, Keys: []int{1}}}},
		{"see", "seesee", nil},
		{"anpanman", "an anpanman", []ExactMatch{{Start: 3, End: 10, Keys: []int{1}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern+"/"+tc.text, func(t *testing.T) {
			got, err := scanExact([]rune(tc.text), group(tc.pattern))
			if err != nil {
				t.Fatalf("scanExact: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("scanExact(%q, %q) = %v, want %v", tc.text, tc.pattern, got, tc.want)
			}
		})
	}
}

func TestScanExactAgainstNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randomText := func(alphabet []rune, maxLen int) []rune {
		out := make([]rune, rng.IntN(maxLen+1))
		for i := range out {
			out[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return out
	}

	for _, alphabet := range []string{"ab ", "abc  "} {
		runes := []rune(alphabet)
		for i := 0; i < 20000; i++ {
			g := group(string(randomText(runes, 8)))
			if len(g.runes) == 0 {
				continue
			}
			text := randomText(runes, 24)

			got, err := scanExact(text, g)
			if err != nil {
				t.Fatalf("scanExact: %v", err)
			}
			want := naiveScan(text, g.runes)
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Fatalf("phrase %q in %q: got %v, want %v", string(g.runes), string(text), got, want)
			}
		}
	}
}
