package textmatch

import (
	"reflect"
	"testing"
)

func TestSkipTableBadChar(t *testing.T) {
	table := buildSkipTable([]rune("summer"), DefaultMaxRune)

	want := map[rune]int{'s': 0, 'u': 1, 'm': 3, 'e': 4, 'r': -1, 'x': -1, ' ': -1}
	for c, idx := range want {
		if got := table.last(c); got != idx {
			t.Errorf("last(%q) = %d, want %d", c, got, idx)
		}
	}
	if len(table.badChar) != 4 {
		t.Fatalf("badChar holds %d runes, want 4", len(table.badChar))
	}
}

func TestSkipTableGoodSuffix(t *testing.T) {
	testCases := []struct {
		pattern string
		want    []int
	}{
		{"summer", []int{6, 6, 6, 6, 6, 1}},
		{"abab", []int{2, 2, 4, 1}},
		{"sum", []int{3, 3, 1}},
		{"a", []int{1}},
		{"see", []int{3, 1, 2}},
		{"noon", []int{3, 3, 3, 1}},
		{"aaaa", []int{1, 2, 3, 4}},
		{"abcab", []int{3, 3, 3, 5, 1}},
		{"gcagagag", []int{7, 7, 7, 2, 7, 4, 7, 1}},
	}
	for _, tc := range testCases {
		table := buildSkipTable([]rune(tc.pattern), DefaultMaxRune)
		if !reflect.DeepEqual(table.goodSuffix, tc.want) {
			t.Errorf("goodSuffix(%q) = %v, want %v", tc.pattern, table.goodSuffix, tc.want)
		}
	}
}

func TestSkipTableShiftsArePositive(t *testing.T) {
	patterns := []string{"summer fun", "aaaa", "abcabcab", "very good", "x y z", "fun is very"}
	for _, p := range patterns {
		runes := []rune(p)
		table := buildSkipTable(runes, DefaultMaxRune)
		if len(table.goodSuffix) != len(runes) {
			t.Fatalf("goodSuffix(%q) has %d slots, want %d", p, len(table.goodSuffix), len(runes))
		}
		for j := range runes {
			for _, c := range []rune{'a', ' ', 'z', 'y'} {
				n, ok := table.shift(j, c)
				if !ok || n < 1 {
					t.Fatalf("shift(%q, j=%d, %q) = %d, %v", p, j, c, n, ok)
				}
			}
		}
	}
}

func TestSkipTableIgnoresRunesOutsideAlphabet(t *testing.T) {
	table := buildSkipTable([]rune("café!"), DefaultMaxRune)
	if got := table.last('c'); got != 0 {
		t.Fatalf("last('c') = %d, want 0", got)
	}
	if _, stored := table.badChar['é']; stored {
		t.Fatalf("'é' is outside the alphabet and should not be recorded")
	}
	if _, ok := table.shift(0, 'é'); ok {
		t.Fatalf("shift on 'é' should report an unsupported rune")
	}
}
