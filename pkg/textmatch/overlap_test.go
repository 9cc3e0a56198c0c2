package textmatch

import (
	"reflect"
	"testing"
)

func TestResolveOverlaps(t *testing.T) {
	testCases := []struct {
		name string
		raw  []ExactMatch
		want []ExactMatch
	}{
		{
			name: "empty",
			raw:  nil,
			want: nil,
		},
		{
			name: "single",
			raw:  []ExactMatch{{Start: 2, End: 5, Keys: []int{1}}},
			want: []ExactMatch{{Start: 2, End: 5, Keys: []int{1}}},
		},
		{
			name: "identical spans merge keys",
			raw: []ExactMatch{
				{Start: 0, End: 9, Keys: []int{104}},
				{Start: 0, End: 9, Keys: []int{102, 103}},
			},
			want: []ExactMatch{{Start: 0, End: 9, Keys: []int{102, 103, 104}}},
		},
		{
			name: "shorter span inside is dropped",
			raw: []ExactMatch{
				{Start: 0, End: 9, Keys: []int{2}},
				{Start: 0, End: 5, Keys: []int{1}},
			},
			want: []ExactMatch{{Start: 0, End: 9, Keys: []int{2}}},
		},
		{
			name: "span swallowed by a later longer one",
			raw: []ExactMatch{
				{Start: 0, End: 5, Keys: []int{1}},
				{Start: 0, End: 9, Keys: []int{2}},
			},
			want: []ExactMatch{{Start: 0, End: 9, Keys: []int{2}}},
		},
		{
			name: "crossing span keeps the earlier one",
			raw: []ExactMatch{
				{Start: 7, End: 17, Keys: []int{105}},
				{Start: 0, End: 9, Keys: []int{102}},
			},
			want: []ExactMatch{{Start: 0, End: 9, Keys: []int{102}}},
		},
		{
			name: "touching end and start overlap",
			raw: []ExactMatch{
				{Start: 0, End: 4, Keys: []int{1}},
				{Start: 4, End: 8, Keys: []int{2}},
			},
			want: []ExactMatch{{Start: 0, End: 4, Keys: []int{1}}},
		},
		{
			name: "disjoint spans are kept in order",
			raw: []ExactMatch{
				{Start: 19, End: 31, Keys: []int{106}},
				{Start: 0, End: 9, Keys: []int{102}},
			},
			want: []ExactMatch{
				{Start: 0, End: 9, Keys: []int{102}},
				{Start: 19, End: 31, Keys: []int{106}},
			},
		},
		{
			name: "sample text",
			raw: []ExactMatch{
				{Start: 0, End: 5, Keys: []int{101}},
				{Start: 0, End: 9, Keys: []int{102, 103}},
				{Start: 0, End: 9, Keys: []int{104}},
				{Start: 7, End: 17, Keys: []int{105}},
				{Start: 19, End: 31, Keys: []int{106}},
			},
			want: []ExactMatch{
				{Start: 0, End: 9, Keys: []int{102, 103, 104}},
				{Start: 19, End: 31, Keys: []int{106}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveOverlaps(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("resolveOverlaps = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResolveOverlapsDisjoint(t *testing.T) {
	// every span [s, s+w] for a handful of starts and widths
	var raw []ExactMatch
	key := 0
	for s := 0; s < 12; s += 2 {
		for w := 0; w < 5; w++ {
			raw = append(raw, ExactMatch{Start: s, End: s + w, Keys: []int{key}})
			key++
		}
	}
	got := resolveOverlaps(raw)
	if len(got) == 0 {
		t.Fatalf("nothing resolved")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start <= got[i-1].End {
			t.Fatalf("%+v overlaps %+v", got[i-1], got[i])
		}
	}
}

func TestMergeKeys(t *testing.T) {
	a := []int{3, 1}
	got := mergeKeys(a, []int{2, 3})
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeKeys = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(a, []int{3, 1}) {
		t.Fatalf("mergeKeys modified its input: %v", a)
	}
}
