package utils

import "testing"

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-98765, "-98,765"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.in); got != tc.want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatKeys(t *testing.T) {
	if got := FormatKeys([]int{102, 103, 104}); got != "{102, 103, 104}" {
		t.Errorf("FormatKeys = %q", got)
	}
	if got := FormatKeys(nil); got != "{}" {
		t.Errorf("FormatKeys(nil) = %q", got)
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, rest := SplitCommand("  ADD 100   summer fun ")
	if cmd != "add" || rest != "100   summer fun " {
		t.Errorf("SplitCommand = %q, %q", cmd, rest)
	}
	cmd, rest = SplitCommand("stats")
	if cmd != "stats" || rest != "" {
		t.Errorf("SplitCommand = %q, %q", cmd, rest)
	}
}
