package utils

import (
	"strconv"
	"strings"
)

// FormatWithCommas renders n with thousands separators.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatKeys renders keys as "{1, 2, 3}".
func FormatKeys(keys []int) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SplitCommand cuts a REPL line into its lowercased command word and the
// rest. Trailing blanks of the rest are kept.
func SplitCommand(line string) (cmd, rest string) {
	line = strings.TrimLeft(line, " \t")
	cmd, rest, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimLeft(rest, " ")
}
