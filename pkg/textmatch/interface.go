package textmatch

// IMatcher is the surface shared by Matcher and SyncMatcher.
type IMatcher interface {
	// AddEntry stores text under key; false if text normalizes to nothing
	AddEntry(key int, text string) bool

	// AddEntries stores every pair and returns the count stored
	AddEntries(entries map[int]string) int

	// RemoveEntry drops key; false if it was not stored
	RemoveEntry(key int) bool

	// RemoveEntries drops every key and returns the count removed
	RemoveEntries(keys []int) int

	// MatchText finds whole-word occurrences with overlaps resolved
	MatchText(text string) ([]ExactMatch, error)

	// PartialMatch finds phrases that could complete the end of text
	PartialMatch(text string) []PartialMatch

	Len() int
	Entry(key int) (string, bool)
	Entries() []Entry
	EntriesWithPrefix(prefix string) []Entry
	Lookup(text string) []int
	Digest() uint64
	MaxRune() int

	// Generation changes with every mutation of the stored entries
	Generation() uint64
}

var (
	_ IMatcher = (*Matcher)(nil)
	_ IMatcher = (*SyncMatcher)(nil)
)
