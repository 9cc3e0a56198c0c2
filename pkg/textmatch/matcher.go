package textmatch

import (
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultMaxRune bounds the alphabet of the bad-character tables.
const DefaultMaxRune = 128

// Entry is a stored phrase in normalized form.
type Entry struct {
	Key  int    `json:"key" msgpack:"k" yaml:"key" toml:"key"`
	Text string `json:"text" msgpack:"t" yaml:"text" toml:"text"`
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMaxRune sets the size of the supported alphabet: runes in [0, n).
// Values below 1 are ignored.
func WithMaxRune(n int) Option {
	return func(m *Matcher) {
		if n >= 1 {
			m.maxRune = n
		}
	}
}

// Matcher keeps the stored phrases and answers exact and partial queries
// against them. The zero value is not usable, call New.
type Matcher struct {
	maxRune int
	store   *patternStore
	gen     uint64
}

// New creates an empty Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{maxRune: DefaultMaxRune}
	for _, opt := range opts {
		opt(m)
	}
	m.store = newPatternStore(m.maxRune)
	return m
}

// MaxRune returns the exclusive upper bound of the supported alphabet.
func (m *Matcher) MaxRune() int {
	return m.maxRune
}

// AddEntry stores text under key, replacing what key held before.
// It returns false and changes nothing if text is empty once normalized.
func (m *Matcher) AddEntry(key int, text string) bool {
	if !m.store.add(key, text) {
		return false
	}
	m.gen++
	return true
}

// AddEntries adds every pair of entries and returns how many were stored.
func (m *Matcher) AddEntries(entries map[int]string) int {
	added := 0
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if m.store.add(key, entries[key]) {
			added++
		}
	}
	if added > 0 {
		m.gen++
	}
	return added
}

// RemoveEntry drops key. Removing a key that is not stored is a no-op and
// returns false.
func (m *Matcher) RemoveEntry(key int) bool {
	if !m.store.remove(key) {
		return false
	}
	m.gen++
	return true
}

// RemoveEntries drops every key and returns how many were stored.
func (m *Matcher) RemoveEntries(keys []int) int {
	removed := 0
	for _, key := range keys {
		if m.store.remove(key) {
			removed++
		}
	}
	if removed > 0 {
		m.gen++
	}
	return removed
}

// MatchText returns the whole-word occurrences of the stored phrases in
// text, case-insensitively, with overlaps resolved.
func (m *Matcher) MatchText(text string) ([]ExactMatch, error) {
	t := lowerRunes(text)
	var raw []ExactMatch
	for _, g := range m.store.groups() {
		found, err := scanExact(t, g)
		if err != nil {
			return nil, err
		}
		raw = append(raw, found...)
	}
	return resolveOverlaps(raw), nil
}

// PartialMatch returns the stored phrases that could complete the end of
// text, ordered by how many of their characters are already typed.
// text is lowercased first, so "SUMMER" completes to "summer fun" the same
// way MatchText finds it case-insensitively.
func (m *Matcher) PartialMatch(text string) []PartialMatch {
	t, numTrailingBlanks := trimTrailingBlanks(lowerRunes(text))
	if len(t) == 0 {
		return nil
	}
	var raw []PartialMatch
	for _, g := range m.store.groups() {
		if pm, ok := scanPartial(t, g.runes, numTrailingBlanks); ok {
			raw = append(raw, pm)
		}
	}
	return resolvePartial(raw, numTrailingBlanks)
}

// Generation changes whenever the stored entries change. Results computed
// at the same generation are interchangeable.
func (m *Matcher) Generation() uint64 {
	return m.gen
}

// Len returns the number of stored keys.
func (m *Matcher) Len() int {
	return len(m.store.keys)
}

// Entry returns the normalized text stored under key.
func (m *Matcher) Entry(key int) (string, bool) {
	e, ok := m.store.entries[key]
	if !ok {
		return "", false
	}
	return e.text, true
}

// Entries returns every stored entry by ascending key.
func (m *Matcher) Entries() []Entry {
	entries := make([]Entry, 0, len(m.store.keys))
	for _, key := range m.store.keys {
		entries = append(entries, Entry{Key: key, Text: m.store.entries[key].text})
	}
	return entries
}

// Lookup returns the keys whose stored text equals text once normalized.
func (m *Matcher) Lookup(text string) []int {
	return m.store.lookup(Normalize(text))
}

// EntriesWithPrefix returns the entries whose stored text starts with the
// normalized prefix, by ascending key. An empty prefix lists everything.
func (m *Matcher) EntriesWithPrefix(prefix string) []Entry {
	keys := m.store.withPrefix(Normalize(prefix))
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Text: m.store.entries[key].text})
	}
	return entries
}

// Digest fingerprints the stored entries. Two matchers holding the same
// keys and texts have the same digest.
func (m *Matcher) Digest() uint64 {
	d := xxhash.New()
	var buf []byte
	for _, key := range m.store.keys {
		buf = strconv.AppendInt(buf[:0], int64(key), 10)
		buf = append(buf, 0)
		buf = append(buf, m.store.entries[key].text...)
		buf = append(buf, 0)
		d.Write(buf)
	}
	return d.Sum64()
}
