package textmatch

import (
	"slices"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// entry is one stored phrase together with the tables built for it.
// Both live and die together.
type entry struct {
	text  string
	runes []rune
	table *skipTable
}

// phraseGroup is a distinct stored text and every key that maps to it.
type phraseGroup struct {
	runes []rune
	keys  []int
	table *skipTable
}

// patternStore owns the phrases. The index maps a normalized text to the
// ascending keys stored under it.
type patternStore struct {
	maxRune int
	entries map[int]*entry
	keys    []int // ascending
	index   *patricia.Trie
}

func newPatternStore(maxRune int) *patternStore {
	return &patternStore{
		maxRune: maxRune,
		entries: make(map[int]*entry),
		index:   patricia.NewTrie(),
	}
}

func (s *patternStore) add(key int, raw string) bool {
	runes := normalizeRunes(raw)
	if len(runes) == 0 {
		log.Debugf("Ignoring entry %d: %q is empty after normalization", key, raw)
		return false
	}
	text := string(runes)
	if prev, ok := s.entries[key]; ok {
		s.unindex(prev.text, key)
	} else {
		pos := sort.SearchInts(s.keys, key)
		s.keys = slices.Insert(s.keys, pos, key)
	}
	s.entries[key] = &entry{
		text:  text,
		runes: runes,
		table: buildSkipTable(runes, s.maxRune),
	}
	s.reindex(text, key)
	return true
}

func (s *patternStore) remove(key int) bool {
	e, ok := s.entries[key]
	if !ok {
		log.Debugf("Entry %d not stored, nothing to remove", key)
		return false
	}
	delete(s.entries, key)
	if pos := sort.SearchInts(s.keys, key); pos < len(s.keys) && s.keys[pos] == key {
		s.keys = slices.Delete(s.keys, pos, pos+1)
	}
	s.unindex(e.text, key)
	return true
}

func (s *patternStore) reindex(text string, key int) {
	p := patricia.Prefix(text)
	var keys []int
	if item := s.index.Get(p); item != nil {
		keys = item.([]int)
	}
	pos := sort.SearchInts(keys, key)
	if pos < len(keys) && keys[pos] == key {
		return
	}
	s.index.Set(p, slices.Insert(slices.Clone(keys), pos, key))
}

func (s *patternStore) unindex(text string, key int) {
	p := patricia.Prefix(text)
	item := s.index.Get(p)
	if item == nil {
		return
	}
	keys := item.([]int)
	pos := sort.SearchInts(keys, key)
	if pos == len(keys) || keys[pos] != key {
		return
	}
	if len(keys) == 1 {
		s.index.Delete(p)
		return
	}
	s.index.Set(p, slices.Delete(slices.Clone(keys), pos, pos+1))
}

// lookup returns the keys stored under an already normalized text.
func (s *patternStore) lookup(text string) []int {
	if text == "" {
		return nil
	}
	item := s.index.Get(patricia.Prefix(text))
	if item == nil {
		return nil
	}
	return slices.Clone(item.([]int))
}

// withPrefix returns the keys of every text starting with prefix, ascending.
func (s *patternStore) withPrefix(prefix string) []int {
	var keys []int
	collect := func(_ patricia.Prefix, item patricia.Item) error {
		keys = append(keys, item.([]int)...)
		return nil
	}
	var err error
	if prefix == "" {
		err = s.index.Visit(collect)
	} else {
		err = s.index.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	if err != nil {
		log.Errorf("Error visiting entry index: %v", err)
		return nil
	}
	sort.Ints(keys)
	return keys
}

// groups returns every distinct text once, in order of its smallest key.
func (s *patternStore) groups() []phraseGroup {
	groups := make([]phraseGroup, 0, len(s.keys))
	seen := make(map[string]struct{}, len(s.keys))
	for _, key := range s.keys {
		e := s.entries[key]
		if _, dup := seen[e.text]; dup {
			continue
		}
		seen[e.text] = struct{}{}
		groups = append(groups, phraseGroup{
			runes: e.runes,
			keys:  s.lookup(e.text),
			table: e.table,
		})
	}
	return groups
}
