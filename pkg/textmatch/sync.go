package textmatch

import "sync"

// SyncMatcher guards a Matcher with a read/write lock: queries share the
// lock, mutations take it exclusively.
type SyncMatcher struct {
	mu sync.RWMutex
	m  *Matcher
}

// NewSync wraps a new Matcher built with opts.
func NewSync(opts ...Option) *SyncMatcher {
	return &SyncMatcher{m: New(opts...)}
}

func (s *SyncMatcher) AddEntry(key int, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.AddEntry(key, text)
}

func (s *SyncMatcher) AddEntries(entries map[int]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.AddEntries(entries)
}

func (s *SyncMatcher) RemoveEntry(key int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.RemoveEntry(key)
}

func (s *SyncMatcher) RemoveEntries(keys []int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.RemoveEntries(keys)
}

// Update runs fn with exclusive access, for changes that must be applied
// as one step.
func (s *SyncMatcher) Update(fn func(m *Matcher)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

func (s *SyncMatcher) MatchText(text string) ([]ExactMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.MatchText(text)
}

func (s *SyncMatcher) PartialMatch(text string) []PartialMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.PartialMatch(text)
}

func (s *SyncMatcher) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

func (s *SyncMatcher) Entry(key int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Entry(key)
}

func (s *SyncMatcher) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Entries()
}

func (s *SyncMatcher) Lookup(text string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Lookup(text)
}

func (s *SyncMatcher) EntriesWithPrefix(prefix string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.EntriesWithPrefix(prefix)
}

func (s *SyncMatcher) Digest() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Digest()
}

func (s *SyncMatcher) MaxRune() int {
	return s.m.MaxRune()
}

func (s *SyncMatcher) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Generation()
}
