package textmatch

import (
	"fmt"
	"sync"
	"testing"
)

func TestSyncMatcherConcurrentUse(t *testing.T) {
	s := NewSync()
	s.AddEntries(sampleEntries)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := 1000 + w*100 + i
				s.AddEntry(key, fmt.Sprintf("word%d", key))
				s.RemoveEntry(key)
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := s.MatchText("summer fun is very good"); err != nil {
					t.Errorf("MatchText: %v", err)
					return
				}
				s.PartialMatch("summer f")
			}
		}()
	}
	wg.Wait()

	if s.Len() != len(sampleEntries) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(sampleEntries))
	}
}

func TestSyncMatcherUpdate(t *testing.T) {
	s := NewSync(WithMaxRune(256))
	s.Update(func(m *Matcher) {
		m.AddEntry(1, "summer")
		m.AddEntry(2, "winter")
		m.RemoveEntry(1)
	})
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.MaxRune() != 256 {
		t.Fatalf("MaxRune = %d, want 256", s.MaxRune())
	}
	if text, ok := s.Entry(2); !ok || text != "winter" {
		t.Fatalf("Entry(2) = %q, %v", text, ok)
	}
}

func BenchmarkMatchText(b *testing.B) {
	m := New()
	m.AddEntries(sampleEntries)
	for i := 0; i < 200; i++ {
		m.AddEntry(200+i, fmt.Sprintf("phrase number %d", i))
	}
	text := "Summer fun is very very     good and the summer fun goes on with phrase number 42"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.MatchText(text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPartialMatch(b *testing.B) {
	m := New()
	m.AddEntries(sampleEntries)
	for i := 0; i < 200; i++ {
		m.AddEntry(200+i, fmt.Sprintf("phrase number %d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.PartialMatch("and then phrase num")
	}
}
