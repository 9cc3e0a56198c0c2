package server

import (
	"testing"

	"github.com/bastiangx/phrasematch/pkg/config"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotCacheGeneration(t *testing.T) {
	hc := NewHotCache(4)
	hc.Put("k", 1, Response{Count: 3})

	resp, ok := hc.Get("k", 1)
	require.True(t, ok)
	assert.Equal(t, 3, resp.Count)

	_, ok = hc.Get("k", 2)
	assert.False(t, ok, "stale generation is not served")
	_, ok = hc.Get("k", 1)
	assert.False(t, ok, "stale entry was dropped")

	stats := hc.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 2, stats["cacheMisses"])
}

func TestHotCacheEvictsLeastRecentlyUsed(t *testing.T) {
	hc := NewHotCache(2)
	hc.Put("a", 0, Response{Count: 1})
	hc.Put("b", 0, Response{Count: 2})
	_, ok := hc.Get("a", 0)
	require.True(t, ok)

	hc.Put("c", 0, Response{Count: 3})

	_, ok = hc.Get("b", 0)
	assert.False(t, ok, "b was least recently used")
	_, ok = hc.Get("a", 0)
	assert.True(t, ok)
	_, ok = hc.Get("c", 0)
	assert.True(t, ok)
	assert.Equal(t, 2, hc.Stats()["cachedQueries"])
}

func TestServerCacheFollowsMutations(t *testing.T) {
	m := textmatch.NewSync()
	m.AddEntry(1, "summer")
	cfg := config.DefaultConfig().Server
	cfg.CacheSize = 8
	s := NewServer(m, cfg)

	first := s.Handle(Request{Action: ActionMatch, Text: "summer fun"})
	require.Equal(t, 1, first.Count)
	again := s.Handle(Request{Action: ActionMatch, Text: "summer fun"})
	assert.Equal(t, first.Matches, again.Matches)
	assert.Equal(t, 1, s.cache.Stats()["cacheHits"])

	// a change made behind the server's back still invalidates
	m.AddEntry(2, "summer fun")
	after := s.Handle(Request{Action: ActionMatch, Text: "summer fun"})
	assert.Equal(t, []textmatch.ExactMatch{{Start: 0, End: 9, Keys: []int{2}}}, after.Matches)

	stats := s.Handle(Request{Action: ActionStats})
	assert.Equal(t, map[string]int{
		"cachedQueries": 1,
		"maxQueries":    8,
		"cacheHits":     1,
		"cacheMisses":   2,
	}, stats.Cache)
}

func TestServerWithoutCache(t *testing.T) {
	cfg := config.DefaultConfig().Server
	cfg.CacheSize = 0
	s := NewServer(textmatch.NewSync(), cfg)

	s.Handle(Request{Action: ActionMatch, Text: "summer"})
	stats := s.Handle(Request{Action: ActionStats})
	assert.Nil(t, s.cache)
	assert.Nil(t, stats.Cache)
}
