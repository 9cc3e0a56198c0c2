package server

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "phrasematch_cache_lookups_total",
		Help: "Query cache lookups by result",
	},
	[]string{"result"},
)

type cachedResult struct {
	resp       Response
	generation uint64
	lastUsed   int64
}

// HotCache keeps the responses of recent queries. An entry is only served
// while the matcher is still at the generation it was computed at.
type HotCache struct {
	entries    map[string]*cachedResult
	clock      int64
	hits       int64
	misses     int64
	maxEntries int
	mu         sync.Mutex
}

// NewHotCache creates a cache of at most maxEntries responses.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string]*cachedResult, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(action, text string) string {
	return action + "\x00" + text
}

// Get returns the response stored for key at generation.
func (hc *HotCache) Get(key string, generation uint64) (Response, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	entry, ok := hc.entries[key]
	if ok && entry.generation != generation {
		delete(hc.entries, key)
		ok = false
	}
	if !ok {
		hc.misses++
		cacheLookups.WithLabelValues("miss").Inc()
		return Response{}, false
	}
	hc.hits++
	cacheLookups.WithLabelValues("hit").Inc()
	entry.lastUsed = hc.tick()
	return entry.resp, true
}

// Put stores resp for key, evicting the least recently used entry when full.
func (hc *HotCache) Put(key string, generation uint64, resp Response) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.entries[key]; !exists && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[key] = &cachedResult{resp: resp, generation: generation, lastUsed: hc.tick()}
}

// Stats reports the cache size and hit counts.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"cachedQueries": len(hc.entries),
		"maxQueries":    hc.maxEntries,
		"cacheHits":     int(hc.hits),
		"cacheMisses":   int(hc.misses),
	}
}

func (hc *HotCache) tick() int64 {
	hc.clock++
	return hc.clock
}

func (hc *HotCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64
	for key, entry := range hc.entries {
		if entry.lastUsed < oldestTime {
			oldestTime = entry.lastUsed
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(hc.entries, oldestKey)
		log.Debugf("Evicted query %q from hot cache", oldestKey)
	}
}
