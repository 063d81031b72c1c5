package suggest

import (
	"sync"

	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/tchap/go-patricia/v2/patricia"
)

const defaultCacheEntries = 4096

// QueryCache holds ranked suggestion lists for recently queried prefixes.
// Entries never go stale because the underlying trie is frozen after the
// build, so eviction is purely a size bound, least recently used first.
//
// The prefixes themselves live in a patricia trie, which keeps the cache
// cheap to probe for the highly repetitive prefix streams produced by
// per-keystroke clients.
type QueryCache struct {
	prefixes    *patricia.Trie
	rootEntry   *cacheEntry
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxEntries  int
	entries     int
	mu          sync.Mutex
}

type cacheEntry struct {
	suggestions []trie.Suggestion
}

// NewQueryCache creates a cache bounded to maxEntries prefixes.
func NewQueryCache(maxEntries int) *QueryCache {
	if maxEntries < 1 {
		maxEntries = defaultCacheEntries
	}
	return &QueryCache{
		prefixes:   patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached suggestions for prefix, if present.
func (qc *QueryCache) Get(prefix string) ([]trie.Suggestion, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	// The patricia trie does not key on the empty prefix; the root query
	// gets its own slot.
	if prefix == "" {
		if qc.rootEntry == nil {
			return nil, false
		}
		qc.hits++
		return qc.rootEntry.suggestions, true
	}

	item := qc.prefixes.Get(patricia.Prefix(prefix))
	if item == nil {
		return nil, false
	}
	qc.hits++
	qc.markAccessed(prefix)
	return item.(*cacheEntry).suggestions, true
}

// Put stores the suggestions for prefix, evicting the least recently used
// entry when the cache is full.
func (qc *QueryCache) Put(prefix string, suggestions []trie.Suggestion) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if prefix == "" {
		qc.rootEntry = &cacheEntry{suggestions: suggestions}
		return
	}
	if qc.prefixes.Get(patricia.Prefix(prefix)) != nil {
		qc.markAccessed(prefix)
		return
	}
	if qc.entries >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.prefixes.Insert(patricia.Prefix(prefix), &cacheEntry{suggestions: suggestions})
	qc.entries++
	qc.markAccessed(prefix)
}

// Stats reports cache counters.
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return map[string]int{
		"cacheEntries":    qc.entries,
		"cacheMaxEntries": qc.maxEntries,
		"cacheHits":       int(qc.hits),
	}
}

func (qc *QueryCache) markAccessed(prefix string) {
	qc.accessCount++
	qc.accessTime[prefix] = qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldestPrefix string
	var oldestTime int64 = 1<<63 - 1
	for prefix, accessed := range qc.accessTime {
		if accessed < oldestTime {
			oldestTime = accessed
			oldestPrefix = prefix
		}
	}
	if oldestPrefix == "" && oldestTime == 1<<63-1 {
		return
	}
	qc.prefixes.Delete(patricia.Prefix(oldestPrefix))
	delete(qc.accessTime, oldestPrefix)
	qc.entries--
}
