package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"lexis/internal/domain"
	"lexis/internal/port"
)

// ReportCache is an LRU of analysis reports with a per-entry TTL. Reports are
// keyed by a digest of the text and the target word.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	report    domain.AnalysisReport
	timestamp time.Time
}

func NewReportCache(maxSize int, ttl time.Duration) *ReportCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(text, target string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(target))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// Get returns the cached report and marks it most recently used. Lookup,
// expiry and reordering happen under one write lock so the order list never
// holds a key without an entry.
func (c *ReportCache) Get(text, target string) (domain.AnalysisReport, bool) {
	key := cacheKey(text, target)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return domain.AnalysisReport{}, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return domain.AnalysisReport{}, false
	}

	c.moveToEnd(key)
	return entry.report, true
}

func (c *ReportCache) Put(text, target string, report domain.AnalysisReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text, target)
	entry := &cacheEntry{
		report:    report,
		timestamp: c.now(),
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

func (c *ReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ReportCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *ReportCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *ReportCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedAnalyzer serves repeated AnalyzeCombined calls from a ReportCache.
type CachedAnalyzer struct {
	analyzer port.Analyzer
	cache    *ReportCache
}

var _ port.Analyzer = (*CachedAnalyzer)(nil)

func NewCachedAnalyzer(analyzer port.Analyzer, cache *ReportCache) *CachedAnalyzer {
	return &CachedAnalyzer{
		analyzer: analyzer,
		cache:    cache,
	}
}

func (a *CachedAnalyzer) AnalyzeCombined(ctx context.Context, text, target string) (domain.AnalysisReport, error) {
	if report, hit := a.cache.Get(text, target); hit {
		return report, nil
	}

	report, err := a.analyzer.AnalyzeCombined(ctx, text, target)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	a.cache.Put(text, target, report)

	return report, nil
}
