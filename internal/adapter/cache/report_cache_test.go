package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexis/internal/domain"
)

func reportWith(total int) domain.AnalysisReport {
	return domain.AnalysisReport{Frequency: domain.FrequencyAnalysis{TotalWords: total}}
}

func TestReportCache_GetPut(t *testing.T) {
	c := NewReportCache(10, time.Minute)

	_, ok := c.Get("text", "")
	assert.False(t, ok)

	c.Put("text", "", reportWith(3))
	got, ok := c.Get("text", "")
	require.True(t, ok)
	assert.Equal(t, 3, got.Frequency.TotalWords)

	_, ok = c.Get("text", "word")
	assert.False(t, ok, "target is part of the key")
}

func TestReportCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewReportCache(2, time.Minute)

	c.Put("a", "", reportWith(1))
	c.Put("b", "", reportWith(2))
	_, _ = c.Get("a", "")
	c.Put("c", "", reportWith(3))

	assert.Equal(t, 2, c.Size())
	_, ok := c.Get("b", "")
	assert.False(t, ok)
	_, ok = c.Get("a", "")
	assert.True(t, ok)
}

func TestReportCache_TTL(t *testing.T) {
	c := NewReportCache(10, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("a", "", reportWith(1))
	now = now.Add(2 * time.Minute)

	_, ok := c.Get("a", "")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestReportCache_ConcurrentAccessStaysBounded(t *testing.T) {
	c := NewReportCache(4, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				text := fmt.Sprintf("text-%d", (g+i)%8)
				if _, ok := c.Get(text, ""); !ok {
					c.Put(text, "", reportWith(i))
				}
			}
		}(g)
	}
	wg.Wait()

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.LessOrEqual(t, len(c.entries), c.maxSize)
	assert.Len(t, c.order, len(c.entries))
	for _, key := range c.order {
		assert.Contains(t, c.entries, key)
	}
}

type countingAnalyzer struct {
	calls int
	err   error
}

func (a *countingAnalyzer) AnalyzeCombined(_ context.Context, text, _ string) (domain.AnalysisReport, error) {
	a.calls++
	if a.err != nil {
		return domain.AnalysisReport{}, a.err
	}
	return reportWith(len(text)), nil
}

func TestCachedAnalyzer(t *testing.T) {
	inner := &countingAnalyzer{}
	a := NewCachedAnalyzer(inner, NewReportCache(10, time.Minute))

	for i := 0; i < 3; i++ {
		report, err := a.AnalyzeCombined(context.Background(), "hello", "")
		require.NoError(t, err)
		assert.Equal(t, 5, report.Frequency.TotalWords)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedAnalyzer_ErrorsAreNotCached(t *testing.T) {
	inner := &countingAnalyzer{err: errors.New("boom")}
	c := NewReportCache(10, time.Minute)
	a := NewCachedAnalyzer(inner, c)

	_, err := a.AnalyzeCombined(context.Background(), "hello", "")
	require.Error(t, err)
	_, err = a.AnalyzeCombined(context.Background(), "hello", "")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Size())
}
