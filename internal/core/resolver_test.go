package core

import (
	"errors"
	"io"
	"testing"

	"bangarr/internal/clients/sonarr"
	"bangarr/internal/utils"
)

type fakeCache struct {
	entries map[string]int
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]int{}}
}

func (c *fakeCache) Get(seriesName string) (int, bool, error) {
	id, ok := c.entries[seriesName]
	return id, ok, nil
}

func (c *fakeCache) Set(seriesName string, tvdbID int) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[seriesName] = tvdbID
	return nil
}

type fakeLookup struct {
	results []sonarr.Series
	err     error
	calls   int
}

func (l *fakeLookup) LookupSeries(term string) ([]sonarr.Series, error) {
	l.calls++
	return l.results, l.err
}

func testLogger() *utils.Logger {
	return utils.NewLogger(utils.LevelError, io.Discard)
}

func TestResolveCacheHitSkipsLookup(t *testing.T) {
	cache := newFakeCache()
	cache.entries["Example"] = 42
	lookup := &fakeLookup{}
	r := NewResolver(cache, lookup, testLogger())

	id, err := r.Resolve("Example")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected cached id 42, got %d", id)
	}
	if lookup.calls != 0 {
		t.Fatalf("expected no lookup calls on cache hit, got %d", lookup.calls)
	}
}

func TestResolveMissQueriesLookupAndCaches(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{results: []sonarr.Series{{Title: "Example", TVDBId: 42}}}
	r := NewResolver(cache, lookup, testLogger())

	id, err := r.Resolve("Example")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
	if cached, ok := cache.entries["Example"]; !ok || cached != 42 {
		t.Fatalf("expected cache write of 42, got %d ok=%v", cached, ok)
	}
}

func TestResolveFirstResultWins(t *testing.T) {
	lookup := &fakeLookup{results: []sonarr.Series{
		{Title: "Example", TVDBId: 42},
		{Title: "Example (2011)", TVDBId: 99},
	}}
	r := NewResolver(newFakeCache(), lookup, testLogger())

	id, err := r.Resolve("Example")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected first result 42, got %d", id)
	}
}

func TestResolveLookupErrorReturnsSentinel(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{err: errors.New("connection refused")}
	r := NewResolver(cache, lookup, testLogger())

	id, err := r.Resolve("Example")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected sentinel 0, got %d", id)
	}
	if len(cache.entries) != 0 {
		t.Fatal("expected no cache write on lookup failure")
	}
}

func TestResolveEmptyResultsReturnsSentinel(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{results: []sonarr.Series{}}
	r := NewResolver(cache, lookup, testLogger())

	id, err := r.Resolve("Example")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected sentinel 0, got %d", id)
	}
	if len(cache.entries) != 0 {
		t.Fatal("expected no cache write on empty result set")
	}
}

func TestResolveCacheWriteFailurePropagates(t *testing.T) {
	cache := newFakeCache()
	cache.setErr = errors.New("disk full")
	lookup := &fakeLookup{results: []sonarr.Series{{TVDBId: 42}}}
	r := NewResolver(cache, lookup, testLogger())

	if _, err := r.Resolve("Example"); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
