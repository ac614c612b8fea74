package recommend

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration, capacity int) (*ResultCache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewResultCache(ttl, capacity, clk.Now), clk
}

func TestResultCache_HitWithinTTL(t *testing.T) {
	cache, clk := newTestCache(10*time.Minute, 8)
	payload := []Recommendation{{PostingID: 1, Title: "Python Intern"}}

	cache.Put("fp", payload)
	clk.Advance(9 * time.Minute)

	got, ok := cache.Get("fp")
	if !ok || len(got) != 1 || got[0].PostingID != 1 {
		t.Fatalf("expected cache hit within ttl, got ok=%v %v", ok, got)
	}
}

func TestResultCache_ExpiredEntryIsMiss(t *testing.T) {
	cache, clk := newTestCache(10*time.Minute, 8)
	cache.Put("fp", []Recommendation{{PostingID: 1}})

	clk.Advance(10*time.Minute + time.Second)
	if _, ok := cache.Get("fp"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestResultCache_PutSweepsExpired(t *testing.T) {
	cache, clk := newTestCache(10*time.Minute, 8)
	cache.Put("old", []Recommendation{{PostingID: 1}})

	clk.Advance(11 * time.Minute)
	cache.Put("new", []Recommendation{{PostingID: 2}})

	if cache.Len() != 1 {
		t.Fatalf("expected expired entry swept on write, len=%d", cache.Len())
	}
}

func TestResultCache_EvictsOldestAtCapacity(t *testing.T) {
	cache, clk := newTestCache(time.Hour, 2)

	cache.Put("a", []Recommendation{{PostingID: 1}})
	clk.Advance(time.Minute)
	cache.Put("b", []Recommendation{{PostingID: 2}})
	clk.Advance(time.Minute)
	cache.Put("c", []Recommendation{{PostingID: 3}})

	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Fatalf("expected newer entry kept")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Fatalf("expected newest entry kept")
	}
}

func TestResultCache_GetReturnsDetachedCopy(t *testing.T) {
	cache, _ := newTestCache(time.Hour, 8)
	cache.Put("fp", []Recommendation{{PostingID: 1, Title: "Python Intern"}})

	got, ok := cache.Get("fp")
	if !ok {
		t.Fatalf("expected hit")
	}
	got[0].Title = "mutated"

	again, _ := cache.Get("fp")
	if again[0].Title != "Python Intern" {
		t.Fatalf("caller mutation leaked into the cached payload: %q", again[0].Title)
	}
}

func TestResultCache_Reset(t *testing.T) {
	cache, _ := newTestCache(time.Hour, 8)
	cache.Put("fp", []Recommendation{{PostingID: 1}})

	cache.Reset()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after reset")
	}
}

func TestFingerprint_SkillOrderInsensitive(t *testing.T) {
	a := Fingerprint(Profile{Skills: []string{"Python", "SQL"}, Sector: "Technology"})
	b := Fingerprint(Profile{Skills: []string{"sql", " python "}, Sector: "technology"})
	if a != b {
		t.Fatalf("skill order and casing must not change the fingerprint")
	}
}

func TestFingerprint_ModeChangesKey(t *testing.T) {
	a := Fingerprint(Profile{Skills: []string{"Python"}, UseML: true})
	b := Fingerprint(Profile{Skills: []string{"Python"}, UseML: false})
	if a == b {
		t.Fatalf("scoring mode must be part of the fingerprint")
	}
}

func TestFingerprint_DistinctProfilesDiffer(t *testing.T) {
	a := Fingerprint(Profile{Skills: []string{"Python"}, Location: "Delhi"})
	b := Fingerprint(Profile{Skills: []string{"Python"}, Location: "Mumbai"})
	if a == b {
		t.Fatalf("different locations must produce different fingerprints")
	}
}
