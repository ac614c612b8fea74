package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Clock supplies the cache's notion of now; injected so TTL behavior is
// testable.
type Clock func() time.Time

type fingerprintInput struct {
	Education   string   `json:"education"`
	Skills      []string `json:"skills"`
	Sector      string   `json:"sector"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	UseML       bool     `json:"use_ml"`
}

// Fingerprint derives the canonical cache key for a profile and scoring
// mode. Skills are lowercased and sorted so their request order never
// changes the key.
func Fingerprint(p Profile) string {
	in := fingerprintInput{
		Education:   normalizeFingerprintValue(p.Education),
		Skills:      p.normalizedSkills(),
		Sector:      normalizeFingerprintValue(p.Sector),
		Location:    normalizeFingerprintValue(p.Location),
		Description: normalizeFingerprintValue(p.Description),
		UseML:       p.UseML,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func normalizeFingerprintValue(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

type cacheEntry struct {
	createdAt time.Time
	payload   []Recommendation
}

// ResultCache memoizes full recommendation payloads per fingerprint with
// TTL expiry and a capacity bound. Reads share an RWMutex read lock;
// writes and evictions are exclusive.
type ResultCache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	ttl      time.Duration
	capacity int
	now      Clock
}

func NewResultCache(ttl time.Duration, capacity int, now Clock) *ResultCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if capacity <= 0 {
		capacity = 256
	}
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		entries:  make(map[string]cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      now,
	}
}

// Get returns the cached payload for the fingerprint if it is present
// and not expired. Expired entries are reported as misses; they are
// swept on the next write. The payload is copied so a caller mutating
// the result cannot corrupt later replays.
func (c *ResultCache) Get(fingerprint string) ([]Recommendation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		return nil, false
	}
	out := make([]Recommendation, len(e.payload))
	copy(out, e.payload)
	return out, true
}

// Put stores the payload under the fingerprint, sweeping expired entries
// and evicting the oldest entry by creation time while over capacity.
func (c *ResultCache) Put(fingerprint string, payload []Recommendation) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if now.Sub(e.createdAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	c.entries[fingerprint] = cacheEntry{createdAt: now, payload: payload}

	for len(c.entries) > c.capacity {
		oldestKey := ""
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.createdAt.Before(oldest) {
				oldestKey = k
				oldest = e.createdAt
			}
		}
		delete(c.entries, oldestKey)
	}
}

func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry; used by the explicit lifecycle on retrain.
func (c *ResultCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
