// Package override remembers recent candidate selections and suggests
// them again in the same context, with an exponential decay so stale
// choices fade out instead of sticking forever.
package override

import (
	"container/list"
	"math"
	"strings"
	"time"

	"bopomofo/internal/lattice"
)

const (
	// Capacity bounds the cache; the least recently touched context
	// is evicted first.
	Capacity = 500

	// HalfLife is the age at which an observation's weight halves.
	HalfLife = 5400 * time.Second

	// SuggestionThreshold is the decayed weight a stored choice must
	// exceed to be suggested.
	SuggestionThreshold = 1.0 / 20.0

	// MinObservableScore floors what gets recorded: candidates at or
	// below it are too improbable to be worth resurfacing.
	MinObservableScore = -8.0
)

// observation is one remembered selection.
type observation struct {
	contextKey string
	value      string
	count      int
	timestamp  time.Time
}

// Cache is a fixed-capacity recency cache keyed by walk context.
// It is not safe for concurrent use; the key handler owns it.
type Cache struct {
	entries *list.List               // *observation, most recent first
	index   map[string]*list.Element // contextKey -> element
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: list.New(),
		index:   make(map[string]*list.Element),
	}
}

// contextKey derives the lookup key for a position: the reading key of
// the node covering the cursor plus the values of its walk neighbors.
// The reading key, not the value, identifies the center so the context
// survives the selection it is about to record.
func contextKey(path []lattice.NodeAnchor, cursor int) string {
	current := -1
	for i, a := range path {
		if a.Location < cursor && cursor <= a.Location+a.SpanningLength {
			current = i
			break
		}
	}
	if current < 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('(')
	if current > 0 {
		b.WriteString(path[current-1].Node.CurrentValue())
	}
	b.WriteByte(',')
	b.WriteString(path[current].Node.Key())
	b.WriteByte(',')
	if current+1 < len(path) {
		b.WriteString(path[current+1].Node.CurrentValue())
	}
	b.WriteByte(')')
	return b.String()
}

// Observe records that the user chose value for the context around
// cursor. Re-choosing the same value strengthens the observation;
// choosing a different one restarts it.
func (c *Cache) Observe(path []lattice.NodeAnchor, cursor int, value string, now time.Time) {
	key := contextKey(path, cursor)
	if key == "" {
		return
	}

	if el, ok := c.index[key]; ok {
		obs := el.Value.(*observation)
		if obs.value == value {
			obs.count++
		} else {
			obs.value = value
			obs.count = 1
		}
		obs.timestamp = now
		c.entries.MoveToFront(el)
		return
	}

	if c.entries.Len() >= Capacity {
		oldest := c.entries.Back()
		if oldest != nil {
			c.entries.Remove(oldest)
			delete(c.index, oldest.Value.(*observation).contextKey)
		}
	}
	c.index[key] = c.entries.PushFront(&observation{
		contextKey: key,
		value:      value,
		count:      1,
		timestamp:  now,
	})
}

// Suggest returns the remembered value for the context around cursor,
// or "" if nothing is stored or the stored choice has decayed below
// the suggestion threshold.
func (c *Cache) Suggest(path []lattice.NodeAnchor, cursor int, now time.Time) string {
	key := contextKey(path, cursor)
	if key == "" {
		return ""
	}
	el, ok := c.index[key]
	if !ok {
		return ""
	}
	obs := el.Value.(*observation)

	weight := float64(obs.count) * decayedWeight(now.Sub(obs.timestamp))
	if weight <= SuggestionThreshold {
		return ""
	}
	c.entries.MoveToFront(el)
	return obs.value
}

// decayedWeight is the per-observation decay factor at a given age.
// Negative ages clamp to zero so a clock step backwards never boosts a
// stale entry.
func decayedWeight(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Exp(-math.Ln2 * age.Seconds() / HalfLife.Seconds())
}

// Len returns the number of stored contexts.
func (c *Cache) Len() int { return c.entries.Len() }
