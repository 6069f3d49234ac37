package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/ratemycollege/ratemy/internal/adapter"
	"github.com/ratemycollege/ratemy/internal/vector"
)

var (
	tagDisallowed = regexp.MustCompile(`[^a-z0-9\-_/ ]`)
	tagWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeTag lowercases a raw tag, strips a leading '#', removes characters
// outside [a-z0-9-_/ ], collapses internal whitespace, and trims. Returns ""
// for input that normalizes to nothing; callers must skip empty results.
func NormalizeTag(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.TrimPrefix(t, "#")
	t = tagDisallowed.ReplaceAllString(t, "")
	t = tagWhitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// TagVectorCache memoizes per-tag embeddings keyed by the normalized tag
// string. It grows monotonically for the process lifetime, with no eviction
// and no TTL; the distinct-tag vocabulary is far smaller than request
// volume. Safe for concurrent use; a duplicate embed on
// a miss race is idempotent (same key, same content).
type TagVectorCache struct {
	mu       sync.Mutex
	embedder adapter.Embedder
	vectors  map[string][]float32
}

// NewTagVectorCache creates an empty cache around the given embedder.
func NewTagVectorCache(embedder adapter.Embedder) *TagVectorCache {
	return &TagVectorCache{
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}
}

// Len returns the number of cached tag embeddings.
func (c *TagVectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vectors)
}

// EmbedTag returns the embedding for a raw tag, normalizing first. A tag that
// normalizes to the empty string yields (nil, nil): a defined no-op, not a
// failure. On a cache miss the embedder is called once and the result stored
// under the normalized key. Embedder failures propagate.
func (c *TagVectorCache) EmbedTag(ctx context.Context, raw string) ([]float32, error) {
	key := NormalizeTag(raw)
	if key == "" {
		return nil, nil
	}

	c.mu.Lock()
	if v, ok := c.vectors[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	// Embed outside the lock; a concurrent miss for the same key does one
	// redundant embed; the last write wins with identical content.
	vecs, err := c.embedder.Embed(ctx, []string{key})
	if err != nil {
		return nil, fmt.Errorf("tagcache: embed %q: %w", key, err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("tagcache: embed %q: no vector returned", key)
	}

	c.mu.Lock()
	c.vectors[key] = vecs[0]
	c.mu.Unlock()
	return vecs[0], nil
}

// BuildTagVector maps each raw tag through EmbedTag, skips tags that
// normalize to nothing, and returns the element-wise mean of the remaining
// vectors. Returns nil when no tag is usable. The result is independent of
// input order.
func (c *TagVectorCache) BuildTagVector(ctx context.Context, rawTags []string) ([]float32, error) {
	var vecs [][]float32
	for _, t := range rawTags {
		v, err := c.EmbedTag(ctx, t)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		vecs = append(vecs, v)
	}
	return vector.Mean(vecs), nil
}
