package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/ratemycollege/ratemy/internal/adapter"
)

// Options holds the tunables of the engine. Zero values fall back to the
// defaults below.
type Options struct {
	// TopN is the maximum number of categories kept after pruning.
	TopN int
	// MinThreshold prunes categories whose combined affinity score falls
	// strictly below it.
	MinThreshold float64
	// Alpha bounds the tag-similarity bonus: the bonus is in [0, Alpha].
	Alpha float64
	// KeywordBoost is added once per category on an explicit keyword match.
	KeywordBoost float64
	// WhyTags is how many query-similar tags to attach to a ranked college.
	WhyTags int
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		TopN:         3,
		MinThreshold: 0.12,
		Alpha:        0.6,
		KeywordBoost: 0.15,
		WhyTags:      3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	if o.MinThreshold <= 0 {
		o.MinThreshold = d.MinThreshold
	}
	if o.Alpha <= 0 {
		o.Alpha = d.Alpha
	}
	if o.KeywordBoost <= 0 {
		o.KeywordBoost = d.KeywordBoost
	}
	if o.WhyTags <= 0 {
		o.WhyTags = d.WhyTags
	}
	return o
}

// Engine scores colleges against free-text queries. It owns the anchor
// embeddings (computed once at construction) and delegates tag-embedding
// memoization to an injectable TagVectorCache.
type Engine struct {
	embedder adapter.Embedder
	tags     *TagVectorCache
	opts     Options

	// anchors holds one embedding per anchor phrase, keyed by category.
	// Read-only after construction.
	anchors map[Category][][]float32
}

// NewEngine constructs an Engine, embedding every anchor phrase in one batch
// call per category. The cache may be shared across engines.
func NewEngine(ctx context.Context, embedder adapter.Embedder, cache *TagVectorCache, opts Options) (*Engine, error) {
	if cache == nil {
		cache = NewTagVectorCache(embedder)
	}

	anchors := make(map[Category][][]float32, len(Categories))
	for _, cat := range Categories {
		phrases := anchorPhrases[cat]
		vecs, err := embedder.Embed(ctx, phrases)
		if err != nil {
			return nil, fmt.Errorf("recommend: embed anchors for %s: %w", cat, err)
		}
		if len(vecs) != len(phrases) {
			return nil, fmt.Errorf("recommend: embed anchors for %s: got %d vectors for %d phrases", cat, len(vecs), len(phrases))
		}
		anchors[cat] = vecs
	}

	return &Engine{
		embedder: embedder,
		tags:     cache,
		opts:     opts.withDefaults(),
		anchors:  anchors,
	}, nil
}

// TagCache returns the engine's tag vector cache.
func (e *Engine) TagCache() *TagVectorCache {
	return e.tags
}

// Options returns the effective engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// round2 and round4 round to the display precisions used throughout the
// engine: 2 decimals for scores and points, 4 for weights.
func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
