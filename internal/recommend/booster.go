package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ratemycollege/ratemy/internal/vector"
)

// TagBonus computes the additive score bonus from semantic closeness between
// the query and a college's pooled tag vector. Cosine similarity in [-1, 1]
// is rescaled to [0, 1] and scaled by Alpha, so the bonus is in [0, Alpha].
// Empty query or nil tag vector yields 0.
func (e *Engine) TagBonus(ctx context.Context, queryText string, tagVec []float32) (float64, error) {
	if strings.TrimSpace(queryText) == "" || tagVec == nil {
		return 0, nil
	}

	vecs, err := e.embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return 0, fmt.Errorf("recommend: embed query for tag bonus: %w", err)
	}
	if len(vecs) == 0 {
		return 0, fmt.Errorf("recommend: embed query for tag bonus: no vector returned")
	}

	s := vector.Cosine(vecs[0], tagVec) // [-1, 1]
	s01 := (s + 1.0) / 2.0              // [0, 1]
	if s01 < 0 {
		// Rescale already maps -1 -> 0; this guards against float underflow.
		s01 = 0
	}
	return round2(e.opts.Alpha * s01), nil
}

// TopSimilarTags ranks the given raw tags by cosine similarity to the query
// and returns the top k in their original form. Tags that normalize to
// nothing are skipped. Empty query or tags yield an empty result.
func (e *Engine) TopSimilarTags(ctx context.Context, queryText string, tags []string, k int) ([]string, error) {
	if strings.TrimSpace(queryText) == "" || len(tags) == 0 {
		return nil, nil
	}

	vecs, err := e.embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("recommend: embed query for why-tags: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("recommend: embed query for why-tags: no vector returned")
	}
	query := vecs[0]

	type scoredTag struct {
		tag string
		sim float64
	}
	var scoredTags []scoredTag
	for _, t := range tags {
		emb, err := e.tags.EmbedTag(ctx, t)
		if err != nil {
			return nil, err
		}
		if emb == nil {
			continue
		}
		scoredTags = append(scoredTags, scoredTag{tag: t, sim: vector.Cosine(query, emb)})
	}

	sort.SliceStable(scoredTags, func(i, j int) bool {
		return scoredTags[i].sim > scoredTags[j].sim
	})

	if k > len(scoredTags) {
		k = len(scoredTags)
	}
	out := make([]string, 0, k)
	for _, st := range scoredTags[:k] {
		out = append(out, st.tag)
	}
	return out, nil
}
