package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ratemycollege/ratemy/internal/vector"
)

// CategoryWeight pairs a category with its normalized preference weight.
// A non-empty weight list always sums to 1.0.
type CategoryWeight struct {
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
}

// InferWeights maps free query text to a weighted subset of the fixed
// categories. The pipeline: mean anchor-cosine per category, an explicit
// keyword bump, manual bumps, pruning below MinThreshold, top-N selection
// (ties broken by category enumeration order), and softmax normalization.
//
// An empty query with no manual weights returns nil immediately. All
// categories pruning away also returns nil; the caller must then apply a
// neutral ranking policy.
func (e *Engine) InferWeights(ctx context.Context, queryText string, manual map[Category]float64) ([]CategoryWeight, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" && len(manual) == 0 {
		return nil, nil
	}

	scores := make(map[Category]float64, len(Categories))

	if queryText != "" {
		vecs, err := e.embedder.Embed(ctx, []string{queryText})
		if err != nil {
			return nil, fmt.Errorf("recommend: embed query: %w", err)
		}
		if len(vecs) == 0 {
			return nil, fmt.Errorf("recommend: embed query: no vector returned")
		}
		input := vecs[0]

		// Base score: mean cosine similarity against every anchor vector.
		for _, cat := range Categories {
			anchors := e.anchors[cat]
			var sum float64
			for _, a := range anchors {
				sum += vector.Cosine(input, a)
			}
			scores[cat] = sum / float64(len(anchors))
		}

		// Explicit keyword bump: once per category, regardless of how many
		// keywords matched.
		lower := strings.ToLower(queryText)
		for _, cat := range Categories {
			for _, kw := range explicitKeywords[cat] {
				if strings.Contains(lower, kw) {
					scores[cat] += e.opts.KeywordBoost
					break
				}
			}
		}
	}

	// Manual bumps may introduce categories with zero base score.
	for cat, bump := range manual {
		if !ValidCategory(cat) {
			continue
		}
		scores[cat] += bump
	}

	// Prune weak signals, keeping enumeration order for deterministic ties.
	type scored struct {
		cat   Category
		score float64
	}
	var survivors []scored
	for _, cat := range Categories {
		s, ok := scores[cat]
		if !ok || s < e.opts.MinThreshold {
			continue
		}
		survivors = append(survivors, scored{cat, s})
	}
	if len(survivors) == 0 {
		return nil, nil
	}

	// Top-N by score descending; stable sort preserves enumeration order
	// for equal scores.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].score > survivors[j].score
	})
	if len(survivors) > e.opts.TopN {
		survivors = survivors[:e.opts.TopN]
	}

	// Softmax over the selected raw scores; subtract the max before
	// exponentiating for numeric stability.
	maxScore := survivors[0].score
	var expSum float64
	exps := make([]float64, len(survivors))
	for i, s := range survivors {
		exps[i] = math.Exp(s.score - maxScore)
		expSum += exps[i]
	}

	weights := make([]CategoryWeight, len(survivors))
	for i, s := range survivors {
		weights[i] = CategoryWeight{
			Category: s.cat,
			Weight:   round4(exps[i] / expSum),
		}
	}
	return weights, nil
}
