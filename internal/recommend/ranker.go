package recommend

import (
	"context"
	"sort"
)

// RatingProfile maps a category to its average rating in [0, 10]. A missing
// key means the category is unrated for that college.
type RatingProfile map[Category]float64

// Contribution explains one category's share of a college's score.
type Contribution struct {
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Value    float64  `json:"value"`
	Points   float64  `json:"points"`
}

// CollegeInput is one college as presented to the ranker: identity, rating
// aggregates, a pooled tag vector (nil when the college has no usable tags),
// and the raw tag strings for the "why" explanation.
type CollegeInput struct {
	ID      string
	Name    string
	Ratings RatingProfile
	TagVec  []float32
	Tags    []string
}

// ScoredCollege is the result of scoring one college against a query.
// All display fields are rounded: scores and points to 2 decimals, weights
// to 4. Nothing here is persisted; every field is recomputed per request.
type ScoredCollege struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	FinalScore    float64        `json:"final_score"`
	CategoryScore float64        `json:"category_score"`
	TagBonus      float64        `json:"tag_bonus"`
	Contributions []Contribution `json:"contributions"`
	WhyTags       []string       `json:"why_tags,omitempty"`
}

// ScoreCollege combines the college's rating profile with the inferred
// weights, adds the tag-similarity bonus, and clamps the result to 10.
// An unrated category in a weighted position counts as 0: the college is
// penalized, not skipped. Empty weights produce a zero category score.
func (e *Engine) ScoreCollege(ctx context.Context, in CollegeInput, weights []CategoryWeight, queryText string) (ScoredCollege, error) {
	var (
		contributions []Contribution
		numerator     float64
		denominator   float64
	)

	for _, cw := range weights {
		value := in.Ratings[cw.Category] // missing key -> 0, deliberate
		points := cw.Weight * value
		contributions = append(contributions, Contribution{
			Category: cw.Category,
			Weight:   round4(cw.Weight),
			Value:    round2(value),
			Points:   round2(points),
		})
		numerator += points
		denominator += cw.Weight
	}

	var categoryScore float64
	if denominator > 0 {
		categoryScore = numerator / denominator
	}

	tagBonus, err := e.TagBonus(ctx, queryText, in.TagVec)
	if err != nil {
		return ScoredCollege{}, err
	}

	final := categoryScore + tagBonus
	if final > 10.0 {
		// Category ratings are bounded by 10; the bonus is additive on top.
		final = 10.0
	}

	return ScoredCollege{
		ID:            in.ID,
		Name:          in.Name,
		FinalScore:    round2(final),
		CategoryScore: round2(categoryScore),
		TagBonus:      round2(tagBonus),
		Contributions: contributions,
	}, nil
}

// RankColleges scores every college and returns them sorted by final score
// descending. Equal scores tie-break on college ID ascending so the order is
// deterministic regardless of input order. Colleges with tags get up to
// Options.WhyTags query-similar tags attached.
//
// Callers are responsible for filtering out colleges with no computable
// aggregate rating before ranking.
func (e *Engine) RankColleges(ctx context.Context, colleges []CollegeInput, queryText string, weights []CategoryWeight) ([]ScoredCollege, error) {
	ranked := make([]ScoredCollege, 0, len(colleges))
	for _, c := range colleges {
		sc, err := e.ScoreCollege(ctx, c, weights, queryText)
		if err != nil {
			return nil, err
		}
		if len(c.Tags) > 0 {
			why, err := e.TopSimilarTags(ctx, queryText, c.Tags, e.opts.WhyTags)
			if err != nil {
				return nil, err
			}
			sc.WhyTags = why
		}
		ranked = append(ranked, sc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, nil
}
