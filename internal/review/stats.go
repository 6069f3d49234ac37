package review

import (
	"context"
	"sort"

	"github.com/ratemycollege/ratemy/internal/college"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/tags"
)

// minRatedCategories is how many categories must carry an average before a
// college gets an overall rating (and becomes rankable).
const minRatedCategories = 3

// minReviews is the review count below which a college is flagged as
// thinly rated.
const minReviews = 3

// Stats is the per-college aggregate the recommender and CLI consume.
type Stats struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	ReviewCount     int                     `json:"review_count"`
	AvgRating       *float64                `json:"avg_rating"` // nil = not enough data
	CategoryRatings recommend.RatingProfile `json:"category_ratings"`
	Trending        []string                `json:"trending"`   // display form, '#'-prefixed
	CleanTags       []string                `json:"clean_tags"` // embeddable form
	TagVec          []float32               `json:"-"`
	HasFewRatings   bool                    `json:"has_few_ratings"`
}

// BuildStats assembles Stats for every college in the roster: category
// averages, the overall average (withheld until enough categories are
// rated), trending tags from review text, and the pooled tag vector. The
// result is sorted by overall average descending, unrated colleges last.
//
// The tag cache may be nil, in which case tag vectors are skipped (callers
// that only need numbers avoid embedding calls entirely).
func BuildStats(ctx context.Context, store *Store, roster []college.College, cache *recommend.TagVectorCache) ([]Stats, error) {
	out := make([]Stats, 0, len(roster))

	for _, c := range roster {
		reviews, err := store.ListByCollege(c.ID)
		if err != nil {
			return nil, err
		}

		st := Stats{
			ID:            c.ID,
			Name:          c.Name,
			ReviewCount:   len(reviews),
			HasFewRatings: true,
		}

		if len(reviews) > 0 {
			st.CategoryRatings = AverageRatings(reviews)

			if avg, ok := OverallAverage(reviews); ok && len(st.CategoryRatings) >= minRatedCategories {
				a := avg
				st.AvgRating = &a
			}
			st.HasFewRatings = len(reviews) < minReviews || len(st.CategoryRatings) < minRatedCategories

			texts := make([]string, 0, len(reviews))
			for _, r := range reviews {
				texts = append(texts, r.Text)
			}
			st.Trending = tags.Trending(texts, 3)
			st.CleanTags = tags.StripHash(st.Trending)

			if cache != nil && len(st.CleanTags) > 0 {
				vec, err := cache.BuildTagVector(ctx, st.CleanTags)
				if err != nil {
					return nil, err
				}
				st.TagVec = vec
			}
		}

		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return derefOrZero(out[i].AvgRating) > derefOrZero(out[j].AvgRating)
	})
	return out, nil
}

// Rankable filters stats down to colleges with a computable overall rating
// and converts them to ranker inputs.
func Rankable(stats []Stats) []recommend.CollegeInput {
	var out []recommend.CollegeInput
	for _, st := range stats {
		if st.AvgRating == nil {
			continue
		}
		out = append(out, recommend.CollegeInput{
			ID:      st.ID,
			Name:    st.Name,
			Ratings: st.CategoryRatings,
			TagVec:  st.TagVec,
			Tags:    st.CleanTags,
		})
	}
	return out
}

func derefOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
