package review

import (
	"math"

	"github.com/ratemycollege/ratemy/internal/recommend"
)

// AverageRatings computes the per-category mean rating across reviews,
// rounded to 1 decimal. A category's mean only considers reviews that rated
// it with a non-zero value; categories with no qualifying value are absent
// from the result ("unrated").
func AverageRatings(reviews []Review) recommend.RatingProfile {
	profile := make(recommend.RatingProfile)
	for _, cat := range recommend.Categories {
		var sum float64
		var n int
		for _, r := range reviews {
			v := r.Rating(cat)
			if v == nil || *v == 0 {
				continue
			}
			sum += float64(*v)
			n++
		}
		if n > 0 {
			profile[cat] = math.Round(sum/float64(n)*10) / 10
		}
	}
	return profile
}

// OverallAverage computes the mean of per-review means, rounded to 2
// decimals. Each review's mean runs over the categories it actually rated
// (zero counts once rated). Returns (0, false) when no review rated
// anything.
func OverallAverage(reviews []Review) (float64, bool) {
	var sum float64
	var n int
	for _, r := range reviews {
		var rSum float64
		var rN int
		for _, cat := range recommend.Categories {
			if v := r.Rating(cat); v != nil {
				rSum += float64(*v)
				rN++
			}
		}
		if rN > 0 {
			sum += rSum / float64(rN)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(sum/float64(n)*100) / 100, true
}
