package review

import (
	"testing"

	"github.com/ratemycollege/ratemy/internal/recommend"
)

func intp(v int) *int { return &v }

func TestAverageRatings_ExcludesNilAndZero(t *testing.T) {
	reviews := []Review{
		{Food: intp(8), Study: intp(6)},
		{Food: intp(0), Study: intp(9)}, // zero food does not count
		{Study: nil, Social: intp(7)},   // nil study does not count
	}

	profile := AverageRatings(reviews)

	if got := profile[recommend.CategoryFood]; got != 8.0 {
		t.Errorf("food: got %f, want 8.0 (zero must be excluded)", got)
	}
	if got := profile[recommend.CategoryStudy]; got != 7.5 {
		t.Errorf("study: got %f, want 7.5", got)
	}
	if got := profile[recommend.CategorySocial]; got != 7.0 {
		t.Errorf("social: got %f, want 7.0", got)
	}
	if _, ok := profile[recommend.CategoryClubs]; ok {
		t.Errorf("clubs was never rated and must be absent")
	}
}

func TestAverageRatings_RoundsToOneDecimal(t *testing.T) {
	reviews := []Review{
		{Food: intp(7)},
		{Food: intp(8)},
		{Food: intp(8)},
	}
	// 23/3 = 7.666... -> 7.7
	if got := AverageRatings(reviews)[recommend.CategoryFood]; got != 7.7 {
		t.Errorf("food: got %f, want 7.7", got)
	}
}

func TestAverageRatings_Empty(t *testing.T) {
	if profile := AverageRatings(nil); len(profile) != 0 {
		t.Errorf("expected empty profile, got %v", profile)
	}
}

func TestOverallAverage_MeanOfReviewMeans(t *testing.T) {
	reviews := []Review{
		{Food: intp(8), Study: intp(6)}, // mean 7.0
		{Social: intp(9)},               // mean 9.0
	}
	got, ok := OverallAverage(reviews)
	if !ok {
		t.Fatalf("expected an overall average")
	}
	if got != 8.0 {
		t.Errorf("got %f, want 8.0", got)
	}
}

func TestOverallAverage_ZeroCountsOnceRated(t *testing.T) {
	// A rated zero is a real opinion and pulls the review mean down,
	// unlike in per-category averages.
	reviews := []Review{
		{Food: intp(0), Study: intp(8)}, // mean 4.0
	}
	got, ok := OverallAverage(reviews)
	if !ok {
		t.Fatalf("expected an overall average")
	}
	if got != 4.0 {
		t.Errorf("got %f, want 4.0", got)
	}
}

func TestOverallAverage_NoRatings(t *testing.T) {
	reviews := []Review{{Text: "just words"}}
	if _, ok := OverallAverage(reviews); ok {
		t.Errorf("reviews with no ratings should yield no average")
	}
}
