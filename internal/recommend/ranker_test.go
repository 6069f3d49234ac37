package recommend

import (
	"context"
	"math"
	"testing"
)

func TestScoreCollege_UnratedCountsAsZero(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights := []CategoryWeight{
		{Category: CategoryStudy, Weight: 0.7},
		{Category: CategorySocial, Weight: 0.3},
	}
	in := CollegeInput{
		ID:      "uc",
		Name:    "University College",
		Ratings: RatingProfile{CategoryStudy: 9.0}, // social unrated
	}

	sc, err := engine.ScoreCollege(context.Background(), in, weights, "")
	if err != nil {
		t.Fatalf("ScoreCollege: %v", err)
	}

	// (0.7*9.0 + 0.3*0.0) / 1.0 = 6.3: the unrated category drags the
	// score down rather than being skipped.
	if math.Abs(sc.FinalScore-6.3) > 1e-9 {
		t.Errorf("final score: got %f, want 6.3", sc.FinalScore)
	}
	if sc.TagBonus != 0 {
		t.Errorf("no tag vector should mean no bonus, got %f", sc.TagBonus)
	}
	if len(sc.Contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(sc.Contributions))
	}
	if sc.Contributions[1].Value != 0 || sc.Contributions[1].Points != 0 {
		t.Errorf("unrated category contribution should be zero, got %+v", sc.Contributions[1])
	}
}

func TestScoreCollege_EmptyWeights(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	sc, err := engine.ScoreCollege(context.Background(), CollegeInput{
		ID:      "uc",
		Ratings: RatingProfile{CategoryStudy: 9.0},
	}, nil, "")
	if err != nil {
		t.Fatalf("ScoreCollege: %v", err)
	}
	if sc.FinalScore != 0 {
		t.Errorf("empty weights should produce a zero score, got %f", sc.FinalScore)
	}
}

func TestScoreCollege_ClampedAtTen(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights := []CategoryWeight{{Category: CategorySocial, Weight: 1.0}}
	in := CollegeInput{
		ID:      "uc",
		Ratings: RatingProfile{CategorySocial: 10.0},
		TagVec:  axis(1), // maxes out the tag bonus for a social query
	}

	sc, err := engine.ScoreCollege(context.Background(), in, weights, "parties")
	if err != nil {
		t.Fatalf("ScoreCollege: %v", err)
	}
	if sc.FinalScore != 10.0 {
		t.Errorf("score should clamp at 10: got %f", sc.FinalScore)
	}
	if sc.TagBonus != 0.6 {
		t.Errorf("bonus should still be reported pre-clamp: got %f", sc.TagBonus)
	}
}

func TestRankColleges_SortsByScoreThenID(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights := []CategoryWeight{{Category: CategoryStudy, Weight: 1.0}}
	colleges := []CollegeInput{
		{ID: "victoria", Ratings: RatingProfile{CategoryStudy: 7.0}},
		{ID: "trinity", Ratings: RatingProfile{CategoryStudy: 8.0}},
		{ID: "innis", Ratings: RatingProfile{CategoryStudy: 7.0}},
	}

	ranked, err := engine.RankColleges(context.Background(), colleges, "", weights)
	if err != nil {
		t.Fatalf("RankColleges: %v", err)
	}

	want := []string{"trinity", "innis", "victoria"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("position %d: got %q, want %q (ties must break on ID ascending)", i, ranked[i].ID, id)
		}
	}
}

func TestRankColleges_AttachesWhyTags(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights := []CategoryWeight{{Category: CategorySocial, Weight: 1.0}}
	colleges := []CollegeInput{
		{
			ID:      "uc",
			Ratings: RatingProfile{CategorySocial: 8.0},
			Tags:    []string{"nightlife", "food"},
		},
		{
			ID:      "innis",
			Ratings: RatingProfile{CategorySocial: 6.0},
		},
	}

	ranked, err := engine.RankColleges(context.Background(), colleges, "parties", weights)
	if err != nil {
		t.Fatalf("RankColleges: %v", err)
	}

	if len(ranked[0].WhyTags) == 0 {
		t.Errorf("college with tags should carry why-tags")
	}
	if ranked[0].WhyTags[0] != "nightlife" {
		t.Errorf("most similar tag first: got %q", ranked[0].WhyTags[0])
	}
	if ranked[1].WhyTags != nil {
		t.Errorf("college without tags should carry no why-tags, got %v", ranked[1].WhyTags)
	}
}
