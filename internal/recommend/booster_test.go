package recommend

import (
	"context"
	"testing"
)

func TestTagBonus_IdenticalDirection(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	// "parties" embeds exactly on the social axis, matching the tag vector.
	bonus, err := engine.TagBonus(context.Background(), "parties", axis(1))
	if err != nil {
		t.Fatalf("TagBonus: %v", err)
	}
	if bonus != 0.6 {
		t.Errorf("identical direction should give the full alpha bonus: got %f, want 0.6", bonus)
	}
}

func TestTagBonus_Orthogonal(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	bonus, err := engine.TagBonus(context.Background(), "parties", axis(0))
	if err != nil {
		t.Fatalf("TagBonus: %v", err)
	}
	if bonus != 0.3 {
		t.Errorf("orthogonal vectors rescale to 0.5, so bonus = alpha/2: got %f, want 0.3", bonus)
	}
}

func TestTagBonus_Opposite(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	opposite := make([]float32, len(Categories))
	opposite[1] = -1
	bonus, err := engine.TagBonus(context.Background(), "parties", opposite)
	if err != nil {
		t.Fatalf("TagBonus: %v", err)
	}
	if bonus != 0 {
		t.Errorf("opposite direction should give zero bonus, got %f", bonus)
	}
}

func TestTagBonus_NilTagVector(t *testing.T) {
	engine, stub := newTestEngine(t, Options{})

	bonus, err := engine.TagBonus(context.Background(), "parties", nil)
	if err != nil {
		t.Fatalf("TagBonus: %v", err)
	}
	if bonus != 0 {
		t.Errorf("nil tag vector should give zero bonus, got %f", bonus)
	}
	if stub.calls != 0 {
		t.Errorf("nil tag vector should not embed the query, got %d calls", stub.calls)
	}
}

func TestTagBonus_EmptyQuery(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	bonus, err := engine.TagBonus(context.Background(), "  ", axis(1))
	if err != nil {
		t.Fatalf("TagBonus: %v", err)
	}
	if bonus != 0 {
		t.Errorf("empty query should give zero bonus, got %f", bonus)
	}
}

func TestTopSimilarTags_RanksByQuerySimilarity(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	got, err := engine.TopSimilarTags(context.Background(), "parties", []string{"food", "nightlife", "xyzzy"}, 2)
	if err != nil {
		t.Fatalf("TopSimilarTags: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %v", got)
	}
	if got[0] != "nightlife" {
		t.Errorf("expected the social tag first, got %q", got[0])
	}
	if got[1] != "food" {
		t.Errorf("expected %q second, got %q", "food", got[1])
	}
}

func TestTopSimilarTags_Empty(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	got, err := engine.TopSimilarTags(context.Background(), "", []string{"food"}, 3)
	if err != nil {
		t.Fatalf("TopSimilarTags: %v", err)
	}
	if got != nil {
		t.Errorf("empty query should yield no tags, got %v", got)
	}

	got, err = engine.TopSimilarTags(context.Background(), "parties", nil, 3)
	if err != nil {
		t.Fatalf("TopSimilarTags: %v", err)
	}
	if got != nil {
		t.Errorf("no tags should yield no tags, got %v", got)
	}
}
