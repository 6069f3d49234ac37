package recommend

import (
	"context"
	"math"
	"testing"
)

func weightSum(ws []CategoryWeight) float64 {
	var sum float64
	for _, w := range ws {
		sum += w.Weight
	}
	return sum
}

func TestInferWeights_SingleDominantCategory(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights, err := engine.InferWeights(context.Background(), "I love parties and nightlife", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if len(weights) != 1 {
		t.Fatalf("expected only the social category to survive, got %v", weights)
	}
	if weights[0].Category != CategorySocial {
		t.Errorf("expected social, got %s", weights[0].Category)
	}
	if weights[0].Weight != 1.0 {
		t.Errorf("single survivor should carry weight 1.0, got %f", weights[0].Weight)
	}
}

func TestInferWeights_SumToOne(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights, err := engine.InferWeights(context.Background(), "studying and food and parties", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if len(weights) != 3 {
		t.Fatalf("expected 3 categories, got %v", weights)
	}
	if sum := weightSum(weights); math.Abs(sum-1.0) > 1e-3 {
		t.Errorf("weights should sum to 1.0, got %f", sum)
	}
}

func TestInferWeights_TopNTruncation(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	// Four categories signal equally; only TopN (3) survive, ties broken
	// by enumeration order.
	weights, err := engine.InferWeights(context.Background(), "studying parties clubs food", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if len(weights) != 3 {
		t.Fatalf("expected 3 weights after truncation, got %d", len(weights))
	}
	want := []Category{CategoryStudy, CategorySocial, CategoryClubs}
	for i, w := range weights {
		if w.Category != want[i] {
			t.Errorf("position %d: got %s, want %s", i, w.Category, want[i])
		}
	}
}

func TestInferWeights_EmptyQueryNoManual(t *testing.T) {
	engine, stub := newTestEngine(t, Options{})

	weights, err := engine.InferWeights(context.Background(), "   ", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if weights != nil {
		t.Errorf("expected nil weights for empty query, got %v", weights)
	}
	if stub.calls != 0 {
		t.Errorf("empty query should not hit the embedder, got %d calls", stub.calls)
	}
}

func TestInferWeights_ManualOnly(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights, err := engine.InferWeights(context.Background(), "", map[Category]float64{CategoryClubs: 0.25})
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if len(weights) != 1 || weights[0].Category != CategoryClubs {
		t.Fatalf("expected clubs only, got %v", weights)
	}
	if weights[0].Weight != 1.0 {
		t.Errorf("expected weight 1.0, got %f", weights[0].Weight)
	}
}

func TestInferWeights_ManualInvalidCategoryIgnored(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	weights, err := engine.InferWeights(context.Background(), "", map[Category]float64{"dorms": 0.5})
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if weights != nil {
		t.Errorf("invalid manual category should not produce weights, got %v", weights)
	}
}

func TestInferWeights_NoConfidentCategory(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	// Unrelated text embeds away from every anchor, so every score falls
	// below the threshold.
	weights, err := engine.InferWeights(context.Background(), "xyzzy plugh", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if weights != nil {
		t.Errorf("expected nil weights when nothing survives pruning, got %v", weights)
	}
}

func TestInferWeights_KeywordBumpLiftsCategory(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	// "food" appears both as anchor and keyword; "parties" likewise. The
	// bump is once per category, so the two stay tied and sorted by
	// enumeration order (social before food).
	weights, err := engine.InferWeights(context.Background(), "parties food", nil)
	if err != nil {
		t.Fatalf("InferWeights: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("expected 2 weights, got %v", weights)
	}
	if weights[0].Category != CategorySocial || weights[1].Category != CategoryFood {
		t.Errorf("expected [social food], got %v", weights)
	}
	if weights[0].Weight != weights[1].Weight {
		t.Errorf("tied categories should carry equal weight: %f vs %f", weights[0].Weight, weights[1].Weight)
	}
}
