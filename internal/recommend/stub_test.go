package recommend

import (
	"context"
	"strings"
)

// stubEmbedder returns deterministic 5-dimensional vectors: each anchor
// phrase maps to its category's axis, text mentioning anchor phrases gets
// the sum of the matching axes, and unrelated text gets a vector pointing
// away from every axis.
type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = stubVector(t)
	}
	return out, nil
}

func stubVector(text string) []float32 {
	lower := strings.ToLower(strings.TrimSpace(text))

	v := make([]float32, len(Categories))
	hit := false
	for i, cat := range Categories {
		for _, p := range anchorPhrases[cat] {
			if strings.Contains(lower, strings.ToLower(p)) {
				v[i]++
				hit = true
			}
		}
	}
	if !hit {
		for i := range v {
			v[i] = -1
		}
	}
	return v
}

func axis(i int) []float32 {
	v := make([]float32, len(Categories))
	v[i] = 1
	return v
}

func newTestEngine(t interface{ Fatalf(string, ...interface{}) }, opts Options) (*Engine, *stubEmbedder) {
	stub := &stubEmbedder{}
	engine, err := NewEngine(context.Background(), stub, nil, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	stub.calls = 0
	return engine, stub
}
