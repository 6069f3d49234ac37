package recommend

import (
	"context"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"#Food!", "food"},
		{"  Study   Spaces  ", "study spaces"},
		{"co-op", "co-op"},
		{"CS/ENG", "cs/eng"},
		{"!!!", ""},
		{"", ""},
		{"#", ""},
		{"snack_bar", "snack_bar"},
	}
	for _, c := range cases {
		if got := NormalizeTag(c.in); got != c.want {
			t.Errorf("NormalizeTag(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTag_Idempotent(t *testing.T) {
	for _, in := range []string{"#Food!", "study spaces", "CS/ENG 101"} {
		once := NormalizeTag(in)
		if twice := NormalizeTag(once); twice != once {
			t.Errorf("NormalizeTag not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestEmbedTag_CacheHit(t *testing.T) {
	stub := &stubEmbedder{}
	cache := NewTagVectorCache(stub)
	ctx := context.Background()

	first, err := cache.EmbedTag(ctx, "#Food!")
	if err != nil {
		t.Fatalf("EmbedTag: %v", err)
	}
	second, err := cache.EmbedTag(ctx, "food")
	if err != nil {
		t.Fatalf("EmbedTag: %v", err)
	}

	if stub.calls != 1 {
		t.Errorf("expected 1 embed call for two spellings of the same tag, got %d", stub.calls)
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 cached entry, got %d", cache.Len())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cache returned a different vector on hit")
		}
	}
}

func TestEmbedTag_EmptyNormalization(t *testing.T) {
	stub := &stubEmbedder{}
	cache := NewTagVectorCache(stub)

	v, err := cache.EmbedTag(context.Background(), "!!!")
	if err != nil {
		t.Fatalf("EmbedTag: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil vector for tag that normalizes to nothing")
	}
	if stub.calls != 0 {
		t.Errorf("expected no embed calls, got %d", stub.calls)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestBuildTagVector_OrderIndependent(t *testing.T) {
	ctx := context.Background()

	a, err := NewTagVectorCache(&stubEmbedder{}).BuildTagVector(ctx, []string{"food", "parties"})
	if err != nil {
		t.Fatalf("BuildTagVector: %v", err)
	}
	b, err := NewTagVectorCache(&stubEmbedder{}).BuildTagVector(ctx, []string{"parties", "food"})
	if err != nil {
		t.Fatalf("BuildTagVector: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("tag vector depends on input order at index %d: %f != %f", i, a[i], b[i])
		}
	}
}

func TestBuildTagVector_AllUnusable(t *testing.T) {
	cache := NewTagVectorCache(&stubEmbedder{})
	v, err := cache.BuildTagVector(context.Background(), []string{"!!!", "", "#"})
	if err != nil {
		t.Fatalf("BuildTagVector: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil vector when no tag is usable, got %v", v)
	}
}
