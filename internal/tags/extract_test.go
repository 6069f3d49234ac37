package tags

import (
	"strings"
	"testing"
)

func TestExtract_PrefersRepeatedPhrases(t *testing.T) {
	text := "The dining hall is amazing. Late night dining hall runs with friends were the best part."
	got := Extract(text, 5)

	if len(got) == 0 {
		t.Fatalf("expected tags from a rich review")
	}
	if got[0] != "dining hall" {
		t.Errorf("expected the repeated bigram first, got %q (all: %v)", got[0], got)
	}
}

func TestExtract_DropsStopwordsAndCampusNoise(t *testing.T) {
	got := Extract("the students at the college really love the campus", 5)
	for _, tag := range got {
		for _, word := range strings.Fields(tag) {
			if stopwords[word] || contextStop[word] {
				t.Errorf("tag %q contains a filtered word", tag)
			}
		}
	}
}

func TestExtract_DedupesByLeadingToken(t *testing.T) {
	text := "quiet library, quiet rooms, quiet halls everywhere"
	got := Extract(text, 5)

	seen := map[string]bool{}
	for _, tag := range got {
		head := strings.SplitN(tag, " ", 2)[0]
		if seen[head] {
			t.Errorf("leading token %q appears in more than one tag: %v", head, got)
		}
		seen[head] = true
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "great food, great clubs, great events all week"
	a := Extract(text, 3)
	b := Extract(text, 3)
	if strings.Join(a, "|") != strings.Join(b, "|") {
		t.Errorf("extraction is not deterministic: %v vs %v", a, b)
	}
}

func TestExtract_Empty(t *testing.T) {
	if got := Extract("", 5); len(got) != 0 {
		t.Errorf("expected no tags for empty text, got %v", got)
	}
	if got := Extract("a an the", 5); len(got) != 0 {
		t.Errorf("expected no tags for stopword-only text, got %v", got)
	}
}

func TestTrending_AggregatesAcrossReviews(t *testing.T) {
	texts := []string{
		"the dining hall food is great",
		"love the dining hall",
		"dining hall desserts are elite",
	}
	got := Trending(texts, 3)
	if len(got) == 0 {
		t.Fatalf("expected trending tags")
	}
	if got[0] != "#dining hall" {
		t.Errorf("expected the cross-review phrase first, got %q", got[0])
	}
	for _, tag := range got {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("trending tags are display tags and must carry '#': %q", tag)
		}
	}
}

func TestTrending_Empty(t *testing.T) {
	if got := Trending(nil, 3); got != nil {
		t.Errorf("expected nil for no texts, got %v", got)
	}
	if got := Trending([]string{"", "  "}, 3); got != nil {
		t.Errorf("expected nil for blank texts, got %v", got)
	}
}

func TestStripHash(t *testing.T) {
	got := StripHash([]string{"#food", "parties", "#"})
	if len(got) != 2 || got[0] != "food" || got[1] != "parties" {
		t.Errorf("got %v", got)
	}
}
