// Package tags extracts short, human-readable tags from review text.
// A deterministic scored-candidate pass handles single reviews, and a
// frequency pass across reviews produces trending tags. An LLM-backed
// path is available when configured.
package tags

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are common English words never useful as tags.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "get": true,
	"had": true, "has": true, "have": true, "he": true, "her": true, "his": true,
	"i": true, "if": true, "in": true, "is": true, "it": true, "its": true,
	"just": true, "lot": true, "me": true, "my": true, "no": true, "not": true,
	"of": true, "on": true, "or": true, "our": true, "out": true, "so": true,
	"some": true, "that": true, "the": true, "their": true, "them": true,
	"there": true, "they": true, "this": true, "to": true, "too": true,
	"up": true, "very": true, "was": true, "we": true, "were": true,
	"what": true, "when": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true, "really": true,
	"much": true, "more": true, "most": true, "also": true, "been": true,
	"here": true, "than": true, "then": true, "because": true, "about": true,
}

// contextStop are generic campus terms that make useless tags because every
// review mentions them.
var contextStop = map[string]bool{
	"college": true, "campus": true, "university": true, "student": true,
	"students": true, "class": true, "classes": true, "school": true,
	"program": true, "course": true, "courses": true, "building": true,
	"buildings": true, "toronto": true, "u": true, "uoft": true, "uni": true,
	"year": true, "first": true, "second": true, "third": true, "fourth": true,
}

// tokenize lowercases text and splits it into alphanumeric word tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// goodToken filters out stopwords, campus noise, and very short tokens.
func goodToken(tok string) bool {
	tok = strings.Trim(tok, "'")
	if len(tok) < 3 {
		return false
	}
	return !stopwords[tok] && !contextStop[tok]
}

// candidate is a scored tag candidate.
type candidate struct {
	text  string
	score int
}

// scoreCandidates counts unigrams (+1) and bigrams (+2) across the token
// stream. Multiword candidates are preferred so tags read like phrases.
func scoreCandidates(tokens []string) map[string]int {
	counts := make(map[string]int)

	var kept []string
	for _, t := range tokens {
		t = strings.Trim(t, "'")
		if goodToken(t) {
			kept = append(kept, t)
		}
	}

	for _, t := range kept {
		counts[t]++
	}

	// Bigrams over adjacent kept tokens.
	for i := 0; i+1 < len(kept); i++ {
		counts[kept[i]+" "+kept[i+1]] += 2
	}

	return counts
}

// rankCandidates orders candidates by score descending, multiword preferred
// on ties, then alphabetically for determinism.
func rankCandidates(counts map[string]int) []candidate {
	ranked := make([]candidate, 0, len(counts))
	for text, score := range counts {
		ranked = append(ranked, candidate{text: text, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		iMulti := strings.Contains(ranked[i].text, " ")
		jMulti := strings.Contains(ranked[j].text, " ")
		if iMulti != jMulti {
			return iMulti
		}
		return ranked[i].text < ranked[j].text
	})
	return ranked
}

// Extract returns up to topN clean tags from a single review text,
// de-duplicated by leading token so overlapping phrases don't crowd the list.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		topN = 5
	}
	ranked := rankCandidates(scoreCandidates(tokenize(text)))

	seen := make(map[string]bool)
	var out []string
	for _, c := range ranked {
		head := strings.SplitN(c.text, " ", 2)[0]
		if seen[head] {
			continue
		}
		seen[head] = true
		out = append(out, c.text)
		if len(out) >= topN {
			break
		}
	}
	return out
}

// Trending aggregates candidates across many review texts and returns the
// top topN with a '#' prefix for display. Returns nil when no text yields
// any candidate.
func Trending(texts []string, topN int) []string {
	if topN <= 0 {
		topN = 5
	}

	combined := make(map[string]int)
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for cand, n := range scoreCandidates(tokenize(text)) {
			combined[cand] += n
		}
	}
	if len(combined) == 0 {
		return nil
	}

	ranked := rankCandidates(combined)

	var out []string
	for _, c := range ranked {
		out = append(out, "#"+c.text)
		if len(out) >= topN {
			break
		}
	}
	return out
}

// StripHash removes a leading '#' from each tag, dropping tags that become
// empty. Used to turn display tags back into embeddable phrases.
func StripHash(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimPrefix(t, "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
