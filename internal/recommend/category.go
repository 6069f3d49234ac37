// Package recommend implements the preference-inference and scoring engine:
// it turns a free-text query into weighted category preferences, combines
// them with per-college rating aggregates and a tag-similarity bonus, and
// produces a ranked, explainable list of colleges.
package recommend

// Category is one of the fixed rating dimensions. The set is closed and
// never extended at runtime.
type Category string

const (
	CategoryStudy         Category = "study"
	CategorySocial        Category = "social"
	CategoryClubs         Category = "clubs"
	CategoryOpportunities Category = "opportunities"
	CategoryFood          Category = "food"
)

// Categories lists every category in enumeration order. This order is the
// tie-break for equal affinity scores, so it must stay stable.
var Categories = []Category{
	CategoryStudy,
	CategorySocial,
	CategoryClubs,
	CategoryOpportunities,
	CategoryFood,
}

// ValidCategory returns true if c is a recognised category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryStudy, CategorySocial, CategoryClubs, CategoryOpportunities, CategoryFood:
		return true
	}
	return false
}

// anchorPhrases is the seed vocabulary defining each category's embedding
// region. Loaded once; the engine embeds every phrase at construction.
var anchorPhrases = map[Category][]string{
	CategoryStudy: {
		"academics", "grades", "homework", "GPA", "learning",
		"studying", "rigor", "coursework", "professors",
	},
	CategorySocial: {
		"parties", "friends", "community", "social life", "fun",
		"vibe", "nightlife", "events", "hanging out", "meeting people",
	},
	CategoryClubs: {
		"clubs", "sports", "activities", "organizations",
		"intramurals", "student groups", "societies",
	},
	CategoryOpportunities: {
		"career", "jobs", "internships", "research",
		"networking", "co-op", "mentorship",
	},
	CategoryFood: {
		"food", "cafeteria", "dining", "meal plan",
		"canteen", "snacks", "dining hall",
	},
}

// explicitKeywords maps each category to literal substrings that trigger a
// deterministic score bump when they appear in the query. One bump per
// category no matter how many keywords match.
var explicitKeywords = map[Category][]string{
	CategoryStudy: {
		"academic", "academics", "study", "studying", "rigor", "gpa",
	},
	CategorySocial: {
		"social", "party", "parties", "friends", "community", "fun", "vibe", "nightlife",
	},
	CategoryClubs: {
		"club", "clubs", "society", "societies", "intramural", "intramurals", "sports", "team",
	},
	CategoryOpportunities: {
		"internship", "internships", "career", "job", "jobs", "research", "network", "networking", "co-op",
	},
	CategoryFood: {
		"food", "dining", "cafeteria", "meal", "meals", "canteen",
	},
}
