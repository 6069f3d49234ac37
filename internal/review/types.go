// Package review stores college reviews and derives the per-college rating
// aggregates the recommender consumes.
package review

import (
	"time"

	"github.com/ratemycollege/ratemy/internal/recommend"
)

// Review is a single review row. Category ratings are nil when the reviewer
// did not rate that category; a stored 0 means "rated zero" and is excluded
// from aggregates just like nil, matching how reviews are collected.
type Review struct {
	ID              int64     `json:"id"`
	CollegeID       string    `json:"college_id"`
	User            string    `json:"user"`
	Text            string    `json:"text"`
	Food            *int      `json:"food,omitempty"`
	Social          *int      `json:"social,omitempty"`
	Clubs           *int      `json:"clubs,omitempty"`
	Study           *int      `json:"study,omitempty"`
	Opportunities   *int      `json:"opportunities,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	RatedCategories []string  `json:"rated_categories,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Rating returns the rating for a category, or nil when unrated.
func (r Review) Rating(cat recommend.Category) *int {
	switch cat {
	case recommend.CategoryFood:
		return r.Food
	case recommend.CategorySocial:
		return r.Social
	case recommend.CategoryClubs:
		return r.Clubs
	case recommend.CategoryStudy:
		return r.Study
	case recommend.CategoryOpportunities:
		return r.Opportunities
	}
	return nil
}

// SetRating sets the rating for a category. Unknown categories are ignored.
func (r *Review) SetRating(cat recommend.Category, value int) {
	v := value
	switch cat {
	case recommend.CategoryFood:
		r.Food = &v
	case recommend.CategorySocial:
		r.Social = &v
	case recommend.CategoryClubs:
		r.Clubs = &v
	case recommend.CategoryStudy:
		r.Study = &v
	case recommend.CategoryOpportunities:
		r.Opportunities = &v
	}
}
