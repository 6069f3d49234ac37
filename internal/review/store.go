package review

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ratemycollege/ratemy/internal/db"
)

// Store provides read/write access to the review SQLite database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given DB.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Conn exposes the underlying *sql.DB for low-level queries.
func (s *Store) Conn() *sql.DB {
	return s.db.Conn()
}

// Insert stores a new review and returns its generated ID.
func (s *Store) Insert(r Review) (int64, error) {
	tagsJSON, err := json.Marshal(orEmpty(r.Tags))
	if err != nil {
		return 0, fmt.Errorf("store: marshal tags: %w", err)
	}
	ratedJSON, err := json.Marshal(orEmpty(r.RatedCategories))
	if err != nil {
		return 0, fmt.Errorf("store: marshal rated categories: %w", err)
	}

	var id int64
	err = s.db.Conn().QueryRow(`
		INSERT INTO reviews (college_id, user, text, food, social, clubs, study, opportunities, tags, rated_categories)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		r.CollegeID, r.User, r.Text,
		r.Food, r.Social, r.Clubs, r.Study, r.Opportunities,
		string(tagsJSON), string(ratedJSON),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert review: %w", err)
	}
	return id, nil
}

// GetByID returns a single review.
func (s *Store) GetByID(id int64) (Review, error) {
	row := s.db.Conn().QueryRow(selectReviews+` WHERE id = ?`, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("store: review %d not found", id)
	}
	if err != nil {
		return r, fmt.Errorf("store: get review %d: %w", id, err)
	}
	return r, nil
}

// ListByCollege returns all reviews for one college, newest first.
func (s *Store) ListByCollege(collegeID string) ([]Review, error) {
	rows, err := s.db.Conn().Query(selectReviews+` WHERE college_id = ? ORDER BY created_at DESC, id DESC`, collegeID)
	if err != nil {
		return nil, fmt.Errorf("store: list reviews for %s: %w", collegeID, err)
	}
	defer rows.Close()
	return collectReviews(rows)
}

// ListAll returns every stored review, newest first.
func (s *Store) ListAll() ([]Review, error) {
	rows, err := s.db.Conn().Query(selectReviews + ` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list reviews: %w", err)
	}
	defer rows.Close()
	return collectReviews(rows)
}

// Count returns the total number of reviews.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&n)
	return n, err
}

// CountByCollege returns review counts keyed by college ID.
func (s *Store) CountByCollege() (map[string]int, error) {
	rows, err := s.db.Conn().Query(`SELECT college_id, COUNT(*) FROM reviews GROUP BY college_id`)
	if err != nil {
		return nil, fmt.Errorf("store: count by college: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

// DeleteByCollege removes all reviews for one college. Returns the number
// deleted.
func (s *Store) DeleteByCollege(collegeID string) (int64, error) {
	res, err := s.db.Conn().Exec(`DELETE FROM reviews WHERE college_id = ?`, collegeID)
	if err != nil {
		return 0, fmt.Errorf("store: delete reviews for %s: %w", collegeID, err)
	}
	return res.RowsAffected()
}

// DeleteAll removes every review. Returns the number deleted.
func (s *Store) DeleteAll() (int64, error) {
	res, err := s.db.Conn().Exec(`DELETE FROM reviews`)
	if err != nil {
		return 0, fmt.Errorf("store: delete all reviews: %w", err)
	}
	return res.RowsAffected()
}

// ---- Scanning helpers ----

const selectReviews = `SELECT id, college_id, user, text, food, social, clubs, study, opportunities, tags, rated_categories, created_at FROM reviews`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (Review, error) {
	var (
		r         Review
		tagsJSON  string
		ratedJSON string
		createdAt string
	)
	err := row.Scan(&r.ID, &r.CollegeID, &r.User, &r.Text,
		&r.Food, &r.Social, &r.Clubs, &r.Study, &r.Opportunities,
		&tagsJSON, &ratedJSON, &createdAt)
	if err != nil {
		return r, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
	_ = json.Unmarshal([]byte(ratedJSON), &r.RatedCategories)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectReviews(rows *sql.Rows) ([]Review, error) {
	var out []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// parseTime handles the formats SQLite emits for CURRENT_TIMESTAMP columns.
func parseTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
