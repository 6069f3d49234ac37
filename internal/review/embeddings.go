package review

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/vector"
)

// VectorStore persists review-text embeddings: a durable blob row per review
// plus a sqlite-vec index used for semantic review search.
type VectorStore struct {
	conn *sql.DB
}

// NewVectorStore creates a VectorStore backed by the given DB.
func NewVectorStore(database *db.DB) *VectorStore {
	return &VectorStore{conn: database.Conn()}
}

// Upsert stores (or replaces) the embedding for a review.
func (v *VectorStore) Upsert(reviewID int64, model string, embedding []float32) error {
	if len(embedding) == 0 {
		return nil
	}
	blob := vector.ToBlob(embedding)

	_, err := v.conn.Exec(`
		INSERT INTO review_embeddings (review_id, model, dim, vector)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(review_id) DO UPDATE SET
		    model  = excluded.model,
		    dim    = excluded.dim,
		    vector = excluded.vector`,
		reviewID, model, len(embedding), blob,
	)
	if err != nil {
		return fmt.Errorf("vector: upsert review embedding: %w", err)
	}

	// Mirror into the vec0 index; best-effort when sqlite-vec is missing.
	_, err = v.conn.Exec(
		`INSERT INTO vec_reviews (id, embedding) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET embedding = excluded.embedding`,
		strconv.FormatInt(reviewID, 10), blob,
	)
	if err != nil {
		return nil //nolint:nilerr // vec table may not exist; blob row is the source of truth
	}
	return nil
}

// Has reports whether a review already has a stored embedding.
func (v *VectorStore) Has(reviewID int64) (bool, error) {
	var n int
	err := v.conn.QueryRow(`SELECT COUNT(*) FROM review_embeddings WHERE review_id = ?`, reviewID).Scan(&n)
	return n > 0, err
}

// Count returns how many reviews have embeddings.
func (v *VectorStore) Count() (int, error) {
	var n int
	err := v.conn.QueryRow(`SELECT COUNT(*) FROM review_embeddings`).Scan(&n)
	return n, err
}

// Match is a single similarity search result.
type Match struct {
	ReviewID   int64
	Similarity float64
}

// Search finds the top-k reviews most similar to the query vector. Returns
// nil when sqlite-vec is unavailable.
func (v *VectorStore) Search(query []float32, topK int, minSimilarity float64) ([]Match, error) {
	if len(query) == 0 {
		return nil, nil
	}
	blob := vector.ToBlob(query)
	rows, err := v.conn.Query(
		`SELECT id, distance FROM vec_reviews WHERE embedding MATCH ? AND k = ?
		 ORDER BY distance`,
		blob, topK,
	)
	if err != nil {
		// sqlite-vec may not be loaded; degrade gracefully.
		return nil, nil //nolint:nilerr
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var idStr string
		var distance float64
		if err := rows.Scan(&idStr, &distance); err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		// vec0 returns L2 distance; convert to a similarity in (0, 1].
		similarity := 1.0 / (1.0 + distance)
		if similarity >= minSimilarity {
			out = append(out, Match{ReviewID: id, Similarity: similarity})
		}
	}
	return out, rows.Err()
}

// Delete removes a review's embedding from both tables.
func (v *VectorStore) Delete(reviewID int64) error {
	if _, err := v.conn.Exec(`DELETE FROM review_embeddings WHERE review_id = ?`, reviewID); err != nil {
		return err
	}
	_, _ = v.conn.Exec(`DELETE FROM vec_reviews WHERE id = ?`, strconv.FormatInt(reviewID, 10))
	return nil
}
