// Package college holds the roster of colleges the system ranks.
package college

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// College is one entry in the roster.
type College struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// defaultRoster covers the seven UofT colleges the system started with.
var defaultRoster = map[string]string{
	"uc":       "University College",
	"trinity":  "Trinity College",
	"victoria": "Victoria College",
	"stmikes":  "St. Michael's College",
	"woods":    "Woodsworth College",
	"innis":    "Innis College",
	"new":      "New College",
}

// DefaultRoster returns the built-in roster, sorted by ID.
func DefaultRoster() []College {
	return fromMap(defaultRoster)
}

// Load reads a roster file: a JSON object mapping college ID to display name.
// An empty path returns the default roster.
func Load(path string) ([]College, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("college: read roster %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("college: parse roster %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("college: roster %s is empty", path)
	}
	return fromMap(raw), nil
}

// DisplayName returns the roster name for an ID, falling back to the ID
// itself for colleges not in the roster.
func DisplayName(roster []College, id string) string {
	for _, c := range roster {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func fromMap(m map[string]string) []College {
	out := make([]College, 0, len(m))
	for id, name := range m {
		out = append(out, College{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
