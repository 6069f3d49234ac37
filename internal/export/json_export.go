package export

import (
	"encoding/json"

	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

// JSONExporter renders ExportData as structured JSON.
type JSONExporter struct{}

type jsonOutput struct {
	Query   string                     `json:"query,omitempty"`
	Weights []recommend.CategoryWeight `json:"weights,omitempty"`
	Ranking []recommend.ScoredCollege  `json:"ranking,omitempty"`
	Stats   []review.Stats             `json:"stats,omitempty"`
}

func (e *JSONExporter) Export(data ExportData) (string, error) {
	out := jsonOutput{
		Query:   data.Query,
		Weights: data.Weights,
		Ranking: data.Ranking,
		Stats:   data.Stats,
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw) + "\n", nil
}
