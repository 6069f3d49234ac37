// Package export renders college stats and rankings into shareable formats.
package export

import (
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

// ExportData is passed to every Exporter.
type ExportData struct {
	// Stats covers every college in the roster.
	Stats []review.Stats

	// Query, Weights, and Ranking are set when exporting a recommendation
	// run; empty for a plain stats report.
	Query   string
	Weights []recommend.CategoryWeight
	Ranking []recommend.ScoredCollege
}

// Exporter renders ExportData to a string in a specific format.
type Exporter interface {
	Export(data ExportData) (string, error)
}

// registry maps format names to Exporter implementations.
var registry = map[string]Exporter{
	"markdown": &MarkdownExporter{},
	"json":     &JSONExporter{},
}

// Get returns the Exporter registered under name, and whether it was found.
func Get(name string) (Exporter, bool) {
	e, ok := registry[name]
	return e, ok
}

// ValidFormats returns the list of supported export format names.
func ValidFormats() []string {
	formats := make([]string, 0, len(registry))
	for k := range registry {
		formats = append(formats, k)
	}
	return formats
}
