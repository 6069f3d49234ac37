package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/export"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newExportCmd() *cobra.Command {
	var format string
	var outPath string
	var query string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export college stats (and optionally a ranking) to markdown or JSON",
		Long: `Write a report of every college's aggregates. With --query, the
report also includes the inferred weights and ranked results for that
query, which needs a reachable embedder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exporter, ok := export.Get(format)
			if !ok {
				return fmt.Errorf("unknown format %q (one of: %s)", format, strings.Join(export.ValidFormats(), ", "))
			}

			root, err := findRoot()
			if err != nil {
				return err
			}
			dbPath, err := ensureInitialized(root)
			if err != nil {
				return err
			}

			gcfg, _ := config.LoadGlobal()
			database, err := db.OpenWithDimension(dbPath, gcfg.Embedding.Dimension)
			if err != nil {
				return err
			}
			defer database.Close()
			store := review.NewStore(database)
			roster := loadRoster(root)

			data := export.ExportData{}
			if query == "" {
				data.Stats, err = review.BuildStats(ctx, store, roster, nil)
				if err != nil {
					return err
				}
			} else {
				embedder, err := buildEmbedder(gcfg)
				if err != nil {
					return err
				}
				cache := recommend.NewTagVectorCache(embedder)
				engine, err := buildEngine(ctx, gcfg, cache)
				if err != nil {
					return err
				}

				data.Query = query
				data.Weights, err = engine.InferWeights(ctx, query, nil)
				if err != nil {
					return err
				}
				data.Stats, err = review.BuildStats(ctx, store, roster, cache)
				if err != nil {
					return err
				}
				data.Ranking, err = engine.RankColleges(ctx, review.Rankable(data.Stats), query, data.Weights)
				if err != nil {
					return err
				}
			}

			out, err := exporter.Export(data)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "export format (markdown, json)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "include a recommendation run for this query")
	return cmd
}
