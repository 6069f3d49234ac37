package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newCollegesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colleges",
		Short: "Show per-college rating averages and trending tags",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			// Numbers only here, so no tag cache and no embedding calls.
			stats, err := review.BuildStats(cmd.Context(), store, roster, nil)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			header := []string{"COLLEGE", "REVIEWS", "OVERALL"}
			for _, cat := range recommend.Categories {
				header = append(header, strings.ToUpper(string(cat)))
			}
			header = append(header, "TRENDING")
			fmt.Fprintln(w, strings.Join(header, "\t"))

			for _, st := range stats {
				row := []string{st.Name, fmt.Sprintf("%d", st.ReviewCount)}
				if st.AvgRating != nil {
					row = append(row, fmt.Sprintf("%.2f", *st.AvgRating))
				} else {
					row = append(row, "-")
				}
				for _, cat := range recommend.Categories {
					if v, ok := st.CategoryRatings[cat]; ok {
						row = append(row, fmt.Sprintf("%.1f", v))
					} else {
						row = append(row, "-")
					}
				}
				trending := strings.Join(st.Trending, " ")
				if st.HasFewRatings {
					trending += "  (few ratings)"
				}
				row = append(row, strings.TrimSpace(trending))
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
	return cmd
}
