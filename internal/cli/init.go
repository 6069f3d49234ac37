package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
	"github.com/ratemycollege/ratemy/internal/tags"
)

func newInitCmd() *cobra.Command {
	var dataRoot string
	var rosterPath string
	var seedPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the review database in the current directory",
		Long: `Create the .ratemy/ directory with a SQLite review database and config.

A roster file (JSON object of college ID to display name) can replace the
built-in roster, and a seed file (JSON array of reviews) can pre-populate
the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dataRoot
			if root == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = cwd
			}
			root, _ = filepath.Abs(root)

			gcfg, _ := config.LoadGlobal()

			database, err := db.OpenWithDimension(config.DBPath(root), gcfg.Embedding.Dimension)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			dataCfg, _ := config.LoadData(root)
			if rosterPath != "" {
				abs, _ := filepath.Abs(rosterPath)
				dataCfg.RosterPath = abs
			}
			if err := config.SaveData(root, dataCfg); err != nil {
				return err
			}

			store := review.NewStore(database)

			seeded := 0
			if seedPath != "" {
				seeded, err = seedReviews(store, seedPath, gcfg.Tags.TopN)
				if err != nil {
					return err
				}
			}

			roster := loadRoster(root)
			fmt.Printf("Initialized %s\n", config.DataDirPath(root))
			fmt.Printf("Roster: %d colleges\n", len(roster))
			if seeded > 0 {
				fmt.Printf("Seeded %d reviews. Run `ratemy embed-all` to embed them.\n", seeded)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "root", "", "data root directory (default: current directory)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to a colleges.json roster file")
	cmd.Flags().StringVar(&seedPath, "seed", "", "path to a JSON file of reviews to import")
	return cmd
}

// seedReviews imports reviews from a JSON array file. Reviews without tags
// get them extracted from the text.
func seedReviews(store *review.Store, path string, tagTopN int) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var reviews []review.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	n := 0
	for _, r := range reviews {
		if r.CollegeID == "" || r.Text == "" {
			fmt.Fprintf(os.Stderr, "  Warning: skipping seed review with missing college or text\n")
			continue
		}
		if len(r.Tags) == 0 {
			r.Tags = tags.Extract(r.Text, tagTopN)
		}
		if len(r.RatedCategories) == 0 {
			for _, cat := range recommend.Categories {
				if r.Rating(cat) != nil {
					r.RatedCategories = append(r.RatedCategories, string(cat))
				}
			}
		}
		if _, err := store.Insert(r); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: seed insert failed: %v\n", err)
			continue
		}
		n++
	}
	return n, nil
}
