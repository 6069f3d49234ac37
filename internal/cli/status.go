package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database and configuration status",
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
			vectors := review.NewVectorStore(database)
			roster := loadRoster(root)

			total, err := store.Count()
			if err != nil {
				return err
			}
			embedded, err := vectors.Count()
			if err != nil {
				return err
			}
			perCollege, err := store.CountByCollege()
			if err != nil {
				return err
			}

			var dbSize int64
			if info, err := os.Stat(dbPath); err == nil {
				dbSize = info.Size()
			}

			fmt.Printf("Data root:  %s\n", root)
			fmt.Printf("Database:   %s (%.1f KB)\n", dbPath, float64(dbSize)/1024)
			fmt.Printf("Embedder:   %s (%s, dim %d)\n", gcfg.DefaultEmbedder, embedModelName(gcfg), gcfg.Embedding.Dimension)
			fmt.Printf("LLM:        %s\n", gcfg.DefaultLLM)
			fmt.Printf("Colleges:   %d\n", len(roster))
			fmt.Printf("Reviews:    %d (%d embedded)\n", total, embedded)

			if len(perCollege) > 0 {
				fmt.Println("\nReviews per college:")
				for _, c := range roster {
					if n := perCollege[c.ID]; n > 0 {
						fmt.Printf("  %-25s %d\n", c.Name, n)
					}
				}
			}
			return nil
		},
	}
	return cmd
}
