package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newSearchCmd() *cobra.Command {
	var topK int
	var minSim float64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over review text",
		Long: `Embed the query and find the most similar reviews by vector
distance. Reviews must have been embedded first (see embed-all).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			ctx := cmd.Context()

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

			embedder, err := buildEmbedder(gcfg)
			if err != nil {
				return err
			}
			vecs, err := embedder.Embed(ctx, []string{query})
			if err != nil {
				return fmt.Errorf("embed query: %w", err)
			}
			if len(vecs) == 0 {
				return fmt.Errorf("embed query: no vector returned")
			}

			vectors := review.NewVectorStore(database)
			matches, err := vectors.Search(vecs[0], topK, minSim)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("No matching reviews. Have you run `ratemy embed-all`?")
				return nil
			}

			store := review.NewStore(database)
			roster := loadRoster(root)
			for _, m := range matches {
				r, err := store.GetByID(m.ReviewID)
				if err != nil {
					continue
				}
				fmt.Printf("[%.3f] ", m.Similarity)
				printReview(roster, r)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top", "n", 5, "number of results")
	cmd.Flags().Float64Var(&minSim, "min-similarity", 0.0, "minimum similarity score")
	return cmd
}
