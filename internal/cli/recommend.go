package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newRecommendCmd() *cobra.Command {
	var prefer []string
	var showWhy bool

	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Rank colleges for a free-text query",
		Long: `Infer what the query cares about, then rank colleges by their
weighted category averages plus a tag-similarity bonus.

  ratemy recommend "somewhere quiet with good food"
  ratemy recommend "best social scene" --prefer clubs

--prefer bumps a category before weights are normalized; repeat it for
multiple categories.`,
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
			manual := map[recommend.Category]float64{}
			for _, p := range prefer {
				cat := recommend.Category(strings.ToLower(strings.TrimSpace(p)))
				if !recommend.ValidCategory(cat) {
					return fmt.Errorf("unknown category %q (one of: %s)", p, categoryList())
				}
				manual[cat] = gcfg.Recommend.ManualBoost
			}

			database, err := db.OpenWithDimension(dbPath, gcfg.Embedding.Dimension)
			if err != nil {
				return err
			}
			defer database.Close()
			store := review.NewStore(database)

			embedder, err := buildEmbedder(gcfg)
			if err != nil {
				return err
			}
			cache := recommend.NewTagVectorCache(embedder)
			engine, err := buildEngine(ctx, gcfg, cache)
			if err != nil {
				return err
			}

			weights, err := engine.InferWeights(ctx, query, manual)
			if err != nil {
				return err
			}
			if len(weights) == 0 {
				fmt.Println("Could not infer any category from that query. Try --prefer.")
				return nil
			}

			stats, err := review.BuildStats(ctx, store, loadRoster(root), cache)
			if err != nil {
				return err
			}

			ranked, err := engine.RankColleges(ctx, review.Rankable(stats), query, weights)
			if err != nil {
				return err
			}

			fmt.Printf("Inferred weights for %q:\n", query)
			for _, w := range weights {
				fmt.Printf("  %-15s %.4f\n", w.Category, w.Weight)
			}
			fmt.Println()

			for i, sc := range ranked {
				fmt.Printf("%d. %s  %.2f\n", i+1, sc.Name, sc.FinalScore)
				if showWhy {
					printBreakdown(sc)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&prefer, "prefer", "p", nil, "category to bump (repeatable)")
	cmd.Flags().BoolVarP(&showWhy, "why", "w", false, "show the per-category breakdown and matching tags")
	return cmd
}

func printBreakdown(sc recommend.ScoredCollege) {
	for _, c := range sc.Contributions {
		fmt.Printf("     %-15s %.1f x %.4f = %.2f pts\n", c.Category, c.Value, c.Weight, c.Points)
	}
	fmt.Printf("     category score %.2f, tag bonus +%.2f\n", sc.CategoryScore, sc.TagBonus)
	if len(sc.WhyTags) > 0 {
		fmt.Printf("     matching tags: %s\n", strings.Join(sc.WhyTags, ", "))
	}
	fmt.Println()
}

func categoryList() string {
	out := make([]string, len(recommend.Categories))
	for i, c := range recommend.Categories {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}
