package cli

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/adapter"
	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/review"
)

func newEmbedAllCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "embed-all",
		Short: "Embed every review that does not have a stored vector yet",
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

			n, err := embedMissing(cmd.Context(), gcfg, database, force, isTerminal())
			if err != nil {
				return err
			}
			fmt.Printf("Embedded %d review(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-embed reviews that already have vectors")
	return cmd
}

// embedMissing embeds reviews lacking a stored vector (all of them with
// force) and returns how many were embedded. Used by embed-all and watch.
func embedMissing(ctx context.Context, cfg config.GlobalConfig, database *db.DB, force, showProgress bool) (int, error) {
	store := review.NewStore(database)
	vectors := review.NewVectorStore(database)

	reviews, err := store.ListAll()
	if err != nil {
		return 0, err
	}

	pending := make([]review.Review, 0, len(reviews))
	for _, r := range reviews {
		if !force {
			has, err := vectors.Has(r.ID)
			if err != nil {
				return 0, err
			}
			if has {
				continue
			}
		}
		pending = append(pending, r)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return 0, err
	}
	model := embedModelName(cfg)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(pending),
			progressbar.OptionSetDescription("Embedding reviews"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	done := 0
	for _, r := range pending {
		vecs, err := embedder.Embed(ctx, []string{r.Text})
		if err != nil {
			return done, fmt.Errorf("embed review #%d: %w", r.ID, err)
		}
		if len(vecs) == 0 {
			return done, fmt.Errorf("embed review #%d: no vector returned", r.ID)
		}
		if err := vectors.Upsert(r.ID, model, vecs[0]); err != nil {
			return done, err
		}
		done++
		if bar != nil {
			bar.Add(1)
		}
	}
	return done, nil
}

// embedOneReview embeds a single freshly inserted review.
func embedOneReview(ctx context.Context, cfg config.GlobalConfig, database *db.DB, reviewID int64, text string) error {
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	vecs, err := embedder.Embed(ctx, []string{text})
	if err != nil {
		return err
	}
	if len(vecs) == 0 {
		return fmt.Errorf("no vector returned")
	}
	return review.NewVectorStore(database).Upsert(reviewID, embedModelName(cfg), vecs[0])
}

// embedModelName names the embedding model for the configured provider,
// recorded alongside each stored vector.
func embedModelName(cfg config.GlobalConfig) string {
	switch cfg.DefaultEmbedder {
	case adapter.ProviderOpenAI:
		return "text-embedding-3-small"
	case adapter.ProviderGemini:
		return "text-embedding-004"
	default:
		return cfg.Ollama.EmbedModel
	}
}
