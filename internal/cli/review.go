package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/college"
	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
	"github.com/ratemycollege/ratemy/internal/tags"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Add or list college reviews",
	}
	cmd.AddCommand(newReviewAddCmd())
	cmd.AddCommand(newReviewListCmd())
	return cmd
}

func newReviewAddCmd() *cobra.Command {
	var user string
	var text string
	var tagList string
	ratings := map[recommend.Category]*int{}

	cmd := &cobra.Command{
		Use:   "add <college-id>",
		Short: "Add a review for a college",
		Long: `Add a review. Category ratings are 1-10 and optional; unrated
categories count as zero when the college is scored. Tags are extracted
from the review text unless given explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collegeID := strings.ToLower(strings.TrimSpace(args[0]))

			root, err := findRoot()
			if err != nil {
				return err
			}
			dbPath, err := ensureInitialized(root)
			if err != nil {
				return err
			}

			roster := loadRoster(root)
			known := false
			for _, c := range roster {
				if c.ID == collegeID {
					known = true
					break
				}
			}
			if !known {
				ids := make([]string, 0, len(roster))
				for _, c := range roster {
					ids = append(ids, c.ID)
				}
				return fmt.Errorf("unknown college %q (known: %s)", collegeID, strings.Join(ids, ", "))
			}

			gcfg, _ := config.LoadGlobal()
			database, err := db.OpenWithDimension(dbPath, gcfg.Embedding.Dimension)
			if err != nil {
				return err
			}
			defer database.Close()
			store := review.NewStore(database)

			r := review.Review{
				CollegeID: collegeID,
				User:      user,
				Text:      text,
			}
			for _, cat := range recommend.Categories {
				v := ratings[cat]
				if cmd.Flags().Changed(string(cat)) {
					if *v < 1 || *v > 10 {
						return fmt.Errorf("rating for %s must be 1-10, got %d", cat, *v)
					}
					r.SetRating(cat, *v)
					r.RatedCategories = append(r.RatedCategories, string(cat))
				}
			}

			if tagList != "" {
				for _, t := range strings.Split(tagList, ",") {
					if t = strings.TrimSpace(t); t != "" {
						r.Tags = append(r.Tags, t)
					}
				}
			} else {
				r.Tags = tags.Extract(text, gcfg.Tags.TopN)
			}

			id, err := store.Insert(r)
			if err != nil {
				return err
			}

			fmt.Printf("Added review #%d for %s\n", id, college.DisplayName(roster, collegeID))
			if len(r.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(r.Tags, ", "))
			}

			// Embed right away when an embedder is reachable; embed-all
			// picks up anything missed here.
			if err := embedOneReview(cmd.Context(), gcfg, database, id, text); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: review saved but not embedded: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "anonymous", "reviewer name")
	cmd.Flags().StringVarP(&text, "text", "t", "", "review text (required)")
	cmd.Flags().StringVar(&tagList, "tags", "", "comma-separated tags (default: extracted from text)")
	for _, cat := range recommend.Categories {
		ratings[cat] = cmd.Flags().Int(string(cat), 0, fmt.Sprintf("%s rating (1-10)", cat))
	}
	cmd.MarkFlagRequired("text")
	return cmd
}

func newReviewListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list [college-id]",
		Short: "List reviews for a college (or all reviews with --all)",
		Args:  cobra.MaximumNArgs(1),
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

			var reviews []review.Review
			switch {
			case len(args) == 1:
				reviews, err = store.ListByCollege(strings.ToLower(strings.TrimSpace(args[0])))
			case all:
				reviews, err = store.ListAll()
			default:
				return fmt.Errorf("give a college ID or pass --all")
			}
			if err != nil {
				return err
			}

			if len(reviews) == 0 {
				fmt.Println("No reviews found.")
				return nil
			}

			roster := loadRoster(root)
			for _, r := range reviews {
				printReview(roster, r)
			}
			fmt.Printf("%d review(s)\n", len(reviews))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list reviews for every college")
	return cmd
}

func printReview(roster []college.College, r review.Review) {
	fmt.Printf("#%d  %s  by %s  (%s)\n", r.ID, college.DisplayName(roster, r.CollegeID), r.User, r.CreatedAt.Format("2006-01-02"))

	parts := make([]string, 0, len(recommend.Categories))
	for _, cat := range recommend.Categories {
		if v := r.Rating(cat); v != nil {
			parts = append(parts, fmt.Sprintf("%s %d", cat, *v))
		}
	}
	if len(parts) > 0 {
		fmt.Printf("    ratings: %s\n", strings.Join(parts, "  "))
	}
	if len(r.Tags) > 0 {
		fmt.Printf("    tags: %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Printf("    %s\n\n", r.Text)
}
