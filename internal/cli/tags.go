package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/tags"
)

func newTagsCmd() *cobra.Command {
	var useLLM bool
	var topN int

	cmd := &cobra.Command{
		Use:   "tags <text>",
		Short: "Suggest tags for a piece of review text",
		Long: `Extract tags from text using the built-in keyword heuristic, or ask
the configured LLM with --llm. The LLM path falls back to the heuristic
when the model is unreachable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			gcfg, _ := config.LoadGlobal()
			if topN <= 0 {
				topN = gcfg.Tags.TopN
			}

			var result []string
			if useLLM || gcfg.Tags.UseLLM {
				llm, err := buildLLM(gcfg)
				if err == nil {
					result, err = tags.SuggestLLM(cmd.Context(), llm, text, topN, gcfg.Tags.MaxPromptTokens)
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: LLM tagging failed (%v); using keyword extraction\n", err)
					result = nil
				}
			}
			if len(result) == 0 {
				result = tags.Extract(text, topN)
			}

			if len(result) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			for _, t := range result {
				fmt.Printf("#%s\n", t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useLLM, "llm", false, "use the configured LLM instead of keyword extraction")
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of tags to suggest (default from config)")
	return cmd
}
