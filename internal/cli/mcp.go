package cli

import (
	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Expose the recommender to MCP clients: recommend_colleges,
add_review, and college_stats tools over stdio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := findRoot()
			if err != nil {
				return err
			}
			if _, err := ensureInitialized(root); err != nil {
				return err
			}

			srv, closeFn, err := mcp.NewServer(root)
			if err != nil {
				return err
			}
			defer closeFn()

			return srv.Serve(version)
		},
	}
	return cmd
}
