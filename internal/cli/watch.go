package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
)

func newWatchCmd() *cobra.Command {
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the database for new reviews and keep embeddings current",
		Long: `Start a long-running watcher on the data directory. When another
process writes reviews (for example the MCP server running without an
embedder), the watcher embeds whatever is missing a vector.

Changes are debounced so a burst of writes triggers a single embedding
pass. Press Ctrl-C to stop.`,
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
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			dataDir := config.DataDirPath(root)
			if err := watcher.Add(dataDir); err != nil {
				return fmt.Errorf("watch %s: %w", dataDir, err)
			}

			// Watch the roster file's directory too, so roster edits show up.
			dataCfg, _ := config.LoadData(root)
			if dataCfg.RosterPath != "" {
				_ = watcher.Add(filepath.Dir(dataCfg.RosterPath))
			}

			debounce := time.Duration(debounceMs) * time.Millisecond
			fmt.Printf("Watching %s (debounce %s). Press Ctrl-C to stop.\n", dataDir, debounce)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			timer := time.NewTimer(debounce)
			timer.Stop() // Don't fire immediately.
			dirty := false

			for {
				select {
				case <-sigCh:
					fmt.Println("\nStopping watcher.")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !watchRelevant(event) {
						continue
					}
					dirty = true
					timer.Reset(debounce)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

				case <-timer.C:
					if !dirty {
						continue
					}
					dirty = false
					runEmbedPass(ctx, gcfg, database)
				}
			}
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "debounce delay in milliseconds")
	return cmd
}

// watchRelevant filters events down to writes against the database or a
// JSON file (roster edits). WAL checkpoints touch -wal/-shm constantly;
// only the main db file and .json files matter.
func watchRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".db") || strings.HasSuffix(name, ".db-wal") ||
		strings.HasSuffix(name, ".json")
}

func runEmbedPass(ctx context.Context, cfg config.GlobalConfig, database *db.DB) {
	n, err := embedMissing(ctx, cfg, database, false, false)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Embed pass failed: %v\n", err)
	case n > 0:
		fmt.Printf("[%s] embedded %d new review(s)\n", time.Now().Format("15:04:05"), n)
	}
}
