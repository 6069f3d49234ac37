package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ratemycollege/ratemy/internal/adapter"
	"github.com/ratemycollege/ratemy/internal/college"
	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/recommend"
)

// findRoot locates the data root: the first directory at or above the
// working directory containing .ratemy/. Falls back to the working
// directory itself.
func findRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	dir, _ := filepath.Abs(cwd)
	for {
		if _, err := os.Stat(filepath.Join(dir, ".ratemy")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd, nil
}

// ensureInitialized checks that the data root has been initialized
// (.ratemy/ratemy.db exists) and returns the database path.
func ensureInitialized(root string) (string, error) {
	dbPath := config.DBPath(root)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("ratemy not initialized. Run `ratemy init` first")
	}
	return dbPath, nil
}

// loadRoster returns the roster for the data root, honoring a configured
// roster file and falling back to the built-in one.
func loadRoster(root string) []college.College {
	dataCfg, _ := config.LoadData(root)
	roster, err := college.Load(dataCfg.RosterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using built-in roster\n", err)
		return college.DefaultRoster()
	}
	return roster
}

// buildEmbedder constructs the configured embedding adapter.
func buildEmbedder(cfg config.GlobalConfig) (adapter.Embedder, error) {
	key := ""
	switch cfg.DefaultEmbedder {
	case adapter.ProviderOpenAI:
		key = cfg.Keys.OpenAI
	case adapter.ProviderGemini:
		key = cfg.Keys.Gemini
	}
	return adapter.New(cfg.DefaultEmbedder, cfg.Ollama.EmbedModel, key, cfg.Ollama.Host)
}

// buildLLM constructs the configured completion adapter (for LLM-backed tag
// suggestions).
func buildLLM(cfg config.GlobalConfig) (adapter.LLMAdapter, error) {
	key := ""
	switch cfg.DefaultLLM {
	case adapter.ProviderClaude:
		key = cfg.Keys.Anthropic
	case adapter.ProviderOpenAI:
		key = cfg.Keys.OpenAI
	case adapter.ProviderGemini:
		key = cfg.Keys.Gemini
	}
	return adapter.New(cfg.DefaultLLM, cfg.Ollama.EmbedModel, key, cfg.Ollama.Host)
}

// buildEngine constructs the scoring engine from config, embedding the
// anchor vocabulary once.
func buildEngine(ctx context.Context, cfg config.GlobalConfig, cache *recommend.TagVectorCache) (*recommend.Engine, error) {
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(ctx, embedder, cache, recommend.Options{
		TopN:         cfg.Recommend.TopN,
		MinThreshold: cfg.Recommend.MinThreshold,
		Alpha:        cfg.Recommend.Alpha,
		KeywordBoost: cfg.Recommend.KeywordBoost,
		WhyTags:      cfg.Recommend.WhyTags,
	})
}

// isTerminal reports whether stderr is a TTY; progress spinners are
// suppressed when output is redirected.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
