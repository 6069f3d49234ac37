// Package config manages global (~/.config/ratemy/config.toml) and
// per-data-dir (.ratemy/config.toml) configuration for RateMy.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GlobalConfig holds user-wide settings.
type GlobalConfig struct {
	DefaultEmbedder string          `toml:"default_embedder"`
	DefaultLLM      string          `toml:"default_llm"`
	Keys            KeysConfig      `toml:"keys"`
	Ollama          OllamaConfig    `toml:"ollama"`
	Recommend       RecommendConfig `toml:"recommend"`
	Embedding       EmbeddingConfig `toml:"embedding"`
	Tags            TagsConfig      `toml:"tags"`
}

type KeysConfig struct {
	Anthropic string `toml:"anthropic"`
	OpenAI    string `toml:"openai"`
	Gemini    string `toml:"gemini"`
}

type OllamaConfig struct {
	Host            string `toml:"host"`
	EmbedModel      string `toml:"embed_model"`
	CompletionModel string `toml:"completion_model"`
}

// RecommendConfig holds the tunables of the preference-inference and
// scoring engine.
type RecommendConfig struct {
	TopN         int     `toml:"top_n"`          // max categories kept after pruning
	MinThreshold float64 `toml:"min_threshold"`  // prune categories scoring below this
	Alpha        float64 `toml:"alpha"`          // ceiling of the tag-similarity bonus
	KeywordBoost float64 `toml:"keyword_boost"`  // bump for an explicit keyword match
	ManualBoost  float64 `toml:"manual_boost"`   // bump per user-selected category
	WhyTags      int     `toml:"why_tags"`       // how many "why this match" tags to show
}

// EmbeddingConfig controls the vector table dimension. It must match the
// embedding model in use; changing it requires re-embedding all reviews.
type EmbeddingConfig struct {
	Dimension int `toml:"dimension"`
}

// TagsConfig controls tag extraction from review text.
type TagsConfig struct {
	TopN            int  `toml:"top_n"`
	UseLLM          bool `toml:"use_llm"`
	MaxPromptTokens int  `toml:"max_prompt_tokens"`
}

// DefaultGlobal returns sensible defaults.
func DefaultGlobal() GlobalConfig {
	return GlobalConfig{
		DefaultEmbedder: "ollama",
		DefaultLLM:      "claude",
		Ollama: OllamaConfig{
			Host:            "http://localhost:11434",
			EmbedModel:      "nomic-embed-text",
			CompletionModel: "llama3.2",
		},
		Recommend: RecommendConfig{
			TopN:         3,
			MinThreshold: 0.12,
			Alpha:        0.6,
			KeywordBoost: 0.15,
			ManualBoost:  0.25,
			WhyTags:      3,
		},
		Embedding: EmbeddingConfig{
			Dimension: 768,
		},
		Tags: TagsConfig{
			TopN:            5,
			UseLLM:          false,
			MaxPromptTokens: 1500,
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ratemy", "config.toml"), nil
}

// LoadGlobal loads the global config, applying defaults for any missing values.
func LoadGlobal() (GlobalConfig, error) {
	cfg := DefaultGlobal()

	path, err := GlobalConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // File does not exist yet; use defaults.
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load global: %w", err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets env vars override config file API keys.
func applyEnvOverrides(cfg *GlobalConfig) {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Keys.Gemini = v
	}
}

// SaveGlobal writes the global config to disk.
func SaveGlobal(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create global config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// DataConfig holds per-data-dir overrides stored in .ratemy/config.toml.
type DataConfig struct {
	DefaultEmbedder string `toml:"default_embedder"`
	RosterPath      string `toml:"roster_path"` // colleges.json override
}

// LoadData loads .ratemy/config.toml from the given data root.
func LoadData(root string) (DataConfig, error) {
	var cfg DataConfig
	path := filepath.Join(root, ".ratemy", "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load data config: %w", err)
	}
	return cfg, nil
}

// SaveData writes the data config to .ratemy/config.toml.
func SaveData(root string, cfg DataConfig) error {
	dir := filepath.Join(root, ".ratemy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: mkdir data dir: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create data config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// DBPath returns the path to the review SQLite database under root.
func DBPath(root string) string {
	return filepath.Join(root, ".ratemy", "ratemy.db")
}

// DataDirPath returns the path to the .ratemy/ directory under root.
func DataDirPath(root string) string {
	return filepath.Join(root, ".ratemy")
}

// Load returns the effective config for a data root (global merged with
// per-data-dir overrides). Convenience wrapper used by CLI commands.
func Load(root string) (GlobalConfig, error) {
	global, err := LoadGlobal()
	if err != nil {
		global = DefaultGlobal()
	}

	data, err := LoadData(root)
	if err == nil && data.DefaultEmbedder != "" {
		global.DefaultEmbedder = data.DefaultEmbedder
	}

	return global, nil
}
