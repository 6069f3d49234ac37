package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultGlobal(t *testing.T) {
	cfg := DefaultGlobal()

	if cfg.DefaultEmbedder != "ollama" {
		t.Errorf("default embedder: got %q", cfg.DefaultEmbedder)
	}
	if cfg.Recommend.TopN != 3 {
		t.Errorf("recommend top_n: got %d, want 3", cfg.Recommend.TopN)
	}
	if cfg.Recommend.MinThreshold != 0.12 {
		t.Errorf("min_threshold: got %f, want 0.12", cfg.Recommend.MinThreshold)
	}
	if cfg.Recommend.Alpha != 0.6 {
		t.Errorf("alpha: got %f, want 0.6", cfg.Recommend.Alpha)
	}
	if cfg.Recommend.KeywordBoost != 0.15 {
		t.Errorf("keyword_boost: got %f, want 0.15", cfg.Recommend.KeywordBoost)
	}
	if cfg.Embedding.Dimension != 768 {
		t.Errorf("embedding dimension: got %d, want 768", cfg.Embedding.Dimension)
	}
}

func TestDataConfig_MissingFile(t *testing.T) {
	cfg, err := LoadData(t.TempDir())
	if err != nil {
		t.Fatalf("LoadData on empty root: %v", err)
	}
	if cfg.RosterPath != "" || cfg.DefaultEmbedder != "" {
		t.Errorf("expected zero config for a fresh root, got %+v", cfg)
	}
}

func TestDataConfig_RoundTrip(t *testing.T) {
	root := t.TempDir()

	want := DataConfig{
		DefaultEmbedder: "openai",
		RosterPath:      "/tmp/colleges.json",
	}
	if err := SaveData(root, want); err != nil {
		t.Fatalf("SaveData: %v", err)
	}

	got, err := LoadData(root)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoad_DataOverridesEmbedder(t *testing.T) {
	root := t.TempDir()
	if err := SaveData(root, DataConfig{DefaultEmbedder: "openai"}); err != nil {
		t.Fatalf("SaveData: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultEmbedder != "openai" {
		t.Errorf("data config should override the embedder: got %q", cfg.DefaultEmbedder)
	}
}

func TestPaths(t *testing.T) {
	if got := DBPath("/data"); got != filepath.Join("/data", ".ratemy", "ratemy.db") {
		t.Errorf("DBPath: got %q", got)
	}
	if got := DataDirPath("/data"); got != filepath.Join("/data", ".ratemy") {
		t.Errorf("DataDirPath: got %q", got)
	}
}
