// Package mcp exposes the recommender over the Model Context Protocol so AI
// assistants can query college rankings and file reviews as tools.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ratemycollege/ratemy/internal/adapter"
	"github.com/ratemycollege/ratemy/internal/college"
	"github.com/ratemycollege/ratemy/internal/config"
	"github.com/ratemycollege/ratemy/internal/db"
	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
)

// Server wires the review store and scoring engine into MCP tools.
type Server struct {
	root    string
	cfg     config.GlobalConfig
	store   *review.Store
	vectors *review.VectorStore
	roster  []college.College

	engineOnce sync.Once
	engine     *recommend.Engine
	engineErr  error
}

// NewServer opens the database under root and prepares the tool server.
func NewServer(root string) (*Server, func(), error) {
	cfg, _ := config.Load(root)

	database, err := db.OpenWithDimension(config.DBPath(root), cfg.Embedding.Dimension)
	if err != nil {
		return nil, nil, fmt.Errorf("mcp: open database: %w", err)
	}

	dataCfg, _ := config.LoadData(root)
	roster, err := college.Load(dataCfg.RosterPath)
	if err != nil {
		roster = college.DefaultRoster()
	}

	s := &Server{
		root:    root,
		cfg:     cfg,
		store:   review.NewStore(database),
		vectors: review.NewVectorStore(database),
		roster:  roster,
	}
	return s, func() { database.Close() }, nil
}

// getEngine lazily constructs the scoring engine; anchor embedding happens on
// first use so tools that never rank don't need a working embedder.
func (s *Server) getEngine(ctx context.Context) (*recommend.Engine, error) {
	s.engineOnce.Do(func() {
		embedder, err := buildEmbedder(s.cfg)
		if err != nil {
			s.engineErr = err
			return
		}
		s.engine, s.engineErr = recommend.NewEngine(ctx, embedder, nil, recommend.Options{
			TopN:         s.cfg.Recommend.TopN,
			MinThreshold: s.cfg.Recommend.MinThreshold,
			Alpha:        s.cfg.Recommend.Alpha,
			KeywordBoost: s.cfg.Recommend.KeywordBoost,
			WhyTags:      s.cfg.Recommend.WhyTags,
		})
	})
	return s.engine, s.engineErr
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

// Serve registers the tools and blocks serving MCP over stdio.
func (s *Server) Serve(version string) error {
	srv := server.NewMCPServer("ratemy", version)

	srv.AddTool(mcp.NewTool("recommend_colleges",
		mcp.WithDescription("Rank colleges against a free-text preference query. Returns inferred category weights and a scored, explainable ranking."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What the student cares about, in their own words")),
		mcp.WithString("prefer", mcp.Description("Comma-separated categories to boost (study, social, clubs, opportunities, food)")),
	), s.handleRecommend)

	srv.AddTool(mcp.NewTool("add_review",
		mcp.WithDescription("Add a review for a college. Ratings are 1-10; omit a rating to leave that category unrated."),
		mcp.WithString("college", mcp.Required(), mcp.Description("College ID (e.g. trinity, innis, uc)")),
		mcp.WithString("user", mcp.Required(), mcp.Description("Reviewer display name")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Review text")),
		mcp.WithNumber("study", mcp.Description("Study rating 1-10")),
		mcp.WithNumber("social", mcp.Description("Social rating 1-10")),
		mcp.WithNumber("clubs", mcp.Description("Clubs rating 1-10")),
		mcp.WithNumber("opportunities", mcp.Description("Opportunities rating 1-10")),
		mcp.WithNumber("food", mcp.Description("Food rating 1-10")),
	), s.handleAddReview)

	srv.AddTool(mcp.NewTool("college_stats",
		mcp.WithDescription("Per-college rating aggregates and trending tags across all reviews."),
	), s.handleCollegeStats)

	return server.ServeStdio(srv)
}
