package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ratemycollege/ratemy/internal/recommend"
	"github.com/ratemycollege/ratemy/internal/review"
	"github.com/ratemycollege/ratemy/internal/tags"
)

func (s *Server) handleRecommend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	manual := map[recommend.Category]float64{}
	if prefer := req.GetString("prefer", ""); prefer != "" {
		for _, p := range strings.Split(prefer, ",") {
			cat := recommend.Category(strings.TrimSpace(strings.ToLower(p)))
			if !recommend.ValidCategory(cat) {
				return mcp.NewToolResultError(fmt.Sprintf("unknown category %q (valid: study, social, clubs, opportunities, food)", p)), nil
			}
			manual[cat] += s.cfg.Recommend.ManualBoost
		}
	}

	engine, err := s.getEngine(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedder unavailable: %v", err)), nil
	}

	weights, err := engine.InferWeights(ctx, query, manual)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("infer preferences: %v", err)), nil
	}

	stats, err := review.BuildStats(ctx, s.store, s.roster, engine.TagCache())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build college stats: %v", err)), nil
	}

	ranked, err := engine.RankColleges(ctx, review.Rankable(stats), query, weights)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rank colleges: %v", err)), nil
	}

	out, err := json.MarshalIndent(struct {
		Weights []recommend.CategoryWeight `json:"weights"`
		Ranking []recommend.ScoredCollege  `json:"ranking"`
	}{weights, ranked}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleAddReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collegeID, err := req.RequireString("college")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: college"), nil
	}
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user"), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	r := review.Review{
		CollegeID: strings.ToLower(strings.TrimSpace(collegeID)),
		User:      user,
		Text:      text,
		Tags:      tags.Extract(text, s.cfg.Tags.TopN),
	}
	for _, cat := range recommend.Categories {
		v := req.GetInt(string(cat), -1)
		if v < 1 || v > 10 {
			continue
		}
		r.SetRating(cat, v)
		r.RatedCategories = append(r.RatedCategories, string(cat))
	}

	id, err := s.store.Insert(r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insert review: %v", err)), nil
	}

	// Best-effort embed; ranking works without it.
	s.embedReview(ctx, id, text)

	return mcp.NewToolResultText(fmt.Sprintf("Review %d saved for %s with tags: %s", id, r.CollegeID, strings.Join(r.Tags, ", "))), nil
}

func (s *Server) handleCollegeStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// No tag vectors needed for a numbers-only report.
	stats, err := review.BuildStats(ctx, s.store, s.roster, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build college stats: %v", err)), nil
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// embedReview stores the review embedding, silently skipping on failure.
func (s *Server) embedReview(ctx context.Context, id int64, text string) {
	embedder, err := buildEmbedder(s.cfg)
	if err != nil {
		return
	}
	vecs, err := embedder.Embed(ctx, []string{text})
	if err != nil || len(vecs) == 0 {
		return
	}
	_ = s.vectors.Upsert(id, s.cfg.Ollama.EmbedModel, vecs[0])
}
