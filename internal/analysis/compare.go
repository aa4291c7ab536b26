package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/metrics"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/llm"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/news"
)

// MinSharedStoryOutlets is how many outlets must cover one story before a live
// comparison is returned.
const MinSharedStoryOutlets = 3

// CompareSources rates how each outlet covers topic. When live coverage is
// missing or too thin the results are illustrative and marked as such.
func (a *Analyzer) CompareSources(ctx context.Context, topic string, sources []string) ([]model.ComparisonResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, &ValidationError{Message: "Topic is required"}
	}

	sources = normalizeSources(sources)
	if len(sources) == 0 {
		sources = news.DefaultOutlets()
	}

	coverage, found := a.gatherCoverage(ctx, topic, sources)
	metrics.SearchHits.Observe(float64(found))

	if found == 0 {
		slog.Warn("no articles found for comparison, using illustrative results", "topic", topic)
		return a.illustrative(ctx, topic, sources)
	}

	raw, err := a.complete(ctx, "comparison", llm.BuildComparisonPrompt(topic, coverage), llm.ComparisonMaxTokens)
	if err != nil {
		return nil, &UpstreamError{Op: "compare sources", Err: err}
	}

	entries, err := llm.ParseComparisonResponse(raw)
	if err != nil {
		return nil, &UpstreamError{Op: "compare sources", Err: err}
	}

	if len(entries) < MinSharedStoryOutlets {
		slog.Warn("too few outlets share one story, using illustrative results", "topic", topic, "matched", len(entries))
		return a.illustrative(ctx, topic, sources)
	}

	metrics.Comparisons.WithLabelValues("live").Inc()
	return toResults(entries, false), nil
}

func (a *Analyzer) gatherCoverage(ctx context.Context, topic string, sources []string) ([]llm.CoverageInput, int) {
	if a.searcher == nil {
		return nil, 0
	}

	bySource := news.FetchFromSources(ctx, a.searcher, topic, sources, a.concurrency)

	coverage := make([]llm.CoverageInput, 0, len(sources))
	found := 0
	for _, source := range sources {
		articles := bySource[source]
		found += len(articles)

		if len(articles) == 0 {
			coverage = append(coverage, llm.CoverageInput{Source: source})
			continue
		}

		top := articles[0]
		in := llm.CoverageInput{
			Source:      source,
			Found:       true,
			Headline:    top.Title,
			Description: top.Description,
			Content:     top.Content,
		}
		if !top.PublishedAt.IsZero() {
			in.PublishedAt = top.PublishedAt.Format(time.RFC3339)
		}
		coverage = append(coverage, in)
	}
	return coverage, found
}

func (a *Analyzer) illustrative(ctx context.Context, topic string, sources []string) ([]model.ComparisonResult, error) {
	raw, err := a.complete(ctx, "illustrative", llm.BuildIllustrativePrompt(topic, sources), llm.IllustrativeMaxTokens)
	if err != nil {
		return nil, &UpstreamError{Op: "build illustrative comparison", Err: err}
	}

	entries, err := llm.ParseComparisonResponse(raw)
	if err != nil {
		return nil, &UpstreamError{Op: "build illustrative comparison", Err: err}
	}
	if len(entries) == 0 {
		return nil, &UpstreamError{Op: "build illustrative comparison", Err: errors.New("no results returned")}
	}

	metrics.Comparisons.WithLabelValues("illustrative").Inc()
	return toResults(entries, true), nil
}

func toResults(entries []llm.ComparisonEntry, illustrative bool) []model.ComparisonResult {
	results := make([]model.ComparisonResult, 0, len(entries))
	for _, e := range entries {
		score := model.ClampScore(llm.Score(e.BiasScore, model.NeutralBiasScore))

		r := model.ComparisonResult{
			Source:           e.Source,
			Headline:         e.Headline,
			BiasScore:        score,
			BiasLabel:        model.BiasLabel(score),
			PoliticalLeaning: orDefault(e.PoliticalLeaning, model.DefaultLeaning),
			Explanation:      e.Explanation,
			KeyNarrative:     e.KeyNarrative,
			ContentAnalysis:  append([]string{}, e.ContentAnalysis...),
			Illustrative:     illustrative,
		}
		if illustrative && !strings.HasPrefix(r.Explanation, model.IllustrativePrefix) {
			r.Explanation = model.IllustrativePrefix + r.Explanation
		}

		results = append(results, r)
	}
	return results
}

// normalizeSources trims names and drops blanks and case-insensitive duplicates.
func normalizeSources(sources []string) []string {
	seen := make(map[string]bool, len(sources))
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
