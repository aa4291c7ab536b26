package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/metrics"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/extract"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/llm"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/news"
)

const defaultSearchConcurrency = 4

// PageExtractor fetches a URL and returns its readable text.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (*extract.Result, error)
}

type Request struct {
	URL  string
	Text string
}

type Analyzer struct {
	completer   llm.Completer
	extractor   PageExtractor
	searcher    news.Searcher
	concurrency int
}

// New builds an Analyzer. searcher may be nil, in which case every
// comparison is illustrative.
func New(completer llm.Completer, extractor PageExtractor, searcher news.Searcher, concurrency int) *Analyzer {
	if concurrency <= 0 {
		concurrency = defaultSearchConcurrency
	}
	return &Analyzer{
		completer:   completer,
		extractor:   extractor,
		searcher:    searcher,
		concurrency: concurrency,
	}
}

// Analyze scores one article given by URL or pasted text. The result is ready
// for storage; nothing is persisted here.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.NewArticle, error) {
	pageURL := strings.TrimSpace(req.URL)
	text := strings.TrimSpace(req.Text)

	var title, source, content string
	switch {
	case pageURL != "":
		page, err := a.extractor.Extract(ctx, pageURL)
		if err != nil {
			return nil, &ExtractionError{URL: pageURL, Err: err}
		}
		metrics.Extractions.WithLabelValues(page.Method).Inc()

		if strings.TrimSpace(page.Content) == "" {
			return nil, &ExtractionError{URL: pageURL, Err: errors.New("page has no readable text")}
		}
		title, source, content = page.Title, page.Source, page.Content
	case text != "":
		title, content = titleFromText(text), text
	default:
		return nil, &ValidationError{Message: "Either URL or text must be provided"}
	}

	raw, err := a.complete(ctx, "bias", llm.BuildBiasPrompt(content), llm.BiasMaxTokens)
	if err != nil {
		return nil, &UpstreamError{Op: "analyze article", Err: err}
	}

	parsed, err := llm.ParseBiasResponse(raw)
	if err != nil {
		return nil, &UpstreamError{Op: "analyze article", Err: err}
	}

	if parsed.Title != "" {
		title = parsed.Title
	}

	article := &model.NewArticle{
		Title:             title,
		Source:            source,
		URL:               pageURL,
		Content:           strings.Join(strings.Fields(content), " "),
		BiasScore:         model.ClampScore(llm.Score(parsed.BiasScore, model.NeutralBiasScore)),
		BiasAnalysis:      parsed.BiasAnalysis,
		NeutralText:       parsed.NeutralText,
		PoliticalLeaning:  orDefault(parsed.PoliticalLeaning, model.DefaultLeaning),
		EmotionalLanguage: orDefault(parsed.EmotionalLanguage, model.DefaultIntensity),
		FactualReporting:  orDefault(parsed.FactualReporting, model.DefaultIntensity),
		Topics:            topicsOrDefault(parsed.Topics),
	}
	article.MultidimensionalAnalysis = dimensionsOrDefault(parsed.MultidimensionalAnalysis)

	if parsed.BiasedPhrases != nil {
		article.BiasedPhrases = make([]model.BiasedPhrase, 0, len(parsed.BiasedPhrases))
		for _, p := range parsed.BiasedPhrases {
			article.BiasedPhrases = append(article.BiasedPhrases, model.BiasedPhrase{Text: p.Text, Explanation: p.Explanation})
		}
	}

	slog.Info("article analyzed", "title", article.Title, "source", source, "biasScore", article.BiasScore, "provider", a.completer.Name())
	return article, nil
}

func (a *Analyzer) complete(ctx context.Context, kind, prompt string, maxTokens int) (string, error) {
	start := time.Now()
	raw, err := a.completer.Complete(ctx, prompt, maxTokens)
	metrics.RecordCompletion(a.completer.Name(), kind, err, time.Since(start))
	return raw, err
}

// titleFromText uses the first line of pasted text as its title when it has a
// plausible headline length.
func titleFromText(text string) string {
	first := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if n := len([]rune(first)); n > 10 && n < 200 {
		return first
	}
	return model.UntitledArticle
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func topicsOrDefault(t *llm.TopicSet) *model.Topics {
	if t == nil {
		return &model.Topics{Main: model.GeneralTopic, Related: []string{}}
	}

	related := []string{}
	related = append(related, t.Related...)
	return &model.Topics{Main: orDefault(t.Main, model.GeneralTopic), Related: related}
}

func dimensionsOrDefault(d *llm.Dimensions) *model.MultidimensionalAnalysis {
	if d == nil {
		d = &llm.Dimensions{}
	}

	dim := func(v *float64) int {
		return model.ClampScore(llm.Score(v, model.NeutralBiasScore))
	}

	return &model.MultidimensionalAnalysis{
		Bias:            dim(d.Bias),
		Emotional:       dim(d.Emotional),
		Factual:         dim(d.Factual),
		Political:       dim(d.Political),
		NeutralLanguage: dim(d.NeutralLanguage),
	}
}
