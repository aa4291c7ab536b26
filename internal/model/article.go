package model

import "time"

const (
	UntitledArticle  = "Untitled Article"
	NeutralBiasScore = 50
	DefaultLeaning   = "Centrist"
	DefaultIntensity = "Moderate"
	GeneralTopic     = "General"

	// MaxStoredContent caps the article body kept in storage.
	MaxStoredContent = 5000
)

type BiasedPhrase struct {
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

type Topics struct {
	Main    string   `json:"main"`
	Related []string `json:"related"`
}

type MultidimensionalAnalysis struct {
	Bias            int `json:"bias"`
	Emotional       int `json:"emotional"`
	Factual         int `json:"factual"`
	Political       int `json:"political"`
	NeutralLanguage int `json:"neutralLanguage"`
}

// NewArticle is what the analyzer hands to storage. Zero values mean "not set".
type NewArticle struct {
	Title                    string
	Source                   string
	URL                      string
	Content                  string
	BiasScore                int
	BiasAnalysis             string
	NeutralText              string
	BiasedPhrases            []BiasedPhrase
	PoliticalLeaning         string
	EmotionalLanguage        string
	FactualReporting         string
	Topics                   *Topics
	MultidimensionalAnalysis *MultidimensionalAnalysis
}

// Article is a stored analysis. Optional fields are pointers or nil slices so
// they always serialize as null instead of being dropped.
type Article struct {
	ID                       int64                     `json:"id"`
	Title                    string                    `json:"title"`
	Source                   *string                   `json:"source"`
	URL                      *string                   `json:"url"`
	Content                  string                    `json:"content"`
	BiasScore                int                       `json:"biasScore"`
	BiasLabel                string                    `json:"biasLabel"`
	BiasAnalysis             *string                   `json:"biasAnalysis"`
	NeutralText              *string                   `json:"neutralText"`
	BiasedPhrases            []BiasedPhrase            `json:"biasedPhrases"`
	PoliticalLeaning         *string                   `json:"politicalLeaning"`
	EmotionalLanguage        *string                   `json:"emotionalLanguage"`
	FactualReporting         *string                   `json:"factualReporting"`
	Topics                   *Topics                   `json:"topics"`
	MultidimensionalAnalysis *MultidimensionalAnalysis `json:"multidimensionalAnalysis"`
	AnalyzedAt               time.Time                 `json:"analyzedAt"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type NewUser struct {
	Username string
	Password string
}

// BuildArticle turns an insert request into a full record. Every optional field
// is set explicitly, content is capped and the bias label is derived here so
// each storage backend produces identical records.
func BuildArticle(id int64, in NewArticle, analyzedAt time.Time) Article {
	a := Article{
		ID:                id,
		Title:             in.Title,
		Source:            optional(in.Source),
		URL:               optional(in.URL),
		Content:           CapContent(in.Content, MaxStoredContent),
		BiasScore:         ClampScore(in.BiasScore),
		BiasAnalysis:      optional(in.BiasAnalysis),
		NeutralText:       optional(in.NeutralText),
		PoliticalLeaning:  optional(in.PoliticalLeaning),
		EmotionalLanguage: optional(in.EmotionalLanguage),
		FactualReporting:  optional(in.FactualReporting),
		AnalyzedAt:        analyzedAt,
	}
	a.BiasLabel = BiasLabel(a.BiasScore)

	if in.BiasedPhrases != nil {
		a.BiasedPhrases = append([]BiasedPhrase{}, in.BiasedPhrases...)
	}

	if in.Topics != nil {
		related := []string{}
		related = append(related, in.Topics.Related...)
		a.Topics = &Topics{Main: in.Topics.Main, Related: related}
	}

	if in.MultidimensionalAnalysis != nil {
		m := *in.MultidimensionalAnalysis
		a.MultidimensionalAnalysis = &m
	}

	return a
}

// CapContent truncates s to max runes and marks the cut with "...".
func CapContent(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
