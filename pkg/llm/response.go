package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type Phrase struct {
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

type TopicSet struct {
	Main    string   `json:"main"`
	Related []string `json:"related"`
}

// Dimensions holds the five sub-scores. A nil field was missing from the answer.
type Dimensions struct {
	Bias            *float64 `json:"bias"`
	Emotional       *float64 `json:"emotional"`
	Factual         *float64 `json:"factual"`
	Political       *float64 `json:"political"`
	NeutralLanguage *float64 `json:"neutralLanguage"`
}

// BiasResponse is the decoded answer to BuildBiasPrompt. Nil and empty fields
// were missing; callers apply their own defaults.
type BiasResponse struct {
	Title                    string      `json:"title"`
	BiasScore                *float64    `json:"biasScore"`
	PoliticalLeaning         string      `json:"politicalLeaning"`
	EmotionalLanguage        string      `json:"emotionalLanguage"`
	FactualReporting         string      `json:"factualReporting"`
	BiasAnalysis             string      `json:"biasAnalysis"`
	NeutralText              string      `json:"neutralText"`
	BiasedPhrases            []Phrase    `json:"biasedPhrases"`
	Topics                   *TopicSet   `json:"topics"`
	MultidimensionalAnalysis *Dimensions `json:"multidimensionalAnalysis"`
}

// ComparisonEntry is one outlet in a comparison or illustrative answer.
type ComparisonEntry struct {
	Source           string   `json:"source"`
	Headline         string   `json:"headline"`
	BiasScore        *float64 `json:"biasScore"`
	PoliticalLeaning string   `json:"politicalLeaning"`
	Explanation      string   `json:"explanation"`
	KeyNarrative     string   `json:"keyNarrative"`
	ContentAnalysis  []string `json:"contentAnalysis"`
}

func ParseBiasResponse(raw string) (*BiasResponse, error) {
	content := cleanJSONResponse(raw)

	var parsed BiasResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}
	return &parsed, nil
}

// ParseComparisonResponse accepts {"results": [...]} or a bare array. Entries
// without a source are dropped.
func ParseComparisonResponse(raw string) ([]ComparisonEntry, error) {
	content := cleanJSONResponse(raw)

	var entries []ComparisonEntry
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse comparison array: %w, content: %s", err, content)
		}
	} else {
		var wrapped struct {
			Results *[]ComparisonEntry `json:"results"`
		}
		if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse comparison response: %w, content: %s", err, content)
		}
		if wrapped.Results == nil {
			return nil, fmt.Errorf("unexpected comparison response format, content: %s", content)
		}
		entries = *wrapped.Results
	}

	kept := make([]ComparisonEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Source) == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// Score rounds an optional score into 0..100, returning fallback when it is
// missing.
func Score(v *float64, fallback int) int {
	if v == nil || math.IsNaN(*v) {
		return fallback
	}
	return int(math.Round(math.Min(math.Max(*v, 0), 100)))
}

// cleanJSONResponse strips code fences and any prose around the first JSON
// object or array.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	opener, closer := "{", "}"
	obj := strings.Index(content, "{")
	arr := strings.Index(content, "[")
	if arr >= 0 && (obj < 0 || arr < obj) {
		opener, closer = "[", "]"
	}

	start := strings.Index(content, opener)
	end := strings.LastIndex(content, closer)
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
