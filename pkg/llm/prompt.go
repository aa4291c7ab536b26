package llm

import (
	"fmt"
	"strings"
)

const (
	BiasMaxTokens         = 2000
	ComparisonMaxTokens   = 3000
	IllustrativeMaxTokens = 3000
)

const biasPromptTemplate = `Analyze the following news article for political bias and provide a comprehensive evaluation. The article is delimited by triple backticks.

` + "```" + `
%s
` + "```" + `

Provide your analysis in JSON format with the following fields:
- title: The title of the article (if not obvious, make a reasonable guess)
- biasScore: A number from 0 to 100 on a single political scale where 0 is strongly conservative, 50 is neutral and 100 is strongly liberal
- politicalLeaning: One of "Conservative", "Liberal", or "Centrist"
- emotionalLanguage: One of "Low", "Moderate", or "High"
- factualReporting: One of "Low", "Moderate", or "High"
- biasAnalysis: A 2-3 paragraph explanation of the bias you detected and why
- neutralText: A complete rewrite of the ENTIRE article in neutral, objective language. Keep every fact and remove loaded language and partisan framing.
- biasedPhrases: An array of objects with "text" (the biased phrase) and "explanation" (why it is biased)
- topics: An object with "main" (the primary topic) and "related" (an array of related topics like "Politics", "Economy", "Crime")
- multidimensionalAnalysis: An object with numeric scores from 0-100 for these dimensions:
    * bias: Overall bias level (0=unbiased, 100=extremely biased)
    * emotional: Use of emotional language (0=purely factual, 100=highly emotional)
    * factual: Factual accuracy (0=opinion-based, 100=strictly factual)
    * political: Political slant (0=no political angle, 100=heavily political)
    * neutralLanguage: Use of neutral language (0=heavily loaded language, 100=completely neutral)

Look for loaded language, emotional appeals, opinion presented as fact, selective facts, framing and labeling. Judge the overall tone and presentation, not just individual words.

The neutralText field must contain a COMPLETE rewrite of the entire article, not a portion of it.`

const comparisonPromptTemplate = `Find articles about the EXACT SAME news event or story across different sources, and compare their bias.

Below are headlines and excerpts from several news sources on the topic "%s". Your task is to:

1. Identify which sources are covering the EXACT SAME specific news event or story
2. For those sources, give a bias score from 0 to 100 on a single political scale where 0 is strongly conservative, 50 is neutral and 100 is strongly liberal
3. Give a one-sentence explanation of the political leaning and how it shaped the coverage

Articles by source:
%s
Respond with a JSON object holding a "results" array. Each entry describes one source covering the shared story:
- source: string (news source name)
- headline: string (the actual headline)
- biasScore: number (0-100)
- politicalLeaning: string (one of "Conservative", "Liberal", "Moderate Conservative", "Moderate Liberal", or "Centrist")
- explanation: string (one sentence)
- keyNarrative: string (the angle the source takes on the story)
- contentAnalysis: array of short strings (notable framing choices, word choices or omissions)

Only include sources covering the EXACT SAME news event. Leave out sources that cover a different story or have no article.`

const illustrativePromptTemplate = `Live coverage for the topic "%s" could not be matched across outlets. Produce an ILLUSTRATIVE comparison showing how each of these outlets would typically frame a story on this topic, based on their known editorial positions: %s.

Use a single political scale for biasScore where 0 is strongly conservative, 50 is neutral and 100 is strongly liberal.

Respond with a JSON object holding a "results" array with one entry per outlet:
- source: string (the outlet name exactly as given)
- headline: string (a plausible headline)
- biasScore: number (0-100)
- politicalLeaning: string (one of "Conservative", "Liberal", "Moderate Conservative", "Moderate Liberal", or "Centrist")
- explanation: string (one sentence on the outlet's typical slant)
- keyNarrative: string (the angle the outlet would likely take)
- contentAnalysis: array of short strings (typical framing choices)`

// CoverageInput is the best search hit for one outlet. Found is false when the
// outlet returned nothing.
type CoverageInput struct {
	Source      string
	Found       bool
	Headline    string
	PublishedAt string
	Description string
	Content     string
}

func BuildBiasPrompt(content string) string {
	return fmt.Sprintf(biasPromptTemplate, content)
}

func BuildComparisonPrompt(topic string, coverage []CoverageInput) string {
	return fmt.Sprintf(comparisonPromptTemplate, topic, formatCoverage(coverage))
}

func BuildIllustrativePrompt(topic string, sources []string) string {
	return fmt.Sprintf(illustrativePromptTemplate, topic, strings.Join(sources, ", "))
}
