package llm

import (
	"fmt"
	"strings"
)

const maxExcerptChars = 500

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// excerpt joins description and content and keeps the first maxExcerptChars runes.
func excerpt(description, content string) string {
	return truncate(strings.TrimSpace(description+" "+content), maxExcerptChars)
}

func formatCoverage(coverage []CoverageInput) string {
	var sb strings.Builder
	for _, c := range coverage {
		if !c.Found {
			sb.WriteString(fmt.Sprintf("%s: No articles found\n\n", c.Source))
			continue
		}

		published := c.PublishedAt
		if published == "" {
			published = "Unknown date"
		}

		sb.WriteString(fmt.Sprintf("%s:\n", c.Source))
		sb.WriteString(fmt.Sprintf("    Headline: %s\n", c.Headline))
		sb.WriteString(fmt.Sprintf("    Published: %s\n", published))
		sb.WriteString(fmt.Sprintf("    Content: %s...\n", excerpt(c.Description, c.Content)))
		sb.WriteString("\n")
	}
	return sb.String()
}
