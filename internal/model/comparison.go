package model

const IllustrativePrefix = "[Illustrative] "

// ComparisonResult is one outlet's coverage of a shared story. It is never stored.
type ComparisonResult struct {
	Source           string   `json:"source"`
	Headline         string   `json:"headline"`
	BiasScore        int      `json:"biasScore"`
	BiasLabel        string   `json:"biasLabel"`
	PoliticalLeaning string   `json:"politicalLeaning"`
	Explanation      string   `json:"explanation"`
	KeyNarrative     string   `json:"keyNarrative"`
	ContentAnalysis  []string `json:"contentAnalysis"`
	Illustrative     bool     `json:"illustrative"`
}
