package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/app"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/config"
)

var (
	articleURL  string
	articleText string
	textFile    string
)

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one article for political bias and store the result",
	Long: `Analyze runs the same pipeline as POST /api/analyze and prints the stored
article as JSON.

Examples:
  analyze --url https://www.npr.org/2026/02/26/budget-deal
  analyze --file article.txt`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.Flags().StringVarP(&articleURL, "url", "u", "", "Article URL to fetch")
	rootCmd.Flags().StringVarP(&articleText, "text", "t", "", "Article text")
	rootCmd.Flags().StringVarP(&textFile, "file", "f", "", "Read article text from a file")
	rootCmd.MarkFlagsOneRequired("url", "text", "file")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	app.SetupLogging(cfg)

	text := articleText
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", textFile, err)
		}
		text = string(data)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Analyzer.Analyze(cmd.Context(), analysis.Request{URL: articleURL, Text: text})
	if err != nil {
		return err
	}

	article, err := a.Storage.CreateArticle(*result)
	if err != nil {
		return fmt.Errorf("error saving article: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(article)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
