package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/app"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/config"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

const explanationWidth = 80

var (
	topic   string
	sources []string
)

var rootCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare how news outlets cover one topic",
	Long: `Compare searches each outlet for the topic and rates the coverage of the
shared story on the 0-100 bias scale (50 is neutral).

Examples:
  compare --topic "budget talks"
  compare --topic tariffs --source CNN --source "Fox News" --source BBC`,
	RunE: runCompare,
}

func init() {
	rootCmd.Flags().StringVarP(&topic, "topic", "q", "", "Topic to compare (required)")
	rootCmd.Flags().StringSliceVarP(&sources, "source", "s", nil, "Outlet to include (repeatable, defaults to the standard seven)")
	if err := rootCmd.MarkFlagRequired("topic"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking topic flag as required: %v\n", err)
		os.Exit(1)
	}
}

func runCompare(cmd *cobra.Command, _ []string) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	app.SetupLogging(cfg)

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Analyzer.CompareSources(cmd.Context(), topic, sources)
	if err != nil {
		return err
	}

	renderResults(results)
	return nil
}

func renderResults(results []model.ComparisonResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: explanationWidth},
	})

	t.AppendHeader(table.Row{"Source", "Score", "Label", "Headline", "Explanation"})
	illustrative := false
	for _, r := range results {
		t.AppendRow(table.Row{r.Source, r.BiasScore, r.BiasLabel, r.Headline, r.Explanation})
		illustrative = illustrative || r.Illustrative
	}

	footer := fmt.Sprintf("Topic: %s", topic)
	if illustrative {
		footer += " (illustrative)"
	}
	t.AppendFooter(table.Row{"Total", len(results), "", "", footer})
	t.Render()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
