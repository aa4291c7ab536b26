package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/app"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/config"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/news"
)

// fetcher surveys how many articles each default outlet has for the topics in
// FETCH_TOPICS (comma separated) or the command line arguments. With a Redis
// search cache configured this also warms the cache for later comparisons.
func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	app.SetupLogging(cfg)

	topics := os.Args[1:]
	if len(topics) == 0 {
		topics = splitTopics(os.Getenv("FETCH_TOPICS"))
	}
	if len(topics) == 0 {
		slog.Error("no topics given, pass them as arguments or set FETCH_TOPICS")
		return
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error starting app: %v", err)
	}
	defer a.Close()

	outlets := news.DefaultOutlets()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	header := table.Row{"Topic"}
	for _, o := range outlets {
		header = append(header, o)
	}
	t.AppendHeader(header)

	for _, topic := range topics {
		results := news.FetchFromSources(ctx, a.Searcher, topic, outlets, cfg.SearchConcurrency)

		row := table.Row{topic}
		total := 0
		for _, o := range outlets {
			row = append(row, len(results[o]))
			total += len(results[o])
		}
		t.AppendRow(row)

		slog.Info("topic surveyed", "topic", topic, "searcher", a.Searcher.Name(), "articles", total)
	}

	t.Render()
}

func splitTopics(s string) []string {
	var topics []string
	for _, topic := range strings.Split(s, ",") {
		if topic = strings.TrimSpace(topic); topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}
