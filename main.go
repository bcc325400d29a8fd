package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"bestrate/config"
	"bestrate/models"
	"bestrate/scraper"
	"bestrate/scraper/amazon"
	"bestrate/scraper/document"
	"bestrate/services"
	"bestrate/storage"
	"bestrate/utils"
)

func main() {
	app := &cli.App{
		Name:      "bestrate",
		Usage:     "rank search result listings by price, rating and delivery date",
		ArgsUsage: "[search-page.html | https://search-url | -]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "print the full ranked table",
				EnvVars: []string{"DEBUG"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bestrate: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := utils.NewLoggerTo(os.Stderr, cfg.LogLevel)
	if cfg.Debug {
		logger.SetLevel("debug")
	}

	extractor, err := services.NewExtractor(cfg.Origin, cfg.ReferenceYear, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	collector, err := newCollector(cfg, c.Args().Slice(), logger)
	if err != nil {
		return err
	}
	rawListings, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect listings: %w", err)
	}
	logger.Info("Collected %d raw listings", len(rawListings))

	ranking := services.NewPipeline(extractor, logger).Run(rawListings)

	services.NewReporter(os.Stdout).Print(ranking, cfg.Debug)

	if cfg.CSVOutputPath != "" {
		if err := exportCSV(cfg.CSVOutputPath, ranking); err != nil {
			logger.Error("CSV export failed: %v", err)
		} else {
			logger.Info("Ranked listings saved to %s", cfg.CSVOutputPath)
		}
	}
	return nil
}

// newCollector picks the live browser collector for search URLs and the
// saved page collector for files or stdin.
func newCollector(cfg *config.Config, sources []string, logger *utils.Logger) (scraper.Collector, error) {
	urls := 0
	for _, s := range sources {
		if isURL(s) {
			urls++
		}
	}

	switch {
	case urls == 0:
		return document.New(sources, os.Stdin, logger), nil
	case urls == len(sources):
		return amazon.New(cfg, sources, logger), nil
	default:
		return nil, fmt.Errorf("sources must be all URLs or all files, got %d URLs among %d sources", urls, len(sources))
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func exportCSV(path string, ranking *models.Ranking) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.WriteRanked(ranking)
}
