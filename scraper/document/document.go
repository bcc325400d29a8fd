// Package document collects listings from saved search result pages.
package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"

	"bestrate/models"
	"bestrate/scraper"
	"bestrate/utils"
)

// StdinPath stands for standard input in a list of paths.
const StdinPath = "-"

// Collector reads listings from HTML files in the order given.
type Collector struct {
	paths  []string
	stdin  io.Reader
	logger *utils.Logger
}

// New creates a Collector over paths. An empty list reads stdin.
func New(paths []string, stdin io.Reader, logger *utils.Logger) *Collector {
	if len(paths) == 0 {
		paths = []string{StdinPath}
	}
	return &Collector{paths: paths, stdin: stdin, logger: logger}
}

// Collect parses every page and concatenates their listings.
func (c *Collector) Collect(ctx context.Context) ([]*models.RawListing, error) {
	var all []*models.RawListing
	for _, path := range c.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		listings, err := c.collectPath(path)
		if err != nil {
			return nil, err
		}
		c.logger.Info("[document] %s: %d listings", displayName(path), len(listings))
		all = append(all, listings...)
	}
	return all, nil
}

func (c *Collector) collectPath(path string) ([]*models.RawListing, error) {
	if path == StdinPath {
		return Parse(c.stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %q: %w", path, err)
	}
	defer f.Close()

	listings, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("document: %q: %w", path, err)
	}
	return listings, nil
}

// Parse extracts one RawListing per search result that has a card.
func Parse(r io.Reader) ([]*models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse html: %w", err)
	}

	listings := make([]*models.RawListing, 0)
	doc.Find(scraper.ResultSelector).Each(func(_ int, result *goquery.Selection) {
		card := result.Find(scraper.CardSelector).First()
		if card.Length() == 0 {
			return
		}
		href, _ := card.Find(scraper.LinkSelector).First().Attr("href")
		listings = append(listings, &models.RawListing{
			Content: scraper.CleanContent(card.Text()),
			URL:     href,
		})
	})
	return listings, nil
}

func displayName(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	return path
}
