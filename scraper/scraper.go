// Package scraper holds what the listing collectors share: the search
// result selectors and the card text cleanup.
package scraper

import (
	"context"
	"strings"

	"bestrate/models"
)

const (
	// ResultSelector matches one search result block.
	ResultSelector = `[data-component-type="s-search-result"]`
	// CardSelector matches the card inside a result block that holds the
	// text and the product link.
	CardSelector = `.s-card-container`
	// LinkSelector matches the product link inside a card.
	LinkSelector = `a`
)

// Collector yields raw listings in page order.
type Collector interface {
	Collect(ctx context.Context) ([]*models.RawListing, error)
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// CleanContent flattens card text onto one line and trims it.
func CleanContent(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}
