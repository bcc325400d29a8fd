// Package amazon collects listings from live search result pages with a
// headless browser.
package amazon

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"bestrate/config"
	"bestrate/models"
	"bestrate/scraper"
	"bestrate/utils"
)

// cardScript runs in the page and returns the text and link of every
// search result card, in document order.
var cardScript = fmt.Sprintf(`
	(function() {
		var results = [];
		var blocks = document.querySelectorAll(%q);
		for (var i = 0; i < blocks.length; i++) {
			var card = blocks[i].querySelector(%q);
			if (!card) continue;
			var link = card.querySelector(%q);
			results.push({
				content: card.textContent || '',
				href:    (link && link.getAttribute('href')) || ''
			});
		}
		return results;
	})()
`, scraper.ResultSelector, scraper.CardSelector, scraper.LinkSelector)

type cardData struct {
	Content string `json:"content"`
	Href    string `json:"href"`
}

// Scraper loads search result pages and collects their cards.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	urls   []string
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a Scraper over the given search page URLs.
func New(cfg *config.Config, urls []string, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		urls:   urls,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Collect loads every page and returns their listings in page order.
// A card link already seen on an earlier page is skipped.
func (s *Scraper) Collect(ctx context.Context) ([]*models.RawListing, error) {
	chromeBin := s.findChromeBinary()
	s.logger.Info("[amazon] Scraping %d pages with browser binary: %s", len(s.urls), chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Start the browser once so page tabs share it
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("amazon: start browser: %w", err)
	}

	pages := make([][]*models.RawListing, len(s.urls))
	errs := make([]error, len(s.urls))

	var mu sync.Mutex
	for i, pageURL := range s.urls {
		i, pageURL := i, pageURL
		s.pool.Submit(func() {
			listings, err := s.scrapePage(browserCtx, pageURL, i+1)

			mu.Lock()
			defer mu.Unlock()
			pages[i], errs[i] = listings, err
		})
	}
	s.pool.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("amazon: page %d: %w", i+1, err)
		}
	}

	all := mergePages(pages, s.logger)
	s.logger.Info("[amazon] Scrape complete, total raw listings: %d", len(all))
	return all, nil
}

// mergePages concatenates pages in order. A card whose link already
// appeared on an earlier page is skipped. Repeats within one page are kept.
func mergePages(pages [][]*models.RawListing, logger *utils.Logger) []*models.RawListing {
	seen := utils.NewURLSet()
	var all []*models.RawListing
	for _, listings := range pages {
		var pageURLs []string
		for _, l := range listings {
			if l.URL != "" && seen.Contains(l.URL) {
				logger.Debug("[amazon] Skipping duplicate from an earlier page: %s", l.URL)
				continue
			}
			all = append(all, l)
			pageURLs = append(pageURLs, l.URL)
		}
		for _, u := range pageURLs {
			if u != "" {
				seen.Add(u)
			}
		}
	}
	return all
}

// scrapePage loads one search results page and reads its cards.
func (s *Scraper) scrapePage(browserCtx context.Context, pageURL string, pageNum int) ([]*models.RawListing, error) {
	var listings []*models.RawListing

	err := s.retry.Do(browserCtx, fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, s.cfg.PageTimeout())
		defer cancelTimeout()

		var cards []cardData
		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady(scraper.ResultSelector, chromedp.ByQuery),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(cardScript, &cards),
		)
		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		listings = toRawListings(cards)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[amazon] Page %d: found %d cards at %s", pageNum, len(listings), pageURL)
	return listings, nil
}

func toRawListings(cards []cardData) []*models.RawListing {
	out := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		out = append(out, &models.RawListing{
			Content: scraper.CleanContent(c.Content),
			URL:     c.Href,
		})
	}
	return out
}

// findChromeBinary locates Chrome/Chromium binary.
func (s *Scraper) findChromeBinary() string {
	if s.cfg.ChromeBin != "" {
		return s.cfg.ChromeBin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
