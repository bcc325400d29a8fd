package amazon

import (
	"strings"
	"testing"

	"bestrate/config"
	"bestrate/models"
	"bestrate/scraper"
	"bestrate/utils"
)

func TestCardScriptUsesSelectors(t *testing.T) {
	for _, sel := range []string{`s-search-result`, scraper.CardSelector} {
		if !strings.Contains(cardScript, sel) {
			t.Errorf("card script does not reference %q", sel)
		}
	}
}

func TestToRawListings(t *testing.T) {
	cards := []cardData{
		{Content: "\n  $19.99\n4.50 out of 5 stars  ", Href: "/dp/A"},
		{Content: "no link", Href: ""},
	}

	got := toRawListings(cards)
	if len(got) != 2 {
		t.Fatalf("got %d listings; want 2", len(got))
	}
	if got[0].Content != "$19.994.50 out of 5 stars" {
		t.Errorf("Content = %q", got[0].Content)
	}
	if got[0].URL != "/dp/A" || got[1].URL != "" {
		t.Errorf("URLs = %q, %q", got[0].URL, got[1].URL)
	}
}

func TestFindChromeBinaryPrefersConfig(t *testing.T) {
	cfg := &config.Config{ChromeBin: "/custom/chrome", MaxConcurrency: 1, MaxRetries: 1, PageTimeoutSec: 1}
	s := New(cfg, nil, utils.Discard())

	if got := s.findChromeBinary(); got != "/custom/chrome" {
		t.Errorf("findChromeBinary = %q; want /custom/chrome", got)
	}
}

func TestMergePagesSkipsOnlyCrossPageRepeats(t *testing.T) {
	raw := func(href string) *models.RawListing {
		return &models.RawListing{Content: "card " + href, URL: href}
	}
	pages := [][]*models.RawListing{
		{raw("/dp/A"), raw("/dp/A"), raw("")},
		{raw("/dp/B"), raw("/dp/A"), raw("")},
	}

	got := mergePages(pages, utils.Discard())

	want := []string{"/dp/A", "/dp/A", "", "/dp/B", ""}
	if len(got) != len(want) {
		t.Fatalf("mergePages returned %d listings; want %d", len(got), len(want))
	}
	for i, href := range want {
		if got[i].URL != href {
			t.Errorf("listing %d URL = %q; want %q", i, got[i].URL, href)
		}
	}
}
