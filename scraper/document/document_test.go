package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bestrate/utils"
)

const searchPage = `<html><body>
<div data-component-type="s-search-result">
  <div class="s-card-container">
    <a href="/dp/B0001?ref=sr_1_1">Wireless Headphones</a>
    <span>$19.99</span>
    <span>4.50 out of 5 stars</span>
    <span>FREE delivery Tomorrow, Jun 15</span>
  </div>
</div>
<div data-component-type="s-search-result">
  <div class="s-widget">no card here</div>
</div>
<div data-component-type="s-search-result">
  <div class="s-card-container"><span>$5.00 no link</span></div>
</div>
<div class="s-card-container"><a href="/dp/outside">not a result</a></div>
</body></html>`

func TestParse(t *testing.T) {
	listings, err := Parse(strings.NewReader(searchPage))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings; want 2", len(listings))
	}

	first := listings[0]
	if first.URL != "/dp/B0001?ref=sr_1_1" {
		t.Errorf("URL = %q; want %q", first.URL, "/dp/B0001?ref=sr_1_1")
	}
	if strings.ContainsAny(first.Content, "\r\n") {
		t.Errorf("Content should be on one line: %q", first.Content)
	}
	for _, want := range []string{"$19.99", "4.50 out of 5 stars", "delivery Tomorrow, Jun 15"} {
		if !strings.Contains(first.Content, want) {
			t.Errorf("Content %q missing %q", first.Content, want)
		}
	}
	if listings[1].URL != "" {
		t.Errorf("card without link has URL %q; want empty", listings[1].URL)
	}
}

func TestCollectFilesAndStdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page1.html")
	if err := os.WriteFile(path, []byte(searchPage), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New([]string{path, StdinPath}, strings.NewReader(searchPage), utils.Discard())
	listings, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(listings) != 4 {
		t.Errorf("got %d listings; want 4 from two pages", len(listings))
	}
}

func TestCollectMissingFile(t *testing.T) {
	c := New([]string{filepath.Join(t.TempDir(), "missing.html")}, nil, utils.Discard())
	if _, err := c.Collect(context.Background()); err == nil {
		t.Error("Collect should fail for a missing file")
	}
}
