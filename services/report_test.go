package services

import (
	"bytes"
	"strings"
	"testing"

	"bestrate/models"
)

func sampleRanking() *models.Ranking {
	return Rank(Score([]*models.Item{
		{Price: 19.99, Rating: 4.5, Delivery: 515, URL: "https://www.amazon.com/dp/A"},
		{Price: 29.99, Rating: 5.0, Delivery: models.DeliveryUnbounded, URL: "https://www.amazon.com/dp/B"},
	}))
}

func TestReporterPrintBest(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Print(sampleRanking(), false)

	out := buf.String()
	for _, want := range []string{"Best ranked:", "price=$19.99", "rating=4.5", "delivery=515", "URL: https://www.amazon.com/dp/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "dp/B") {
		t.Error("non-debug output should only show the best item")
	}
}

func TestReporterPrintNone(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Print(&models.Ranking{}, true)

	if !strings.Contains(buf.String(), "Best ranked: none") {
		t.Errorf("output %q should report that no listing was ranked", buf.String())
	}
}

func TestReporterPrintTable(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).PrintTable(sampleRanking())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines; want header, separator and 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "delivery") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "dp/A") || !strings.Contains(lines[3], "dp/B") {
		t.Errorf("rows out of order:\n%s", buf.String())
	}
	if !strings.Contains(lines[3], "worst") || !strings.Contains(lines[3], "unbounded") {
		t.Errorf("degenerate row = %q; want worst score and unbounded delivery", lines[3])
	}
	if strings.Index(lines[2], "https://") != strings.Index(lines[3], "https://") {
		t.Error("url column is not aligned")
	}
}
