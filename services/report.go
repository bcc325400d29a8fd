package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"bestrate/models"
)

const urlColumnWidth = 70

// Reporter prints rankings for people.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Print always shows the best item; with debug it also shows the
// whole ranked table.
func (r *Reporter) Print(ranking *models.Ranking, debug bool) {
	if debug {
		r.PrintTable(ranking)
	}
	r.PrintBest(ranking.Best())
}

// PrintBest shows the winning listing, or says there was none.
func (r *Reporter) PrintBest(best *models.ScoredItem) {
	if best == nil {
		fmt.Fprintln(r.w, "Best ranked: none (no listing had price, rating and delivery)")
		return
	}
	fmt.Fprintf(r.w, "Best ranked: price=%s rating=%s delivery=%s score=%s\n",
		formatPrice(best.Price), formatRating(best.Rating), best.Delivery, formatScore(best))
	fmt.Fprintf(r.w, "URL: %s\n", best.URL)
}

// PrintTable shows every ranked item in aligned columns.
func (r *Reporter) PrintTable(ranking *models.Ranking) {
	header := []string{"#", "score", "price", "rating", "delivery", "url"}
	rows := [][]string{header}
	for i, it := range ranking.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatScore(it),
			formatPrice(it.Price),
			formatRating(it.Rating),
			it.Delivery.String(),
			runewidth.Truncate(it.URL, urlColumnWidth, "..."),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(r.w, strings.TrimRight(strings.Join(cells, "  "), " "))
		if n == 0 {
			seps := make([]string, len(widths))
			for i, w := range widths {
				seps[i] = strings.Repeat("─", w)
			}
			fmt.Fprintln(r.w, strings.Join(seps, "  "))
		}
	}
	fmt.Fprintln(r.w)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatScore(it *models.ScoredItem) string {
	if it.Degenerate {
		return "worst"
	}
	return strconv.FormatFloat(it.Score, 'f', 4, 64)
}
