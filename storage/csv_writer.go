package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"bestrate/models"
)

var csvHeader = []string{"rank", "score", "price", "rating", "delivery", "degenerate", "url"}

// CSVWriter exports ranked listings as CSV.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return &CSVWriter{closer: f, writer: csv.NewWriter(f)}, nil
}

// NewCSVStream writes CSV to w. Close does not close w.
func NewCSVStream(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// WriteRanked writes a header row followed by one row per ranked item.
func (c *CSVWriter) WriteRanked(ranking *models.Ranking) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i, it := range ranking.Items {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(it.Score, 'g', -1, 64),
			strconv.FormatFloat(it.Price, 'f', 2, 64),
			strconv.FormatFloat(it.Rating, 'f', 1, 64),
			it.Delivery.String(),
			strconv.FormatBool(it.Degenerate),
			it.URL,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}
