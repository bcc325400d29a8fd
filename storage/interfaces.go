package storage

import "bestrate/models"

// RankingWriter is the interface any ranking export must satisfy.
type RankingWriter interface {
	WriteRanked(ranking *models.Ranking) error
	Close() error
}

var _ RankingWriter = (*CSVWriter)(nil)
