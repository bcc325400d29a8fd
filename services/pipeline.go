package services

import (
	"bestrate/models"
	"bestrate/utils"
)

// Pipeline runs extraction, scoring and ranking over one batch.
type Pipeline struct {
	extractor *Extractor
	logger    *utils.Logger
}

// NewPipeline creates a Pipeline with the given extractor and logger.
func NewPipeline(extractor *Extractor, logger *utils.Logger) *Pipeline {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Pipeline{extractor: extractor, logger: logger}
}

// Run ranks the listings. It never fails: listings that cannot be
// parsed are dropped and an empty batch yields an empty Ranking.
func (p *Pipeline) Run(raw []*models.RawListing) *models.Ranking {
	items := p.extractor.ExtractAll(raw)

	p.logger.Info("[pipeline] Extracted %d → %d listings (dropped %d)",
		len(raw), len(items), len(raw)-len(items))

	if len(items) == 0 {
		return &models.Ranking{Items: []*models.ScoredItem{}}
	}

	ranking := Rank(Score(items))

	degenerate := 0
	for _, it := range ranking.Items {
		if it.Degenerate {
			degenerate++
		}
	}
	if degenerate > 0 {
		p.logger.Warn("[pipeline] %d listings could not be scored against the batch and were ranked last",
			degenerate)
	}

	if best := ranking.Best(); best != nil {
		p.logger.Debug("[pipeline] Best ranked: %s (score %.4f)", best.URL, best.Score)
	}
	return ranking
}
