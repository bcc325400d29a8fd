package services

import (
	"math"

	"bestrate/models"
)

// Each criterion counts for a third of the composite score.
const (
	PriceWeight    = 1.0 / 3
	RatingWeight   = 1.0 / 3
	DeliveryWeight = 1.0 / 3
)

// WorstScore is assigned to items whose score cannot be computed.
const WorstScore = -math.MaxFloat64

// BatchStats are the reference values items are scored against.
type BatchStats struct {
	MinPrice    float64
	MinDelivery models.DeliveryCode
	MaxRating   float64
}

// Stats computes the batch minimums. items must not be empty.
func Stats(items []*models.Item) BatchStats {
	s := BatchStats{
		MinPrice:    items[0].Price,
		MinDelivery: items[0].Delivery,
		MaxRating:   MaxRating,
	}
	for _, it := range items[1:] {
		if it.Price < s.MinPrice {
			s.MinPrice = it.Price
		}
		if it.Delivery.Less(s.MinDelivery) {
			s.MinDelivery = it.Delivery
		}
	}
	return s
}

// Score returns a ScoredItem for every item, relative to the batch.
// The input items are not modified.
func Score(items []*models.Item) []*models.ScoredItem {
	if len(items) == 0 {
		return []*models.ScoredItem{}
	}

	stats := Stats(items)
	out := make([]*models.ScoredItem, len(items))
	for i, it := range items {
		out[i] = stats.score(it)
	}
	return out
}

func (s BatchStats) score(it *models.Item) *models.ScoredItem {
	priceScore, okPrice := relative(s.MinPrice, it.Price)
	deliveryScore, okDelivery := relative(s.MinDelivery.Float(), it.Delivery.Float())
	ratingScore := it.Rating / s.MaxRating

	scored := &models.ScoredItem{
		Item: *it,
		Components: models.ScoreComponents{
			Price:    priceScore,
			Rating:   ratingScore,
			Delivery: deliveryScore,
		},
	}
	if !okPrice || !okDelivery {
		scored.Degenerate = true
		scored.Score = WorstScore
		return scored
	}

	scored.Score = PriceWeight*priceScore +
		RatingWeight*ratingScore +
		DeliveryWeight*deliveryScore
	return scored
}

// relative returns (min - v) / min. Equal values score 0 even when min
// is zero or infinite; any other division by zero or infinity is
// reported as not ok.
func relative(min, v float64) (float64, bool) {
	if v == min {
		return 0, true
	}
	if min == 0 || math.IsInf(min, 0) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return (min - v) / min, true
}
