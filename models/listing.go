package models

import (
	"math"
	"strconv"
)

// RawListing is one search-result card as handed over by a collector:
// the card's flattened text and the link found inside it. Either field
// may be empty when the collector could not find it.
type RawListing struct {
	Content string
	URL     string
}

// DeliveryCode orders delivery dates as month*100+day within the
// reference year. DeliveryUnbounded sorts after every finite code.
type DeliveryCode int

// DeliveryUnbounded marks a delivery that could not be placed on the
// calendar and is treated as the slowest possible.
const DeliveryUnbounded DeliveryCode = -1

// Bounded reports whether d is a finite ordinal.
func (d DeliveryCode) Bounded() bool { return d >= 0 }

// Less orders codes with DeliveryUnbounded last.
func (d DeliveryCode) Less(o DeliveryCode) bool {
	switch {
	case !d.Bounded():
		return false
	case !o.Bounded():
		return true
	default:
		return d < o
	}
}

// Float returns the code as a number, +Inf for DeliveryUnbounded.
func (d DeliveryCode) Float() float64 {
	if !d.Bounded() {
		return math.Inf(1)
	}
	return float64(d)
}

func (d DeliveryCode) String() string {
	if !d.Bounded() {
		return "unbounded"
	}
	return strconv.Itoa(int(d))
}

// Item is a listing whose price, rating, delivery and link were all
// extracted. Partially parsed listings never become an Item.
type Item struct {
	Price    float64
	Rating   float64
	Delivery DeliveryCode
	URL      string
}

// ScoreComponents keeps the unweighted component scores for inspection.
type ScoreComponents struct {
	Price    float64
	Rating   float64
	Delivery float64
}

// ScoredItem is an Item with its batch-relative composite score.
// Degenerate is set when a component could not be computed and the
// score was replaced with the worst value.
type ScoredItem struct {
	Item
	Score      float64
	Components ScoreComponents
	Degenerate bool
}

// Ranking is a scored batch ordered best first.
type Ranking struct {
	Items []*ScoredItem
}

// Best returns the top item, or nil when the batch was empty.
func (r *Ranking) Best() *ScoredItem {
	if r == nil || len(r.Items) == 0 {
		return nil
	}
	return r.Items[0]
}

// Len returns the number of ranked items.
func (r *Ranking) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}
