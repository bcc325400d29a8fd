package services

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"bestrate/models"
	"bestrate/utils"
)

// jsSpace matches the characters a browser treats as \s, which includes
// the no-break spaces search pages put between numbers and words.
const jsSpace = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

var (
	// priceRegexp matches "$19.99", "$1,299.99", "$7".
	priceRegexp = regexp.MustCompile(`\$([1-9][0-9]?[0-9]?,)?[0-9]+(\.[0-9][0-9])?`)
	// ratingRegexp matches the "4.50 out" part of "4.50 out of 5 stars".
	ratingRegexp = regexp.MustCompile(`([0-9]\.[0-9][0-9]?.?[0-9])` + jsSpace + `out`)

	priceCleaner  = strings.NewReplacer("$", "", ",", "")
	ratingCleaner = strings.NewReplacer(".", "")
)

// MaxRating is the top of the star scale.
const MaxRating = 5.0

var (
	ErrInvalidOrigin = errors.New("invalid origin")
	ErrInvalidYear   = errors.New("invalid reference year")
)

// Extractor turns RawListings into Items. A listing missing any of
// price, rating, delivery or link yields no Item.
type Extractor struct {
	origin *url.URL
	year   int
	logger *utils.Logger
}

// NewExtractor creates an Extractor resolving links against origin and
// placing delivery dates in year. A malformed origin is a setup error.
func NewExtractor(origin string, year int, logger *utils.Logger) (*Extractor, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidOrigin, origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w %q: must be absolute", ErrInvalidOrigin, origin)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &Extractor{origin: u, year: year, logger: logger}, nil
}

// Extract returns one slot per input listing in input order. Slots for
// listings that could not be fully parsed are nil.
func (e *Extractor) Extract(raw []*models.RawListing) []*models.Item {
	out := make([]*models.Item, len(raw))
	for i, r := range raw {
		out[i] = e.ExtractOne(r)
	}
	return out
}

// ExtractAll is Extract with the nil slots removed.
func (e *Extractor) ExtractAll(raw []*models.RawListing) []*models.Item {
	return Compact(e.Extract(raw))
}

// ExtractOne parses a single listing, returning nil on any miss.
func (e *Extractor) ExtractOne(r *models.RawListing) *models.Item {
	if r == nil {
		return nil
	}

	price, ok := ParsePrice(r.Content)
	if !ok {
		e.logger.Debug("[extractor] No price in %q", snippet(r.Content))
		return nil
	}
	rating, ok := ParseRating(r.Content)
	if !ok {
		e.logger.Debug("[extractor] No rating in %q", snippet(r.Content))
		return nil
	}
	match, ok := MatchDelivery(r.Content)
	if !ok {
		e.logger.Debug("[extractor] No delivery date in %q", snippet(r.Content))
		return nil
	}
	link, ok := e.ResolveURL(r.URL)
	if !ok {
		e.logger.Debug("[extractor] Unusable link %q", r.URL)
		return nil
	}

	return &models.Item{
		Price:    price,
		Rating:   rating,
		Delivery: match.Code(e.year),
		URL:      link,
	}
}

// ResolveURL resolves href against the origin. Empty, unparsable and
// non-http links are rejected.
func (e *Extractor) ResolveURL(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := e.origin.ResolveReference(ref)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// ParsePrice returns the first dollar amount in text.
func ParsePrice(text string) (float64, bool) {
	m := priceRegexp.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(priceCleaner.Replace(m), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseRating returns the star rating preceding "out". Only the first
// two digits are kept, so 4.59 reads as 4.5.
func ParseRating(text string) (float64, bool) {
	m := ratingRegexp.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	digits := ratingCleaner.Replace(m[1])
	if len(digits) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits[:1]+"."+digits[1:2], 64)
	if err != nil || v > MaxRating {
		return 0, false
	}
	return v, true
}

// Compact drops nil slots, keeping order.
func Compact(items []*models.Item) []*models.Item {
	out := make([]*models.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func snippet(s string) string {
	const max = 60
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
