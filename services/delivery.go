package services

import (
	"regexp"
	"strconv"
	"time"

	"bestrate/models"
)

var deliveryRegexp = regexp.MustCompile(`(delivery` + jsSpace + `(Tomorrow|Mon|Tue|Wed|Thr|Fri|Sat|Sun),` + jsSpace +
	`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec).([0-9]?[0-9]))`)

var monthsByAbbrev = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for mo := time.January; mo <= time.December; mo++ {
		m[mo.String()[:3]] = mo
	}
	return m
}()

// DeliveryMatch holds the tokens of a "delivery Tomorrow, Jun 15" phrase.
type DeliveryMatch struct {
	Weekday string
	Month   time.Month
	Day     int
}

// MatchDelivery finds the first delivery phrase in text.
func MatchDelivery(text string) (DeliveryMatch, bool) {
	m := deliveryRegexp.FindStringSubmatch(text)
	if len(m) < 5 {
		return DeliveryMatch{}, false
	}
	day, err := strconv.Atoi(m[4])
	if err != nil {
		return DeliveryMatch{}, false
	}
	return DeliveryMatch{Weekday: m[2], Month: monthsByAbbrev[m[3]], Day: day}, true
}

// Code places the match in year and returns its ordinal.
func (m DeliveryMatch) Code(year int) models.DeliveryCode {
	return DeliveryOrdinal(year, m.Month, m.Day)
}

// DeliveryOrdinal returns monthIndex*100+day for the date, with the
// month index counted from 0. Days up to 31 past the month end roll over
// into the next month. A date landing in January, or a day of 0 or above
// 31, is unbounded.
func DeliveryOrdinal(year int, month time.Month, day int) models.DeliveryCode {
	if day == 0 || day > 31 {
		return models.DeliveryUnbounded
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	idx := int(t.Month()) - 1
	if idx == 0 {
		return models.DeliveryUnbounded
	}
	return models.DeliveryCode(idx*100 + t.Day())
}
