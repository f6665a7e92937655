package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursWorked is end-start in hours, rounded to cents of an hour. An end
// before the start means the shift crossed midnight.
func HoursWorked(start, end time.Time) float64 {
	d := end.Sub(start)
	if d < 0 {
		d += 24 * time.Hour
	}
	return decimal.NewFromFloat(d.Hours()).Round(2).InexactFloat64()
}

// ResolveHourlyRate picks the assignment override, then the member's rate
// for the role, then the role default.
func ResolveHourlyRate(custom, memberRole, roleDefault *float64) float64 {
	for _, r := range []*float64{custom, memberRole, roleDefault} {
		if r != nil {
			return *r
		}
	}
	return 0
}

func Pay(hours, rate float64) float64 {
	return decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}
