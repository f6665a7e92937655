// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	MonthLayout = "2006-01"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// BuildTimestamp combines a YYYY-MM-DD service date with an HH:MM wall clock
// time in loc.
func BuildTimestamp(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// BuildEndTimestamp is BuildTimestamp for a clock-out. An end earlier than
// the start belongs to the next day.
func BuildEndTimestamp(date, start, end string, loc *time.Location) (time.Time, error) {
	endTime, err := BuildTimestamp(date, end, loc)
	if err != nil {
		return time.Time{}, err
	}
	if start == "" {
		return endTime, nil
	}
	startTime, err := BuildTimestamp(date, start, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endTime.Before(startTime) {
		endTime = endTime.AddDate(0, 0, 1)
	}
	return endTime, nil
}

// MonthRange parses YYYY-MM and returns [first day 00:00, first day of next
// month 00:00).
func MonthRange(month string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DisplayDate turns YYYY-MM-DD into DD/MM/YYYY. Unparseable input is
// returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
