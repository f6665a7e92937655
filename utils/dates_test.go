package utils

import (
	"testing"
	"time"
)

func TestBuildEndTimestampCrossesMidnight(t *testing.T) {
	end, err := BuildEndTimestamp("2024-06-01", "23:30", "00:15", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 2, 0, 15, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("expected %s got %s", want, end)
	}
}

func TestBuildEndTimestampSameDay(t *testing.T) {
	end, err := BuildEndTimestamp("2024-06-01", "18:00", "23:45", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Day() != 1 || end.Hour() != 23 || end.Minute() != 45 {
		t.Fatalf("unexpected end %s", end)
	}
}

func TestBuildTimestampRejectsGarbage(t *testing.T) {
	if _, err := BuildTimestamp("2024-06-01", "25:99", time.UTC); err == nil {
		t.Fatalf("expected error for invalid clock")
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(DateLayout) != "2024-02-01" || end.Format(DateLayout) != "2024-03-01" {
		t.Fatalf("unexpected range %s - %s", start, end)
	}
	if _, _, err := MonthRange("2024/02", time.UTC); err == nil {
		t.Fatalf("expected error for bad month")
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("2025-09-14"); got != "14/09/2025" {
		t.Fatalf("expected 14/09/2025 got %s", got)
	}
	if got := DisplayDate("soon"); got != "soon" {
		t.Fatalf("expected passthrough got %s", got)
	}
}
