package services

import (
	"testing"

	"taskQuestAPI/internal/points"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2026-08-31", "2026-08-31", "2026-09-06"}, // a Monday
		{"2026-09-02", "2026-08-31", "2026-09-06"}, // mid-week
		{"2026-09-06", "2026-08-31", "2026-09-06"}, // a Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			start, end := weekBounds(tt.date)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWeekBoundsMalformedDate(t *testing.T) {
	start, end := weekBounds("not-a-date")
	assert.Equal(t, "not-a-date", start)
	assert.Equal(t, "not-a-date", end)
}

func TestAwardMessage(t *testing.T) {
	assert.Equal(t, "10 points awarded", awardMessage(&points.AwardResult{RequestedPoints: 10, ActualPoints: 10}))

	assert.Equal(t, "Daily limit applied: 5 of 10 points awarded",
		awardMessage(&points.AwardResult{RequestedPoints: 10, ActualPoints: 5, IsPointsTruncated: true}))

	assert.Equal(t, "Daily points limit reached: no points awarded",
		awardMessage(&points.AwardResult{RequestedPoints: 10, IsPointsTruncated: true, IsLimitReached: true}))
}

func TestPreviousDay(t *testing.T) {
	assert.Equal(t, "2026-08-31", previousDay("2026-09-01"))
	assert.Equal(t, "2026-02-28", previousDay("2026-03-01"))
	assert.Equal(t, "", previousDay("bogus"))
}
