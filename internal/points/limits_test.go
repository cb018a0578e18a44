package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCaps(t *testing.T) {
	activityCap := func(n int) *int { return &n }

	tests := []struct {
		name          string
		in            ClampInput
		wantAwarded   int
		wantTruncated bool
		wantLimit     bool
	}{
		{
			name:        "full headroom",
			in:          ClampInput{Requested: 10, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded: 10,
		},
		{
			name:          "global cap truncates",
			in:            ClampInput{Requested: 10, DailyTotal: 15, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded:   5,
			wantTruncated: true,
		},
		{
			name:          "at global cap awards nothing",
			in:            ClampInput{Requested: 10, DailyTotal: 20, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded:   0,
			wantTruncated: true,
			wantLimit:     true,
		},
		{
			name:          "weekly cap binds tighter than daily",
			in:            ClampInput{Requested: 10, DailyTotal: 0, WeeklyTotal: 97, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded:   3,
			wantTruncated: true,
		},
		{
			name:          "activity cap binds tightest",
			in:            ClampInput{Requested: 10, ActivityTotal: 8, GlobalCap: 20, WeeklyCap: 100, ActivityCap: activityCap(10)},
			wantAwarded:   2,
			wantTruncated: true,
		},
		{
			name:        "nil activity cap means unlimited activity",
			in:          ClampInput{Requested: 15, ActivityTotal: 50, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded: 15,
		},
		{
			name:        "zero global cap disables it",
			in:          ClampInput{Requested: 40, DailyTotal: 100, WeeklyCap: 1000},
			wantAwarded: 40,
		},
		{
			name:          "counters beyond cap never go negative",
			in:            ClampInput{Requested: 5, DailyTotal: 30, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded:   0,
			wantTruncated: true,
			wantLimit:     true,
		},
		{
			name:        "negative request clamps to zero",
			in:          ClampInput{Requested: -3, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded: 0,
		},
		{
			name:        "zero request is not a limit hit",
			in:          ClampInput{Requested: 0, DailyTotal: 20, GlobalCap: 20, WeeklyCap: 100},
			wantAwarded: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplyCaps(tt.in)
			assert.Equal(t, tt.wantAwarded, out.Awarded)
			assert.Equal(t, tt.wantTruncated, out.IsPointsTruncated)
			assert.Equal(t, tt.wantLimit, out.IsLimitReached)
		})
	}
}
