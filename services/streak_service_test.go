package services

import (
	"testing"

	"taskQuestAPI/internal/user"

	"github.com/stretchr/testify/assert"
)

func datePtr(d string) *string { return &d }

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name      string
		state     streakState
		date      string
		total     int
		completed int
		wantState streakState
	}{
		{
			name:      "first full day starts chain",
			state:     streakState{},
			date:      "2026-08-31",
			total:     2,
			completed: 2,
			wantState: streakState{Streak: 1, LastDate: datePtr("2026-08-31")},
		},
		{
			name:      "full day after counted yesterday extends chain",
			state:     streakState{Streak: 5, LastDate: datePtr("2026-08-30")},
			date:      "2026-08-31",
			total:     2,
			completed: 2,
			wantState: streakState{Streak: 6, LastDate: datePtr("2026-08-31")},
		},
		{
			name:      "re-evaluating a counted day is a no-op",
			state:     streakState{Streak: 6, LastDate: datePtr("2026-08-31")},
			date:      "2026-08-31",
			total:     2,
			completed: 2,
			wantState: streakState{Streak: 6, LastDate: datePtr("2026-08-31")},
		},
		{
			name:      "full day after a gap restarts at one",
			state:     streakState{Streak: 5, LastDate: datePtr("2026-08-28")},
			date:      "2026-08-31",
			total:     1,
			completed: 1,
			wantState: streakState{Streak: 1, LastDate: datePtr("2026-08-31")},
		},
		{
			name:      "partial day keeps the chain through yesterday",
			state:     streakState{Streak: 5, LastDate: datePtr("2026-08-30")},
			date:      "2026-08-31",
			total:     2,
			completed: 1,
			wantState: streakState{Streak: 5, LastDate: datePtr("2026-08-30")},
		},
		{
			name:      "partial day with a stale chain resets",
			state:     streakState{Streak: 5, LastDate: datePtr("2026-08-28")},
			date:      "2026-08-31",
			total:     2,
			completed: 1,
			wantState: streakState{Streak: 0},
		},
		{
			name:      "empty day resets",
			state:     streakState{Streak: 5, LastDate: datePtr("2026-08-30")},
			date:      "2026-08-31",
			total:     0,
			completed: 0,
			wantState: streakState{Streak: 0},
		},
		{
			name:      "re-opened day gives back only its own increment",
			state:     streakState{Streak: 6, LastDate: datePtr("2026-08-31")},
			date:      "2026-08-31",
			total:     2,
			completed: 1,
			wantState: streakState{Streak: 5, LastDate: datePtr("2026-08-30")},
		},
		{
			name:      "re-opened restart day returns to zero",
			state:     streakState{Streak: 1, LastDate: datePtr("2026-08-31")},
			date:      "2026-08-31",
			total:     1,
			completed: 0,
			wantState: streakState{Streak: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := advanceStreak(tt.state, tt.date, tt.total, tt.completed)
			assert.Equal(t, tt.wantState.Streak, got.Streak)
			assert.Equal(t, tt.wantState.LastDate, got.LastDate)
		})
	}
}

// Completing tasks one at a time must not collapse an accumulated streak:
// the first completion of the day leaves the chain alone and only the last
// one extends it.
func TestAdvanceStreakMultiTaskDay(t *testing.T) {
	st := streakState{Streak: 5, LastDate: datePtr("2026-08-30")}

	st, _ = advanceStreak(st, "2026-08-31", 2, 1)
	assert.Equal(t, 5, st.Streak)

	st, _ = advanceStreak(st, "2026-08-31", 2, 2)
	assert.Equal(t, 6, st.Streak)
	assert.Equal(t, "2026-08-31", *st.LastDate)
}

func TestAdvanceStreakDayAfterDay(t *testing.T) {
	st := streakState{}
	for i, date := range []string{"2026-08-29", "2026-08-30", "2026-08-31"} {
		st, _ = advanceStreak(st, date, 1, 1)
		assert.Equal(t, i+1, st.Streak)
	}
}

func TestAdvanceStreakMedalUnlocks(t *testing.T) {
	st := streakState{Streak: 6, LastDate: datePtr("2026-08-30")}

	st, unlocked := advanceStreak(st, "2026-08-31", 1, 1)
	assert.Equal(t, 7, st.Streak)
	assert.Equal(t, []string{"bronze"}, unlocked)
	assert.True(t, st.Medals.Bronze)

	// Already unlocked tiers do not report again.
	st, unlocked = advanceStreak(st, "2026-08-31", 1, 1)
	assert.Empty(t, unlocked)

	// Crossing a higher threshold unlocks every tier passed.
	st = streakState{Streak: 13, LastDate: datePtr("2026-08-30"), Medals: user.Medals{Bronze: true}}
	st, unlocked = advanceStreak(st, "2026-08-31", 1, 1)
	assert.Equal(t, []string{"silver"}, unlocked)

	st = streakState{Streak: 59, LastDate: datePtr("2026-08-30")}
	st, unlocked = advanceStreak(st, "2026-08-31", 1, 1)
	assert.Equal(t, []string{"bronze", "silver", "gold", "diamond"}, unlocked)
}

// Medal flags never come back off once set, even after the streak drops.
func TestAdvanceStreakMedalsMonotonic(t *testing.T) {
	st := streakState{Streak: 7, LastDate: datePtr("2026-08-30"), Medals: user.Medals{Bronze: true}}

	st, unlocked := advanceStreak(st, "2026-08-31", 1, 0)
	assert.Equal(t, 0, st.Streak)
	assert.Empty(t, unlocked)
	assert.True(t, st.Medals.Bronze)
}
