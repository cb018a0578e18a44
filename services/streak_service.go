package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Medal unlock thresholds in consecutive fully-completed days.
const (
	bronzeThreshold  = 7
	silverThreshold  = 14
	goldThreshold    = 30
	diamondThreshold = 60
)

type StreakService struct {
	db *pgxpool.Pool
}

func NewStreakService(db *pgxpool.Pool) *StreakService {
	return &StreakService{db: db}
}

// StreakOutcome reports what the evaluation changed so callers can notify.
type StreakOutcome struct {
	CurrentStreak  int
	Medals         user.Medals
	UnlockedMedals []string
}

// streakState is the persisted per-user streak record.
type streakState struct {
	Streak   int
	LastDate *string
	Medals   user.Medals
}

// advanceStreak applies one evaluation of (total, completed) instances on
// date to the current state and reports newly unlocked medal tiers.
//
// A day counts toward the streak only when it has at least one instance and
// every instance is completed. LastDate records the most recent counted day,
// so a day counts once no matter how many completions land on it, and a day
// that stops being complete (a rejection, a re-opened task) gives back only
// its own increment rather than the whole chain. A chain that is already
// stale when a not-yet-complete day is evaluated resets to 0; a full day
// after a gap restarts at 1. Medals unlock on the way up and never reset.
func advanceStreak(st streakState, date string, total, completed int) (streakState, []string) {
	dayComplete := total > 0 && completed == total

	if dayComplete {
		switch {
		case st.LastDate != nil && *st.LastDate == date:
			// Already counted today.
		case st.LastDate != nil && *st.LastDate == previousDay(date):
			st.Streak++
			st.LastDate = &date
		default:
			st.Streak = 1
			st.LastDate = &date
		}
	} else {
		switch {
		case st.LastDate != nil && *st.LastDate == date:
			// The day just stopped being complete; undo its increment
			// and let a later re-completion count it again.
			st.Streak--
			if st.Streak <= 0 {
				st.Streak = 0
				st.LastDate = nil
			} else {
				prev := previousDay(date)
				st.LastDate = &prev
			}
		case total > 0 && st.LastDate != nil && *st.LastDate == previousDay(date):
			// The chain runs through yesterday and today is still in
			// progress; keep it until the day resolves.
		default:
			st.Streak = 0
			st.LastDate = nil
		}
	}

	var unlocked []string
	if st.Streak >= bronzeThreshold && !st.Medals.Bronze {
		st.Medals.Bronze = true
		unlocked = append(unlocked, "bronze")
	}
	if st.Streak >= silverThreshold && !st.Medals.Silver {
		st.Medals.Silver = true
		unlocked = append(unlocked, "silver")
	}
	if st.Streak >= goldThreshold && !st.Medals.Gold {
		st.Medals.Gold = true
		unlocked = append(unlocked, "gold")
	}
	if st.Streak >= diamondThreshold && !st.Medals.Diamond {
		st.Medals.Diamond = true
		unlocked = append(unlocked, "diamond")
	}

	return st, unlocked
}

// EvaluateInTx recomputes the streak for (userID, date) inside the caller's
// transaction, after a completion or a rejection touched that day.
func (s *StreakService) EvaluateInTx(ctx context.Context, tx pgx.Tx, userID, date string) (*StreakOutcome, error) {
	var total, completed int
	err := tx.QueryRow(ctx, `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
	FROM daily_tasks
	WHERE user_id = $1 AND date = $2
	`, userID, date).Scan(&total, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count day instances: %w", err)
	}

	var st streakState
	err = tx.QueryRow(ctx, `
	SELECT current_streak, last_streak_date::text, medal_bronze, medal_silver, medal_gold, medal_diamond
	FROM users
	WHERE id = $1
	FOR UPDATE
	`, userID).Scan(&st.Streak, &st.LastDate, &st.Medals.Bronze, &st.Medals.Silver, &st.Medals.Gold, &st.Medals.Diamond)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %s", userID)
		}
		return nil, fmt.Errorf("failed to lock user streak: %w", err)
	}

	st, unlocked := advanceStreak(st, date, total, completed)

	_, err = tx.Exec(ctx, `
	UPDATE users
	SET current_streak = $1, last_streak_date = $2,
	    medal_bronze = $3, medal_silver = $4, medal_gold = $5, medal_diamond = $6,
	    updated_at = $7
	WHERE id = $8
	`, st.Streak, st.LastDate, st.Medals.Bronze, st.Medals.Silver, st.Medals.Gold, st.Medals.Diamond, time.Now(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	return &StreakOutcome{
		CurrentStreak:  st.Streak,
		Medals:         st.Medals,
		UnlockedMedals: unlocked,
	}, nil
}

func previousDay(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format("2006-01-02")
}
