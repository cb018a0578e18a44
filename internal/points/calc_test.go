package points

import (
	"testing"

	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"

	"github.com/stretchr/testify/assert"
)

func baseRule(basePoints int) Rule {
	return Rule{
		Category:    task.CategoryReading,
		ActivityKey: "reading",
		BasePoints:  basePoints,
		IsActive:    true,
	}
}

func TestCalculateBaseOnly(t *testing.T) {
	b := Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{})

	assert.Equal(t, 10, b.BasePoints)
	assert.Equal(t, 0, b.BonusPoints)
	assert.Equal(t, 10, b.TotalPoints)
}

func TestCalculateDifficultyMultipliers(t *testing.T) {
	tests := []struct {
		difficulty task.Difficulty
		want       int
	}{
		{task.DifficultyEasy, 10},
		{task.DifficultyMedium, 12},
		{task.DifficultyHard, 15},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			b := Calculate(baseRule(10), CompletionMeta{Difficulty: tt.difficulty}, user.Medals{})
			assert.Equal(t, tt.want, b.TotalPoints)
		})
	}
}

func TestCalculateQualityMultiplier(t *testing.T) {
	b := Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy, Quality: "excellent"}, user.Medals{})
	assert.Equal(t, 13, b.TotalPoints)

	b = Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy, Quality: "good"}, user.Medals{})
	assert.Equal(t, 11, b.TotalPoints)
}

func TestCalculateMissingQualityDefaultsToNormal(t *testing.T) {
	b := Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{})
	assert.Equal(t, 10, b.TotalPoints)
}

func TestCalculateMedalStacking(t *testing.T) {
	// 10 * 1.1 * 1.2 = 13.2, rounded to 13
	b := Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{Bronze: true, Silver: true})
	assert.Equal(t, 13, b.TotalPoints)

	// All four: 10 * 1.1 * 1.2 * 1.3 * 1.4 = 24.024, rounded to 24
	b = Calculate(baseRule(10), CompletionMeta{Difficulty: task.DifficultyEasy},
		user.Medals{Bronze: true, Silver: true, Gold: true, Diamond: true})
	assert.Equal(t, 24, b.TotalPoints)
}

func TestCalculateMedalOverridePartialTable(t *testing.T) {
	// A medal table naming only bronze overrides that tier; the other
	// unlocked tiers keep their built-in factors.
	rule := baseRule(10)
	rule.Multipliers = &Multipliers{Medal: map[string]float64{"bronze": 2.0}}

	// 10 * 2.0 * 1.2 = 24
	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{Bronze: true, Silver: true})
	assert.Equal(t, 24, b.TotalPoints)

	// Only the default-factor tier unlocked: 10 * 1.2 = 12
	b = Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{Silver: true})
	assert.Equal(t, 12, b.TotalPoints)
}

func TestCalculateWordCountBonus(t *testing.T) {
	rule := baseRule(10)
	rule.BonusRules = []BonusRule{{Type: "word_count", Threshold: 50, BonusPoints: 2, MaxBonus: 6}}

	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, WordCount: 160}, user.Medals{})
	assert.Equal(t, 6, b.BonusPoints) // floor(160/50)=3 steps * 2
	assert.Equal(t, 16, b.TotalPoints)

	// Cap binds well before the step count would
	b = Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, WordCount: 500}, user.Medals{})
	assert.Equal(t, 6, b.BonusPoints)

	// Under threshold, no bonus
	b = Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, WordCount: 30}, user.Medals{})
	assert.Equal(t, 0, b.BonusPoints)
}

func TestCalculateDurationBonus(t *testing.T) {
	rule := baseRule(5)
	rule.BonusRules = []BonusRule{{Type: "duration", Threshold: 15, BonusPoints: 1}}

	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, DurationMinutes: 45}, user.Medals{})
	assert.Equal(t, 3, b.BonusPoints)
	assert.Equal(t, 8, b.TotalPoints)
}

func TestCalculateQualityBonusRule(t *testing.T) {
	rule := baseRule(10)
	rule.BonusRules = []BonusRule{{Type: "quality", BonusPoints: 5}}

	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, Quality: "excellent"}, user.Medals{})
	assert.Equal(t, 5, b.BonusPoints)
	// (10+5) * 1.0 difficulty, then * 1.3 excellent = 19.5, rounded to 20
	assert.Equal(t, 20, b.TotalPoints)

	b = Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy, Quality: "normal"}, user.Medals{})
	assert.Equal(t, 0, b.BonusPoints)
}

func TestCalculateMultiplierOverrides(t *testing.T) {
	rule := baseRule(10)
	rule.Multipliers = &Multipliers{
		Difficulty: map[string]float64{"hard": 2.0},
	}

	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyHard}, user.Medals{})
	assert.Equal(t, 20, b.TotalPoints)

	// A configured table without the key means no multiplier for it
	b = Calculate(rule, CompletionMeta{Difficulty: task.DifficultyMedium}, user.Medals{})
	assert.Equal(t, 10, b.TotalPoints)
}

func TestCalculateRoundsAtEachStep(t *testing.T) {
	// 9 * 1.2 = 10.8 -> 11, then 11 * 1.1 = 12.1 -> 12.
	// A single final rounding would give round(9*1.2*1.1) = round(11.88) = 12
	// too, so force divergence: 7 * 1.2 = 8.4 -> 8, 8 * 1.3 = 10.4 -> 10,
	// while round(7*1.2*1.3) = round(10.92) = 11.
	b := Calculate(baseRule(7), CompletionMeta{Difficulty: task.DifficultyMedium, Quality: "excellent"}, user.Medals{})
	assert.Equal(t, 10, b.TotalPoints)
}

func TestCalculateNeverNegative(t *testing.T) {
	b := Calculate(baseRule(0), CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{})
	assert.Equal(t, 0, b.TotalPoints)
}

func TestDefaultRuleFallback(t *testing.T) {
	rule := DefaultRule(task.CategoryChores, "dishes")
	assert.Equal(t, 1, rule.BasePoints)
	assert.True(t, rule.IsActive)

	b := Calculate(rule, CompletionMeta{Difficulty: task.DifficultyEasy}, user.Medals{})
	assert.Equal(t, 1, b.TotalPoints)
}
