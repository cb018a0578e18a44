package points

import (
	"math"

	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"
)

// Default multiplier tables. A rule's Multipliers override these; see
// lookup and medalLookup for how missing keys resolve.
var (
	defaultDifficultyMultipliers = map[string]float64{
		string(task.DifficultyEasy):   1.0,
		string(task.DifficultyMedium): 1.2,
		string(task.DifficultyHard):   1.5,
	}
	defaultQualityMultipliers = map[string]float64{
		"normal":    1.0,
		"good":      1.1,
		"excellent": 1.3,
	}
	defaultMedalMultipliers = map[string]float64{
		"bronze":  1.1,
		"silver":  1.2,
		"gold":    1.3,
		"diamond": 1.4,
	}
)

// Calculate derives the raw points for one completion. It is deterministic
// and side-effect free: caps and counters are the limit ledger's business,
// not this function's.
//
// Order matters: bonus rules add to the base, then the difficulty, quality
// and medal multipliers apply with rounding after each step. Medal factors
// stack multiplicatively across unlocked tiers.
func Calculate(rule Rule, meta CompletionMeta, medals user.Medals) Breakdown {
	base := rule.BasePoints
	bonus := 0

	for _, br := range rule.BonusRules {
		switch br.Type {
		case "word_count":
			if meta.WordCount >= br.Threshold && br.Threshold > 0 {
				b := (meta.WordCount / br.Threshold) * br.BonusPoints
				if br.MaxBonus > 0 && b > br.MaxBonus {
					b = br.MaxBonus
				}
				bonus += b
			}
		case "duration":
			if meta.DurationMinutes >= br.Threshold && br.Threshold > 0 {
				b := (meta.DurationMinutes / br.Threshold) * br.BonusPoints
				if br.MaxBonus > 0 && b > br.MaxBonus {
					b = br.MaxBonus
				}
				bonus += b
			}
		case "quality":
			if quality(meta) == "excellent" {
				bonus += br.BonusPoints
			}
		}
	}

	total := float64(base + bonus)

	if meta.Difficulty != "" {
		total = round(total * lookup(ruleDifficulty(rule), defaultDifficultyMultipliers, string(meta.Difficulty)))
	}
	total = round(total * lookup(ruleQuality(rule), defaultQualityMultipliers, quality(meta)))

	medalMultiplier := 1.0
	medalTable := ruleMedal(rule)
	if medals.Bronze {
		medalMultiplier *= medalLookup(medalTable, "bronze")
	}
	if medals.Silver {
		medalMultiplier *= medalLookup(medalTable, "silver")
	}
	if medals.Gold {
		medalMultiplier *= medalLookup(medalTable, "gold")
	}
	if medals.Diamond {
		medalMultiplier *= medalLookup(medalTable, "diamond")
	}
	total = round(total * medalMultiplier)

	if total < 0 {
		total = 0
	}

	return Breakdown{
		BasePoints:  base,
		BonusPoints: bonus,
		TotalPoints: int(total),
	}
}

// quality degrades a missing declared quality to "normal".
func quality(meta CompletionMeta) string {
	if meta.Quality == "" {
		return "normal"
	}
	return meta.Quality
}

func ruleDifficulty(r Rule) map[string]float64 {
	if r.Multipliers == nil {
		return nil
	}
	return r.Multipliers.Difficulty
}

func ruleQuality(r Rule) map[string]float64 {
	if r.Multipliers == nil {
		return nil
	}
	return r.Multipliers.Quality
}

func ruleMedal(r Rule) map[string]float64 {
	if r.Multipliers == nil {
		return nil
	}
	return r.Multipliers.Medal
}

// lookup prefers the rule's own table, then the default table, then 1.
func lookup(override, defaults map[string]float64, key string) float64 {
	if override != nil {
		if m, ok := override[key]; ok && m > 0 {
			return m
		}
		// A rule that configures the table but omits the key means "no
		// multiplier", matching the catalog's configurable-rule contract.
		return 1
	}
	if m, ok := defaults[key]; ok {
		return m
	}
	return 1
}

// medalLookup resolves one medal tier's factor. Unlike the difficulty and
// quality tables, a configured medal table only overrides the tiers it
// names; the rest keep their built-in factors.
func medalLookup(override map[string]float64, tier string) float64 {
	if m, ok := override[tier]; ok && m > 0 {
		return m
	}
	if m, ok := defaultMedalMultipliers[tier]; ok {
		return m
	}
	return 1
}

func round(v float64) float64 {
	return math.Round(v)
}
