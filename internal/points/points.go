package points

import (
	"time"

	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"
)

// TransactionType tags one ledger entry. Types are never merged: a bonus is
// always its own entry next to the earn it accompanies, and a clawback is its
// own entry next to the earn it reverses.
type TransactionType string

const (
	TransactionEarn       TransactionType = "earn"
	TransactionBonus      TransactionType = "bonus"
	TransactionClawback   TransactionType = "clawback"
	TransactionRedemption TransactionType = "redemption"
	TransactionRefund     TransactionType = "refund"
)

// Transaction is one immutable ledger entry. Amount is negative for
// clawback/redemption; NewTotal == PreviousTotal + Amount always.
type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	DailyTaskID   *string         `json:"dailyTaskId,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        int             `json:"amount"`
	PreviousTotal int             `json:"previousTotal"`
	NewTotal      int             `json:"newTotal"`
	Reason        string          `json:"reason"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// LimitRecord tracks one user's earning counters for one calendar date.
// One logical owner per (user, date); writers serialize through the
// coordinator's row lock.
type LimitRecord struct {
	UserID            string         `json:"userId"`
	Date              string         `json:"date"`
	ActivityPoints    map[string]int `json:"activityPoints"`
	TotalDailyPoints  int            `json:"totalDailyPoints"`
	GameTimeUsed      int            `json:"gameTimeUsed"`
	GameTimeAvailable int            `json:"gameTimeAvailable"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// BonusRule awards extra points from completion metadata.
type BonusRule struct {
	Type        string `json:"type"` // word_count | duration | quality
	Threshold   int    `json:"threshold"`
	BonusPoints int    `json:"bonusPoints"`
	MaxBonus    int    `json:"maxBonus,omitempty"`
}

// Multipliers override the built-in scalars per rule. Zero values fall back
// to the defaults in calc.go.
type Multipliers struct {
	Difficulty map[string]float64 `json:"difficulty,omitempty"`
	Quality    map[string]float64 `json:"quality,omitempty"`
	Medal      map[string]float64 `json:"medal,omitempty"`
}

// Rule is the configurable scoring rule for one (category, activity) pair.
type Rule struct {
	ID          string        `json:"id"`
	Category    task.Category `json:"category"`
	ActivityKey string        `json:"activityKey"`
	BasePoints  int           `json:"basePoints"`
	BonusRules  []BonusRule   `json:"bonusRules,omitempty"`
	DailyLimit  *int          `json:"dailyLimit,omitempty"` // per-activity cap
	Multipliers *Multipliers  `json:"multipliers,omitempty"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DefaultRule is the fallback when the catalog carries no active rule for an
// activity: one point, no bonuses, default multipliers.
func DefaultRule(category task.Category, activityKey string) Rule {
	return Rule{
		Category:    category,
		ActivityKey: activityKey,
		BasePoints:  1,
		IsActive:    true,
	}
}

// CompletionMeta is the optional metadata a completion submits. Missing
// fields degrade to defaults; they never fail a calculation.
type CompletionMeta struct {
	DurationMinutes int
	WordCount       int
	Quality         string // normal | good | excellent
	Difficulty      task.Difficulty
}

// Breakdown is the calculation engine's output.
type Breakdown struct {
	BasePoints  int `json:"basePoints"`
	BonusPoints int `json:"bonusPoints"`
	TotalPoints int `json:"totalPoints"`
}

// RewardConfig is supplied by the reward-configuration collaborator.
type RewardConfig struct {
	GlobalDailyCap      int  `json:"globalDailyCap"`
	WeeklyCap           int  `json:"weeklyCap"`
	BaseGameTimeMinutes int  `json:"baseGameTimeMinutes"`
	IsActive            bool `json:"isActive"`
}

const (
	DefaultGlobalDailyCap      = 20
	DefaultWeeklyCap           = 100
	DefaultBaseGameTimeMinutes = 30
)

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		GlobalDailyCap:      DefaultGlobalDailyCap,
		WeeklyCap:           DefaultWeeklyCap,
		BaseGameTimeMinutes: DefaultBaseGameTimeMinutes,
		IsActive:            true,
	}
}

// AwardResult reports what actually landed after cap truncation. Truncation
// is messaging, not an error.
type AwardResult struct {
	RequestedPoints   int  `json:"requestedPoints"`
	ActualPoints      int  `json:"actualPoints"`
	IsPointsTruncated bool `json:"isPointsTruncated"`
	IsLimitReached    bool `json:"isLimitReached"`
	NewDailyTotal     int  `json:"newDailyTotal"`
	NewActivityTotal  int  `json:"newActivityTotal"`
	NewBalance        int  `json:"newBalance"`
}

// HistoryPage is the paginated ledger view.
type HistoryPage struct {
	Transactions []*Transaction `json:"transactions"`
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	TotalItems   int            `json:"totalItems"`
	TotalPages   int            `json:"totalPages"`
	Summary      HistorySummary `json:"summary"`
}

type HistorySummary struct {
	TotalEarned int `json:"totalEarned"`
	TotalSpent  int `json:"totalSpent"`
	NetGain     int `json:"netGain"`
}

// DaySummary reports remaining headroom for the summary endpoint.
type DaySummary struct {
	Date            string                      `json:"date"`
	TotalToday      int                         `json:"totalToday"`
	DailyLimit      int                         `json:"dailyLimit"`
	DailyRemaining  int                         `json:"dailyRemaining"`
	Activities      map[string]ActivityHeadroom `json:"activities"`
	TotalThisWeek   int                         `json:"totalThisWeek"`
	WeeklyLimit     int                         `json:"weeklyLimit"`
	WeeklyRemaining int                         `json:"weeklyRemaining"`
	Balance         user.BalanceSummary         `json:"balance"`
}

type ActivityHeadroom struct {
	Current int  `json:"current"`
	Limit   *int `json:"limit,omitempty"`
}
