package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/points"
	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PointsService struct {
	db *pgxpool.Pool
}

func NewPointsService(db *pgxpool.Pool) *PointsService {
	return &PointsService{db: db}
}

// AwardParams describes one credit to a user's balance. Base and Bonus are
// clamped together as a single amount; when the caps cut into it, the bonus
// share is consumed first so the base survives longest.
type AwardParams struct {
	UserID      string
	Date        string // YYYY-MM-DD the award counts against
	DailyTaskID *string
	ActivityKey string
	ActivityCap *int
	Base        int
	Bonus       int
	Reason      string
}

// AwardInTx credits points inside the caller's transaction. It locks the
// user row and the (user, date) limit row, clamps the amount against the
// global, weekly and activity caps, then writes the counters, the balance
// and the ledger entries. Concurrent awards for one user serialize on the
// row locks.
func (s *PointsService) AwardInTx(ctx context.Context, tx pgx.Tx, p AwardParams) (*points.AwardResult, error) {
	requested := p.Base + p.Bonus
	if requested < 0 {
		return nil, apperr.Validation("award amount must not be negative")
	}

	balance, err := lockUserBalance(ctx, tx, p.UserID)
	if err != nil {
		return nil, err
	}

	limits, err := lockLimitRecord(ctx, tx, p.UserID, p.Date)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(p.Date)
	var weeklyTotal int
	err = tx.QueryRow(ctx, `
	SELECT COALESCE(SUM(total_daily_points), 0)
	FROM user_points_limits
	WHERE user_id = $1 AND date >= $2 AND date <= $3
	`, p.UserID, weekStart, weekEnd).Scan(&weeklyTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly points: %w", err)
	}

	cfg, err := s.rewardConfigInTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	outcome := points.ApplyCaps(points.ClampInput{
		Requested:     requested,
		DailyTotal:    limits.TotalDailyPoints,
		WeeklyTotal:   weeklyTotal,
		ActivityTotal: limits.ActivityPoints[p.ActivityKey],
		GlobalCap:     cfg.GlobalDailyCap,
		WeeklyCap:     cfg.WeeklyCap,
		ActivityCap:   p.ActivityCap,
	})

	newDailyTotal := limits.TotalDailyPoints + outcome.Awarded
	newActivityTotal := limits.ActivityPoints[p.ActivityKey] + outcome.Awarded
	if outcome.Awarded > 0 {
		limits.ActivityPoints[p.ActivityKey] = newActivityTotal
		_, err = tx.Exec(ctx, `
		UPDATE user_points_limits
		SET activity_points = $1, total_daily_points = $2, updated_at = $3
		WHERE user_id = $4 AND date = $5
		`, limits.ActivityPoints, newDailyTotal, time.Now(), p.UserID, p.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to update limit counters: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE users SET points = points + $1, updated_at = $2 WHERE id = $3`,
			outcome.Awarded, time.Now(), p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to credit balance: %w", err)
		}
	}

	// Ledger: the earn entry carries the base share, the bonus entry the
	// remainder, so a truncated award eats the bonus before the base.
	newBalance := balance + outcome.Awarded
	earnShare := outcome.Awarded
	if earnShare > p.Base {
		earnShare = p.Base
	}
	bonusShare := outcome.Awarded - earnShare

	running := balance
	if earnShare > 0 || outcome.Awarded == 0 && requested > 0 {
		// A fully truncated award still leaves a zero-amount earn entry so
		// history explains why the balance did not move.
		if err := recordTransaction(ctx, tx, &points.Transaction{
			UserID:        p.UserID,
			DailyTaskID:   p.DailyTaskID,
			Type:          points.TransactionEarn,
			Amount:        earnShare,
			PreviousTotal: running,
			NewTotal:      running + earnShare,
			Reason:        p.Reason,
			Metadata: map[string]any{
				"activityKey":       p.ActivityKey,
				"requestedPoints":   requested,
				"isPointsTruncated": outcome.IsPointsTruncated,
			},
		}); err != nil {
			return nil, err
		}
		running += earnShare
	}
	if bonusShare > 0 {
		if err := recordTransaction(ctx, tx, &points.Transaction{
			UserID:        p.UserID,
			DailyTaskID:   p.DailyTaskID,
			Type:          points.TransactionBonus,
			Amount:        bonusShare,
			PreviousTotal: running,
			NewTotal:      running + bonusShare,
			Reason:        p.Reason + " (bonus)",
			Metadata:      map[string]any{"activityKey": p.ActivityKey},
		}); err != nil {
			return nil, err
		}
	}

	return &points.AwardResult{
		RequestedPoints:   requested,
		ActualPoints:      outcome.Awarded,
		IsPointsTruncated: outcome.IsPointsTruncated,
		IsLimitReached:    outcome.IsLimitReached,
		NewDailyTotal:     newDailyTotal,
		NewActivityTotal:  newActivityTotal,
		NewBalance:        newBalance,
	}, nil
}

// ClawbackInTx reverses a previously credited award. The balance and the
// original date's counters are decremented, each floored at zero, and one
// negative clawback entry is appended.
func (s *PointsService) ClawbackInTx(ctx context.Context, tx pgx.Tx, userID, date string, dailyTaskID *string, amount int, activityKey, reason string) error {
	if amount <= 0 {
		return nil
	}

	balance, err := lockUserBalance(ctx, tx, userID)
	if err != nil {
		return err
	}
	limits, err := lockLimitRecord(ctx, tx, userID, date)
	if err != nil {
		return err
	}

	deduct := amount
	if deduct > balance {
		deduct = balance
	}

	newDaily := limits.TotalDailyPoints - amount
	if newDaily < 0 {
		newDaily = 0
	}
	newActivity := limits.ActivityPoints[activityKey] - amount
	if newActivity < 0 {
		newActivity = 0
	}
	limits.ActivityPoints[activityKey] = newActivity

	_, err = tx.Exec(ctx, `
	UPDATE user_points_limits
	SET activity_points = $1, total_daily_points = $2, updated_at = $3
	WHERE user_id = $4 AND date = $5
	`, limits.ActivityPoints, newDaily, time.Now(), userID, date)
	if err != nil {
		return fmt.Errorf("failed to unwind limit counters: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE users SET points = $1, updated_at = $2 WHERE id = $3`,
		balance-deduct, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	return recordTransaction(ctx, tx, &points.Transaction{
		UserID:        userID,
		DailyTaskID:   dailyTaskID,
		Type:          points.TransactionClawback,
		Amount:        -deduct,
		PreviousTotal: balance,
		NewTotal:      balance - deduct,
		Reason:        reason,
		Metadata:      map[string]any{"activityKey": activityKey},
	})
}

// DebitInTx freezes points for a redemption. Unlike an award unwind, an
// insufficient balance is a validation error, never a partial debit.
func (s *PointsService) DebitInTx(ctx context.Context, tx pgx.Tx, userID string, amount int, txnType points.TransactionType, reason string, metadata map[string]any) (*points.Transaction, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}

	balance, err := lockUserBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, apperr.Validation("insufficient points: have %d, need %d", balance, amount)
	}

	_, err = tx.Exec(ctx, `UPDATE users SET points = points - $1, updated_at = $2 WHERE id = $3`,
		amount, time.Now(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	txn := &points.Transaction{
		UserID:        userID,
		Type:          txnType,
		Amount:        -amount,
		PreviousTotal: balance,
		NewTotal:      balance - amount,
		Reason:        reason,
		Metadata:      metadata,
	}
	if err := recordTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreditInTx returns previously frozen points, bypassing the caps: a refund
// is not new earning.
func (s *PointsService) CreditInTx(ctx context.Context, tx pgx.Tx, userID string, amount int, txnType points.TransactionType, reason string, metadata map[string]any) (*points.Transaction, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}

	balance, err := lockUserBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE users SET points = points + $1, updated_at = $2 WHERE id = $3`,
		amount, time.Now(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit balance: %w", err)
	}

	txn := &points.Transaction{
		UserID:        userID,
		Type:          txnType,
		Amount:        amount,
		PreviousTotal: balance,
		NewTotal:      balance + amount,
		Reason:        reason,
		Metadata:      metadata,
	}
	if err := recordTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// lockUserBalance takes the user row lock that serializes every balance
// mutation for one user.
func lockUserBalance(ctx context.Context, tx pgx.Tx, userID string) (int, error) {
	var balance int
	err := tx.QueryRow(ctx, `SELECT points FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("user %s", userID)
		}
		return 0, fmt.Errorf("failed to lock user row: %w", err)
	}
	return balance, nil
}

// lockLimitRecord upserts then locks the per-day counter row. The upsert
// uses ON CONFLICT DO NOTHING so two racing completions both land on the
// same row and queue behind the FOR UPDATE.
func lockLimitRecord(ctx context.Context, tx pgx.Tx, userID, date string) (*points.LimitRecord, error) {
	_, err := tx.Exec(ctx, `
	INSERT INTO user_points_limits (user_id, date, activity_points, total_daily_points, game_time_used, game_time_available, updated_at)
	VALUES ($1, $2, '{}', 0, 0, 0, $3)
	ON CONFLICT (user_id, date) DO NOTHING
	`, userID, date, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert limit record: %w", err)
	}

	rec := &points.LimitRecord{UserID: userID, Date: date}
	err = tx.QueryRow(ctx, `
	SELECT activity_points, total_daily_points, game_time_used, game_time_available, updated_at
	FROM user_points_limits
	WHERE user_id = $1 AND date = $2
	FOR UPDATE
	`, userID, date).Scan(
		&rec.ActivityPoints,
		&rec.TotalDailyPoints,
		&rec.GameTimeUsed,
		&rec.GameTimeAvailable,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock limit record: %w", err)
	}
	if rec.ActivityPoints == nil {
		rec.ActivityPoints = make(map[string]int)
	}
	return rec, nil
}

func recordTransaction(ctx context.Context, tx pgx.Tx, txn *points.Transaction) error {
	txn.ID = uuid.New().String()
	txn.CreatedAt = time.Now()
	_, err := tx.Exec(ctx, `
	INSERT INTO points_transactions (id, user_id, daily_task_id, type, amount, previous_total, new_total, reason, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		txn.ID,
		txn.UserID,
		txn.DailyTaskID,
		txn.Type,
		txn.Amount,
		txn.PreviousTotal,
		txn.NewTotal,
		txn.Reason,
		txn.Metadata,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// rewardConfigInTx reads the active caps, falling back to the defaults when
// no row is configured.
func (s *PointsService) rewardConfigInTx(ctx context.Context, tx pgx.Tx) (points.RewardConfig, error) {
	cfg := points.DefaultRewardConfig()
	err := tx.QueryRow(ctx, `
	SELECT global_daily_cap, weekly_cap, base_game_time_minutes
	FROM reward_configs
	WHERE is_active = true
	ORDER BY updated_at DESC
	LIMIT 1
	`).Scan(&cfg.GlobalDailyCap, &cfg.WeeklyCap, &cfg.BaseGameTimeMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load reward config: %w", err)
	}
	return cfg, nil
}

// ResolveRule finds the active scoring rule for a catalog task, falling back
// to the one-point default so unconfigured activities still score.
func (s *PointsService) ResolveRule(ctx context.Context, category task.Category, activityKey string) (points.Rule, error) {
	rule := points.Rule{}
	err := s.db.QueryRow(ctx, `
	SELECT id, category, activity_key, base_points, bonus_rules, daily_limit, multipliers, is_active, created_at, updated_at
	FROM points_rules
	WHERE category = $1 AND activity_key = $2 AND is_active = true
	`, category, activityKey).Scan(
		&rule.ID,
		&rule.Category,
		&rule.ActivityKey,
		&rule.BasePoints,
		&rule.BonusRules,
		&rule.DailyLimit,
		&rule.Multipliers,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return points.DefaultRule(category, activityKey), nil
		}
		return rule, fmt.Errorf("failed to resolve points rule: %w", err)
	}
	return rule, nil
}

func (s *PointsService) CreateRule(ctx context.Context, req *points.CreateRuleRequest) (*points.Rule, error) {
	if !req.Category.IsValid() {
		return nil, apperr.Validation("unknown category %q", req.Category)
	}
	if req.ActivityKey == "" || req.BasePoints <= 0 {
		return nil, apperr.Validation("activityKey and a positive basePoints are required")
	}

	rule := &points.Rule{
		ID:          uuid.New().String(),
		Category:    req.Category,
		ActivityKey: req.ActivityKey,
		BasePoints:  req.BasePoints,
		BonusRules:  req.BonusRules,
		DailyLimit:  req.DailyLimit,
		Multipliers: req.Multipliers,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	_, err := s.db.Exec(ctx, `
	INSERT INTO points_rules (id, category, activity_key, base_points, bonus_rules, daily_limit, multipliers, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		rule.ID, rule.Category, rule.ActivityKey, rule.BasePoints,
		rule.BonusRules, rule.DailyLimit, rule.Multipliers,
		rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create points rule: %w", err)
	}
	return rule, nil
}

func (s *PointsService) ListRules(ctx context.Context) ([]*points.Rule, error) {
	rows, err := s.db.Query(ctx, `
	SELECT id, category, activity_key, base_points, bonus_rules, daily_limit, multipliers, is_active, created_at, updated_at
	FROM points_rules
	ORDER BY category, activity_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list points rules: %w", err)
	}
	defer rows.Close()

	var rules []*points.Rule
	for rows.Next() {
		rule := &points.Rule{}
		err := rows.Scan(
			&rule.ID,
			&rule.Category,
			&rule.ActivityKey,
			&rule.BasePoints,
			&rule.BonusRules,
			&rule.DailyLimit,
			&rule.Multipliers,
			&rule.IsActive,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (s *PointsService) UpdateRule(ctx context.Context, id string, req *points.UpdateRuleRequest) (*points.Rule, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rule := &points.Rule{}
	err = tx.QueryRow(ctx, `
	SELECT id, category, activity_key, base_points, bonus_rules, daily_limit, multipliers, is_active, created_at, updated_at
	FROM points_rules
	WHERE id = $1
	FOR UPDATE
	`, id).Scan(
		&rule.ID,
		&rule.Category,
		&rule.ActivityKey,
		&rule.BasePoints,
		&rule.BonusRules,
		&rule.DailyLimit,
		&rule.Multipliers,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("points rule %s", id)
		}
		return nil, fmt.Errorf("failed to load points rule: %w", err)
	}

	if req.BasePoints != nil {
		rule.BasePoints = *req.BasePoints
	}
	if req.BonusRules != nil {
		rule.BonusRules = req.BonusRules
	}
	if req.DailyLimit != nil {
		rule.DailyLimit = req.DailyLimit
	}
	if req.Multipliers != nil {
		rule.Multipliers = req.Multipliers
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.UpdatedAt = time.Now()

	_, err = tx.Exec(ctx, `
	UPDATE points_rules
	SET base_points = $1, bonus_rules = $2, daily_limit = $3, multipliers = $4, is_active = $5, updated_at = $6
	WHERE id = $7
	`, rule.BasePoints, rule.BonusRules, rule.DailyLimit, rule.Multipliers, rule.IsActive, rule.UpdatedAt, rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update points rule: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return rule, nil
}

// GetHistory returns the paginated ledger newest-first plus lifetime earn
// and spend totals.
func (s *PointsService) GetHistory(ctx context.Context, userID string, page, pageSize int) (*points.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var totalItems int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM points_transactions WHERE user_id = $1`, userID).Scan(&totalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var summary points.HistorySummary
	err = s.db.QueryRow(ctx, `
	SELECT
		COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)
	FROM points_transactions
	WHERE user_id = $1
	`, userID).Scan(&summary.TotalEarned, &summary.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	summary.NetGain = summary.TotalEarned - summary.TotalSpent

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, daily_task_id, type, amount, previous_total, new_total, reason, metadata, created_at
	FROM points_transactions
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3
	`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*points.Transaction{}
	for rows.Next() {
		txn := &points.Transaction{}
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.DailyTaskID,
			&txn.Type,
			&txn.Amount,
			&txn.PreviousTotal,
			&txn.NewTotal,
			&txn.Reason,
			&txn.Metadata,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	return &points.HistoryPage{
		Transactions: transactions,
		Page:         page,
		PageSize:     pageSize,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		Summary:      summary,
	}, nil
}

// GetDaySummary reports the remaining daily and weekly headroom plus the
// per-activity breakdown for one date.
func (s *PointsService) GetDaySummary(ctx context.Context, userID, date string) (*points.DaySummary, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cfg, err := s.rewardConfigInTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	rec := &points.LimitRecord{ActivityPoints: map[string]int{}}
	err = tx.QueryRow(ctx, `
	SELECT activity_points, total_daily_points
	FROM user_points_limits
	WHERE user_id = $1 AND date = $2
	`, userID, date).Scan(&rec.ActivityPoints, &rec.TotalDailyPoints)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load limit record: %w", err)
	}
	if rec.ActivityPoints == nil {
		rec.ActivityPoints = map[string]int{}
	}

	weekStart, weekEnd := weekBounds(date)
	var weeklyTotal int
	err = tx.QueryRow(ctx, `
	SELECT COALESCE(SUM(total_daily_points), 0)
	FROM user_points_limits
	WHERE user_id = $1 AND date >= $2 AND date <= $3
	`, userID, weekStart, weekEnd).Scan(&weeklyTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly points: %w", err)
	}

	var balance user.BalanceSummary
	err = tx.QueryRow(ctx, `
	SELECT points, current_streak, medal_bronze, medal_silver, medal_gold, medal_diamond
	FROM users
	WHERE id = $1
	`, userID).Scan(
		&balance.Points,
		&balance.CurrentStreak,
		&balance.Medals.Bronze,
		&balance.Medals.Silver,
		&balance.Medals.Gold,
		&balance.Medals.Diamond,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %s", userID)
		}
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	activities := make(map[string]points.ActivityHeadroom, len(rec.ActivityPoints))
	for key, current := range rec.ActivityPoints {
		activities[key] = points.ActivityHeadroom{Current: current}
	}

	return &points.DaySummary{
		Date:            date,
		TotalToday:      rec.TotalDailyPoints,
		DailyLimit:      cfg.GlobalDailyCap,
		DailyRemaining:  max(0, cfg.GlobalDailyCap-rec.TotalDailyPoints),
		Activities:      activities,
		TotalThisWeek:   weeklyTotal,
		WeeklyLimit:     cfg.WeeklyCap,
		WeeklyRemaining: max(0, cfg.WeeklyCap-weeklyTotal),
		Balance:         balance,
	}, nil
}

// weekBounds returns the Monday and Sunday of the ISO week containing date.
// A malformed date falls back to the date itself for both bounds.
func weekBounds(date string) (string, string) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date, date
	}
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start := d.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
