package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/dailytask"
	"taskQuestAPI/internal/points"
	"taskQuestAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestPool connects to the integration database, skipping the test when
// none is configured.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))

	t.Cleanup(func() {
		_, err := pool.Exec(context.Background(), "DELETE FROM users WHERE email LIKE 'test%@example.com'")
		if err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
		pool.Close()
	})
	return pool
}

type testFamily struct {
	parent  *user.User
	student *user.User
}

func seedFamily(t *testing.T, pool *pgxpool.Pool) testFamily {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.New().String()[:8]

	parent := &user.User{ID: uuid.New().String(), Role: user.RoleParent}
	_, err := pool.Exec(ctx, `
	INSERT INTO users (id, clerk_id, email, display_name, role)
	VALUES ($1, $2, $3, 'Test Parent', 'parent')
	`, parent.ID, "clerk_parent_"+suffix, fmt.Sprintf("test.parent.%s@example.com", suffix))
	require.NoError(t, err)

	student := &user.User{ID: uuid.New().String(), Role: user.RoleStudent}
	_, err = pool.Exec(ctx, `
	INSERT INTO users (id, clerk_id, email, display_name, role, parent_id)
	VALUES ($1, $2, $3, 'Test Student', 'student', $4)
	`, student.ID, "clerk_student_"+suffix, fmt.Sprintf("test.student.%s@example.com", suffix), parent.ID)
	require.NoError(t, err)

	return testFamily{parent: parent, student: student}
}

func seedTask(t *testing.T, pool *pgxpool.Pool, createdBy string, basePoints int, requiresEvidence bool) string {
	t.Helper()
	id := uuid.New().String()
	_, err := pool.Exec(context.Background(), `
	INSERT INTO tasks (id, title, category, activity_key, difficulty, base_points, requires_evidence, created_by)
	VALUES ($1, 'Read a chapter', 'reading', 'reading', 'easy', $2, $3, $4)
	`, id, basePoints, requiresEvidence, createdBy)
	require.NoError(t, err)
	return id
}

func newEngine(pool *pgxpool.Pool) (*DailyTaskService, *PointsService) {
	pointsService := NewPointsService(pool)
	streakService := NewStreakService(pool)
	return NewDailyTaskService(pool, pointsService, streakService, nil), pointsService
}

func balanceOf(t *testing.T, pool *pgxpool.Pool, userID string) int {
	t.Helper()
	var balance int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT points FROM users WHERE id = $1`, userID).Scan(&balance))
	return balance
}

func completed() dailytask.Status { return dailytask.StatusCompleted }

func TestCompleteWithoutEvidenceAutoApproves(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, false)
	engine, _ := newEngine(pool)
	ctx := context.Background()

	date := time.Now().Format("2006-01-02")
	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)
	assert.Equal(t, dailytask.StatusPlanned, dt.Status)

	status := completed()
	result, err := engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, dailytask.StatusCompleted, result.DailyTask.Status)
	require.NotNil(t, result.DailyTask.ApprovalStatus)
	assert.Equal(t, dailytask.ApprovalApproved, *result.DailyTask.ApprovalStatus)
	assert.True(t, result.DailyTask.PointsCredited)
	assert.Equal(t, 10, result.DailyTask.PointsEarned)
	assert.Equal(t, "10 points awarded", result.AwardMessage)
	assert.Equal(t, 10, balanceOf(t, pool, family.student.ID))

	// One earn transaction with a correct balance bracket
	var txnType points.TransactionType
	var amount, prev, next int
	err = pool.QueryRow(ctx, `
	SELECT type, amount, previous_total, new_total FROM points_transactions
	WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1
	`, family.student.ID).Scan(&txnType, &amount, &prev, &next)
	require.NoError(t, err)
	assert.Equal(t, points.TransactionEarn, txnType)
	assert.Equal(t, 10, amount)
	assert.Equal(t, prev+amount, next)

	// Streak: the only task of the day is completed
	var streak int
	require.NoError(t, pool.QueryRow(ctx, `SELECT current_streak FROM users WHERE id = $1`, family.student.ID).Scan(&streak))
	assert.Equal(t, 1, streak)
}

func TestCompletionTruncatedByDailyCap(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, false)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	// 15 of the default 20-point daily cap already consumed
	_, err := pool.Exec(ctx, `
	INSERT INTO user_points_limits (user_id, date, activity_points, total_daily_points)
	VALUES ($1, $2, '{"chores": 15}', 15)
	`, family.student.ID, date)
	require.NoError(t, err)

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	result, err := engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 5, result.DailyTask.PointsEarned)
	assert.Equal(t, "Daily limit applied: 5 of 10 points awarded", result.AwardMessage)
	assert.Equal(t, 5, balanceOf(t, pool, family.student.ID))

	var total int
	require.NoError(t, pool.QueryRow(ctx, `
	SELECT total_daily_points FROM user_points_limits WHERE user_id = $1 AND date = $2
	`, family.student.ID, date).Scan(&total))
	assert.Equal(t, 20, total)
}

func TestCompletionAtCapAwardsNothing(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, false)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	_, err := pool.Exec(ctx, `
	INSERT INTO user_points_limits (user_id, date, activity_points, total_daily_points)
	VALUES ($1, $2, '{"chores": 20}', 20)
	`, family.student.ID, date)
	require.NoError(t, err)

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	result, err := engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	// The completion itself still succeeds; the cap only drives messaging.
	assert.Equal(t, dailytask.StatusCompleted, result.DailyTask.Status)
	assert.Equal(t, 0, result.DailyTask.PointsEarned)
	assert.False(t, result.DailyTask.PointsCredited)
	assert.Equal(t, "Daily points limit reached: no points awarded", result.AwardMessage)
	assert.Equal(t, 0, balanceOf(t, pool, family.student.ID))
}

func TestApproveWithBonus(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, true)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	evidence := "I read the whole chapter"
	result, err := engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{
		Status:       &status,
		EvidenceText: &evidence,
	})
	require.NoError(t, err)

	// Pending: points are provisional, balance untouched
	require.NotNil(t, result.DailyTask.ApprovalStatus)
	assert.Equal(t, dailytask.ApprovalPending, *result.DailyTask.ApprovalStatus)
	assert.Equal(t, 10, result.DailyTask.PointsEarned)
	assert.False(t, result.DailyTask.PointsCredited)
	assert.Equal(t, 0, balanceOf(t, pool, family.student.ID))

	// The parent sees it in the approval queue
	queue, err := engine.GetPendingApprovals(ctx, family.parent)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, dt.ID, queue[0].ID)

	bonus := 5
	decided, err := engine.Decide(ctx, family.parent, dt.ID, &dailytask.ApprovalRequest{Action: "approve", BonusPoints: &bonus})
	require.NoError(t, err)

	assert.Equal(t, 15, decided.DailyTask.PointsEarned)
	assert.True(t, decided.DailyTask.PointsCredited)
	assert.Equal(t, 15, balanceOf(t, pool, family.student.ID))

	// Exactly one earn and one bonus entry, never merged
	rows, err := pool.Query(ctx, `
	SELECT type, amount FROM points_transactions WHERE user_id = $1 ORDER BY created_at
	`, family.student.ID)
	require.NoError(t, err)
	defer rows.Close()

	amounts := map[points.TransactionType]int{}
	for rows.Next() {
		var txnType points.TransactionType
		var amount int
		require.NoError(t, rows.Scan(&txnType, &amount))
		amounts[txnType] += amount
	}
	assert.Equal(t, 10, amounts[points.TransactionEarn])
	assert.Equal(t, 5, amounts[points.TransactionBonus])
}

func TestRejectClawsBackCreditedPoints(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, true)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	// An instance whose provisional points already reached the balance,
	// still awaiting a decision.
	dtID := uuid.New().String()
	_, err := pool.Exec(ctx, `
	INSERT INTO daily_tasks (id, user_id, task_id, date, status, approval_status, points_earned, points_credited, completed_at)
	VALUES ($1, $2, $3, $4, 'completed', 'pending', 10, true, NOW())
	`, dtID, family.student.ID, taskID, date)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `UPDATE users SET points = 10 WHERE id = $1`, family.student.ID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
	INSERT INTO user_points_limits (user_id, date, activity_points, total_daily_points)
	VALUES ($1, $2, '{"reading": 10}', 10)
	`, family.student.ID, date)
	require.NoError(t, err)

	result, err := engine.Decide(ctx, family.parent, dtID, &dailytask.ApprovalRequest{Action: "reject"})
	require.NoError(t, err)

	assert.Equal(t, dailytask.StatusInProgress, result.DailyTask.Status)
	require.NotNil(t, result.DailyTask.ApprovalStatus)
	assert.Equal(t, dailytask.ApprovalRejected, *result.DailyTask.ApprovalStatus)
	assert.Equal(t, 0, result.DailyTask.PointsEarned)
	assert.Equal(t, 0, balanceOf(t, pool, family.student.ID))

	var txnType points.TransactionType
	var amount int
	err = pool.QueryRow(ctx, `
	SELECT type, amount FROM points_transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1
	`, family.student.ID).Scan(&txnType, &amount)
	require.NoError(t, err)
	assert.Equal(t, points.TransactionClawback, txnType)
	assert.Equal(t, -10, amount)

	var total int
	require.NoError(t, pool.QueryRow(ctx, `
	SELECT total_daily_points FROM user_points_limits WHERE user_id = $1 AND date = $2
	`, family.student.ID, date).Scan(&total))
	assert.Equal(t, 0, total)
}

func TestDecideTwiceConflicts(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, true)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	_, err = engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	_, err = engine.Decide(ctx, family.parent, dt.ID, &dailytask.ApprovalRequest{Action: "approve"})
	require.NoError(t, err)

	balance := balanceOf(t, pool, family.student.ID)

	_, err = engine.Decide(ctx, family.parent, dt.ID, &dailytask.ApprovalRequest{Action: "reject"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Balance and ledger untouched by the rejected re-decision
	assert.Equal(t, balance, balanceOf(t, pool, family.student.ID))
}

func TestAuthorizationGuards(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	other := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, true)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	// Another student cannot complete someone else's instance
	status := completed()
	_, err = engine.UpdateDailyTask(ctx, other.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	// An unrelated parent cannot decide it
	_, err = engine.Decide(ctx, other.parent, dt.ID, &dailytask.ApprovalRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// Nor can an unrelated user list the owner's tasks
	_, err = engine.ListDailyTasks(ctx, other.student, family.student.ID, date, "")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRejectResetsStreak(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, true)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	_, err = engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	var streak int
	require.NoError(t, pool.QueryRow(ctx, `SELECT current_streak FROM users WHERE id = $1`, family.student.ID).Scan(&streak))
	assert.Equal(t, 1, streak)

	_, err = engine.Decide(ctx, family.parent, dt.ID, &dailytask.ApprovalRequest{Action: "reject"})
	require.NoError(t, err)

	require.NoError(t, pool.QueryRow(ctx, `SELECT current_streak FROM users WHERE id = $1`, family.student.ID).Scan(&streak))
	assert.Equal(t, 0, streak)
}

func TestDuplicatePlanRejected(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, false)
	engine, _ := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	_, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	_, err = engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPointsHistorySummary(t *testing.T) {
	pool := setupTestPool(t)
	family := seedFamily(t, pool)
	taskID := seedTask(t, pool, family.parent.ID, 10, false)
	engine, pointsService := newEngine(pool)
	ctx := context.Background()
	date := time.Now().Format("2006-01-02")

	dt, err := engine.CreateDailyTask(ctx, family.student, &dailytask.CreateDailyTaskRequest{TaskID: taskID, Date: date})
	require.NoError(t, err)

	status := completed()
	_, err = engine.UpdateDailyTask(ctx, family.student, dt.ID, &dailytask.UpdateDailyTaskRequest{Status: &status})
	require.NoError(t, err)

	history, err := pointsService.GetHistory(ctx, family.student.ID, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 10, history.Summary.TotalEarned)
	assert.Equal(t, 0, history.Summary.TotalSpent)
	assert.Equal(t, 10, history.Summary.NetGain)
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, points.TransactionEarn, history.Transactions[0].Type)
}
