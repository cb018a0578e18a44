package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/dailytask"
	"taskQuestAPI/internal/notification"
	"taskQuestAPI/internal/points"
	"taskQuestAPI/internal/task"
	"taskQuestAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DailyTaskService struct {
	db            *pgxpool.Pool
	points        *PointsService
	streaks       *StreakService
	notifications *NotificationService
}

func NewDailyTaskService(db *pgxpool.Pool, points *PointsService, streaks *StreakService, notifications *NotificationService) *DailyTaskService {
	return &DailyTaskService{
		db:            db,
		points:        points,
		streaks:       streaks,
		notifications: notifications,
	}
}

const dailyTaskColumns = `dt.id, dt.user_id, dt.task_id, dt.date::text, dt.status, dt.approval_status, dt.planned_time,
	dt.notes, dt.evidence_text, dt.evidence_media, dt.points_earned, dt.points_credited, dt.bonus_points,
	dt.approved_by, dt.approval_notes, dt.completed_at, dt.approved_at, dt.created_at, dt.updated_at`

const dailyTaskColumnsBare = `id, user_id, task_id, date::text, status, approval_status, planned_time,
	notes, evidence_text, evidence_media, points_earned, points_credited, bonus_points,
	approved_by, approval_notes, completed_at, approved_at, created_at, updated_at`

const joinedTaskColumns = `t.id, t.title, t.description, t.category, t.activity_key, t.difficulty,
	t.estimated_minutes, t.base_points, t.requires_evidence`

func scanDailyTask(row pgx.Row) (*dailytask.DailyTask, error) {
	dt := &dailytask.DailyTask{}
	err := row.Scan(
		&dt.ID,
		&dt.UserID,
		&dt.TaskID,
		&dt.Date,
		&dt.Status,
		&dt.ApprovalStatus,
		&dt.PlannedTime,
		&dt.Notes,
		&dt.EvidenceText,
		&dt.EvidenceMedia,
		&dt.PointsEarned,
		&dt.PointsCredited,
		&dt.BonusPoints,
		&dt.ApprovedBy,
		&dt.ApprovalNotes,
		&dt.CompletedAt,
		&dt.ApprovedAt,
		&dt.CreatedAt,
		&dt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return dt, nil
}

// CreateDailyTask plans one instance of a catalog task for a date.
func (s *DailyTaskService) CreateDailyTask(ctx context.Context, owner *user.User, req *dailytask.CreateDailyTaskRequest) (*dailytask.DailyTask, error) {
	if req.TaskID == "" || req.Date == "" {
		return nil, apperr.Validation("taskId and date are required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}

	var isActive bool
	err := s.db.QueryRow(ctx, `SELECT is_active FROM tasks WHERE id = $1`, req.TaskID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("task %s", req.TaskID)
		}
		return nil, fmt.Errorf("failed to check task: %w", err)
	}
	if !isActive {
		return nil, apperr.Validation("task %s is no longer active", req.TaskID)
	}

	query := `
	INSERT INTO daily_tasks (id, user_id, task_id, date, status, planned_time, notes, points_earned, points_credited, created_at, updated_at)
	VALUES ($1, $2, $3, $4, 'planned', $5, $6, 0, false, $7, $8)
	RETURNING ` + dailyTaskColumnsBare

	dt, err := scanDailyTask(s.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		owner.ID,
		req.TaskID,
		req.Date,
		req.PlannedTime,
		req.Notes,
		time.Now(),
		time.Now(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Validation("task already planned for %s", req.Date)
		}
		return nil, fmt.Errorf("failed to create daily task: %w", err)
	}
	return dt, nil
}

// ListDailyTasks returns instances for one user and optional date/status
// filters. A requester may read their own data or a linked child's.
func (s *DailyTaskService) ListDailyTasks(ctx context.Context, requester *user.User, targetUserID, date string, status dailytask.Status) ([]*dailytask.DailyTask, error) {
	if targetUserID == "" {
		targetUserID = requester.ID
	}
	if err := s.authorizeRead(ctx, requester, targetUserID); err != nil {
		return nil, err
	}

	query := `
	SELECT ` + dailyTaskColumns + `, ` + joinedTaskColumns + `
	FROM daily_tasks dt
	JOIN tasks t ON t.id = dt.task_id
	WHERE dt.user_id = $1`
	args := []any{targetUserID}

	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(" AND dt.date = $%d", len(args))
	}
	if status != "" {
		if !status.IsValid() {
			return nil, apperr.Validation("unknown status %q", status)
		}
		args = append(args, status)
		query += fmt.Sprintf(" AND dt.status = $%d", len(args))
	}
	query += ` ORDER BY dt.date DESC, dt.created_at`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily tasks: %w", err)
	}
	defer rows.Close()

	return collectDailyTasksWithTask(rows)
}

// UpdateDailyTask applies a student edit. Moving to completed runs the full
// scoring pipeline; everything else is a plain field update.
func (s *DailyTaskService) UpdateDailyTask(ctx context.Context, requester *user.User, id string, req *dailytask.UpdateDailyTaskRequest) (*dailytask.UpdateResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dt, err := scanDailyTask(tx.QueryRow(ctx, `SELECT `+dailyTaskColumnsBare+` FROM daily_tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("daily task %s", id)
		}
		return nil, fmt.Errorf("failed to load daily task: %w", err)
	}
	if dt.UserID != requester.ID {
		return nil, apperr.Forbidden("only the owner may modify this task")
	}

	if req.Notes != nil {
		dt.Notes = req.Notes
	}
	if req.EvidenceText != nil {
		dt.EvidenceText = req.EvidenceText
	}
	if req.EvidenceMedia != nil {
		dt.EvidenceMedia = req.EvidenceMedia
	}

	result := &dailytask.UpdateResult{DailyTask: dt}

	if req.Status != nil && *req.Status != dt.Status {
		next := *req.Status
		if !next.IsValid() {
			return nil, apperr.Validation("unknown status %q", next)
		}
		if !dt.Status.CanTransition(next) {
			return nil, apperr.Validation("cannot move a %s task to %s", dt.Status, next)
		}
		dt.Status = next

		if next == dailytask.StatusCompleted {
			msg, err := s.completeInTx(ctx, tx, dt, req)
			if err != nil {
				return nil, err
			}
			result.AwardMessage = msg
		}
	}

	dt.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx, `
	UPDATE daily_tasks
	SET status = $1, approval_status = $2, notes = $3, evidence_text = $4, evidence_media = $5,
	    points_earned = $6, points_credited = $7, completed_at = $8, approved_at = $9, updated_at = $10
	WHERE id = $11
	`,
		dt.Status, dt.ApprovalStatus, dt.Notes, dt.EvidenceText, dt.EvidenceMedia,
		dt.PointsEarned, dt.PointsCredited, dt.CompletedAt, dt.ApprovedAt, dt.UpdatedAt, dt.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update daily task: %w", err)
	}

	// Any status change can flip the day between fully and partially
	// completed, so the streak is re-evaluated on every transition.
	var streakOutcome *StreakOutcome
	if req.Status != nil {
		streakOutcome, err = s.streaks.EvaluateInTx(ctx, tx, dt.UserID, dt.Date)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.notifyAfterCompletion(ctx, dt, streakOutcome)
	return result, nil
}

// completeInTx runs calc → caps → coordinator for a completion. Evidence
// tasks stop at pending with provisional points; the rest auto-approve and
// credit in the same transaction.
func (s *DailyTaskService) completeInTx(ctx context.Context, tx pgx.Tx, dt *dailytask.DailyTask, req *dailytask.UpdateDailyTaskRequest) (string, error) {
	var t task.Task
	err := tx.QueryRow(ctx, `
	SELECT id, title, category, activity_key, difficulty, base_points, requires_evidence
	FROM tasks
	WHERE id = $1
	`, dt.TaskID).Scan(&t.ID, &t.Title, &t.Category, &t.ActivityKey, &t.Difficulty, &t.BasePoints, &t.RequiresEvidence)
	if err != nil {
		return "", fmt.Errorf("failed to load task for completion: %w", err)
	}

	rule, err := s.points.ResolveRule(ctx, t.Category, t.ActivityKey)
	if err != nil {
		return "", err
	}
	// No configured rule for this activity: the catalog task's own points
	// are the base.
	if rule.ID == "" {
		rule.BasePoints = t.BasePoints
	}

	var medals user.Medals
	err = tx.QueryRow(ctx, `
	SELECT medal_bronze, medal_silver, medal_gold, medal_diamond FROM users WHERE id = $1
	`, dt.UserID).Scan(&medals.Bronze, &medals.Silver, &medals.Gold, &medals.Diamond)
	if err != nil {
		return "", fmt.Errorf("failed to load medals: %w", err)
	}

	meta := points.CompletionMeta{Difficulty: t.Difficulty}
	if req.DurationMinutes != nil {
		meta.DurationMinutes = *req.DurationMinutes
	}
	if req.Quality != nil {
		meta.Quality = *req.Quality
	}
	if dt.EvidenceText != nil {
		meta.WordCount = len(strings.Fields(*dt.EvidenceText))
	}

	breakdown := points.Calculate(rule, meta, medals)

	now := time.Now()
	dt.CompletedAt = &now

	if t.RequiresEvidence {
		pending := dailytask.ApprovalPending
		dt.ApprovalStatus = &pending
		dt.PointsEarned = breakdown.TotalPoints
		dt.PointsCredited = false
		return fmt.Sprintf("Waiting for approval: %d points pending", breakdown.TotalPoints), nil
	}

	award, err := s.points.AwardInTx(ctx, tx, AwardParams{
		UserID:      dt.UserID,
		Date:        dt.Date,
		DailyTaskID: &dt.ID,
		ActivityKey: t.ActivityKey,
		ActivityCap: rule.DailyLimit,
		Base:        breakdown.TotalPoints,
		Reason:      "Points earned from completed task: " + t.Title,
	})
	if err != nil {
		return "", err
	}

	approved := dailytask.ApprovalApproved
	dt.ApprovalStatus = &approved
	dt.ApprovedAt = &now
	dt.PointsEarned = award.ActualPoints
	dt.PointsCredited = award.ActualPoints > 0

	return awardMessage(award), nil
}

// DeleteDailyTask removes a planned instance. Anything past planned has
// history attached and stays.
func (s *DailyTaskService) DeleteDailyTask(ctx context.Context, requester *user.User, id string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID string
	var status dailytask.Status
	err = tx.QueryRow(ctx, `SELECT user_id, status FROM daily_tasks WHERE id = $1 FOR UPDATE`, id).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("daily task %s", id)
		}
		return fmt.Errorf("failed to load daily task: %w", err)
	}
	if ownerID != requester.ID {
		return apperr.Forbidden("only the owner may delete this task")
	}
	if status != dailytask.StatusPlanned {
		return apperr.Validation("only planned tasks can be deleted")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM daily_tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete daily task: %w", err)
	}
	return tx.Commit(ctx)
}

// GetPendingApprovals lists the completed, evidence-bearing instances of a
// parent's children that still await a decision.
func (s *DailyTaskService) GetPendingApprovals(ctx context.Context, parent *user.User) ([]*dailytask.DailyTask, error) {
	if parent.Role != user.RoleParent {
		return nil, apperr.Forbidden("only parents review tasks")
	}

	rows, err := s.db.Query(ctx, `
	SELECT `+dailyTaskColumns+`, `+joinedTaskColumns+`
	FROM daily_tasks dt
	JOIN tasks t ON t.id = dt.task_id
	JOIN users u ON u.id = dt.user_id
	WHERE u.parent_id = $1 AND dt.status = 'completed' AND dt.approval_status = 'pending'
	ORDER BY dt.completed_at
	`, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	defer rows.Close()

	return collectDailyTasksWithTask(rows)
}

// Decide applies a parent's approve or reject to a pending instance.
func (s *DailyTaskService) Decide(ctx context.Context, parent *user.User, id string, req *dailytask.ApprovalRequest) (*dailytask.UpdateResult, error) {
	if req.Action != "approve" && req.Action != "reject" {
		return nil, apperr.Validation("action must be approve or reject")
	}
	if req.BonusPoints != nil && *req.BonusPoints < 0 {
		return nil, apperr.Validation("bonusPoints must not be negative")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dt, err := scanDailyTask(tx.QueryRow(ctx, `SELECT `+dailyTaskColumnsBare+` FROM daily_tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("daily task %s", id)
		}
		return nil, fmt.Errorf("failed to load daily task: %w", err)
	}

	isParent, err := isParentOfInTx(ctx, tx, parent.ID, dt.UserID)
	if err != nil {
		return nil, err
	}
	if !isParent {
		return nil, apperr.Forbidden("only the owner's parent may decide this task")
	}
	if dt.ApprovalStatus == nil || dt.Status != dailytask.StatusCompleted {
		return nil, apperr.Validation("task is not awaiting approval")
	}
	if dt.ApprovalStatus.Decided() {
		return nil, apperr.Conflict("task already decided")
	}

	var taskTitle, activityKey string
	var category task.Category
	err = tx.QueryRow(ctx, `SELECT title, category, activity_key FROM tasks WHERE id = $1`, dt.TaskID).
		Scan(&taskTitle, &category, &activityKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	now := time.Now()
	result := &dailytask.UpdateResult{DailyTask: dt}

	if req.Action == "approve" {
		rule, err := s.points.ResolveRule(ctx, category, activityKey)
		if err != nil {
			return nil, err
		}

		bonus := 0
		if req.BonusPoints != nil {
			bonus = *req.BonusPoints
		}

		// The combined amount competes against the caps on the decision
		// date, exactly as a fresh completion would.
		award, err := s.points.AwardInTx(ctx, tx, AwardParams{
			UserID:      dt.UserID,
			Date:        now.Format("2006-01-02"),
			DailyTaskID: &dt.ID,
			ActivityKey: activityKey,
			ActivityCap: rule.DailyLimit,
			Base:        dt.PointsEarned,
			Bonus:       bonus,
			Reason:      "Points earned from approved task: " + taskTitle,
		})
		if err != nil {
			return nil, err
		}

		approved := dailytask.ApprovalApproved
		dt.ApprovalStatus = &approved
		dt.ApprovedBy = &parent.ID
		dt.ApprovalNotes = req.ApprovalNotes
		dt.ApprovedAt = &now
		dt.PointsEarned = award.ActualPoints
		dt.PointsCredited = award.ActualPoints > 0
		dt.BonusPoints = req.BonusPoints
		result.AwardMessage = awardMessage(award)
	} else {
		if dt.PointsCredited && dt.PointsEarned > 0 {
			err = s.points.ClawbackInTx(ctx, tx, dt.UserID, dt.Date, &dt.ID, dt.PointsEarned, activityKey,
				"Points reversed for rejected task: "+taskTitle)
			if err != nil {
				return nil, err
			}
		}

		rejected := dailytask.ApprovalRejected
		dt.ApprovalStatus = &rejected
		dt.ApprovedBy = &parent.ID
		dt.ApprovalNotes = req.ApprovalNotes
		dt.PointsEarned = 0
		dt.PointsCredited = false
		dt.Status = dailytask.StatusInProgress
		dt.CompletedAt = nil
	}

	dt.UpdatedAt = now
	_, err = tx.Exec(ctx, `
	UPDATE daily_tasks
	SET status = $1, approval_status = $2, points_earned = $3, points_credited = $4, bonus_points = $5,
	    approved_by = $6, approval_notes = $7, completed_at = $8, approved_at = $9, updated_at = $10
	WHERE id = $11
	`,
		dt.Status, dt.ApprovalStatus, dt.PointsEarned, dt.PointsCredited, dt.BonusPoints,
		dt.ApprovedBy, dt.ApprovalNotes, dt.CompletedAt, dt.ApprovedAt, dt.UpdatedAt, dt.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update daily task: %w", err)
	}

	// A rejection re-opens the day; an approval may have just finished it.
	streakOutcome, err := s.streaks.EvaluateInTx(ctx, tx, dt.UserID, dt.Date)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.notifyAfterDecision(ctx, dt, taskTitle, req.Action, streakOutcome)
	return result, nil
}

// GetStats aggregates completion stats for a date range.
func (s *DailyTaskService) GetStats(ctx context.Context, requester *user.User, targetUserID, startDate, endDate string) (*dailytask.WeeklyStats, error) {
	if targetUserID == "" {
		targetUserID = requester.ID
	}
	if err := s.authorizeRead(ctx, requester, targetUserID); err != nil {
		return nil, err
	}
	if startDate == "" || endDate == "" {
		end := time.Now()
		start := end.AddDate(0, 0, -6)
		startDate = start.Format("2006-01-02")
		endDate = end.Format("2006-01-02")
	}

	stats := &dailytask.WeeklyStats{}
	err := s.db.QueryRow(ctx, `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'completed'),
		COUNT(*) FILTER (WHERE status = 'in_progress'),
		COUNT(*) FILTER (WHERE status = 'planned'),
		COUNT(*) FILTER (WHERE status = 'skipped'),
		COALESCE(SUM(points_earned) FILTER (WHERE points_credited), 0)
	FROM daily_tasks
	WHERE user_id = $1 AND date >= $2 AND date <= $3
	`, targetUserID, startDate, endDate).Scan(
		&stats.TotalTasks,
		&stats.CompletedTasks,
		&stats.InProgressTasks,
		&stats.PlannedTasks,
		&stats.SkippedTasks,
		&stats.TotalPointsEarned,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks)
	}
	return stats, nil
}

func (s *DailyTaskService) authorizeRead(ctx context.Context, requester *user.User, targetUserID string) error {
	if targetUserID == requester.ID {
		return nil
	}
	var ok bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND parent_id = $2)
	`, targetUserID, requester.ID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("failed to check parent link: %w", err)
	}
	if !ok {
		return apperr.Forbidden("not authorized to view this user's tasks")
	}
	return nil
}

func isParentOfInTx(ctx context.Context, tx pgx.Tx, parentID, childID string) (bool, error) {
	var ok bool
	err := tx.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND parent_id = $2)
	`, childID, parentID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check parent link: %w", err)
	}
	return ok, nil
}

func awardMessage(award *points.AwardResult) string {
	switch {
	case award.IsLimitReached:
		return "Daily points limit reached: no points awarded"
	case award.IsPointsTruncated:
		return fmt.Sprintf("Daily limit applied: %d of %d points awarded", award.ActualPoints, award.RequestedPoints)
	default:
		return fmt.Sprintf("%d points awarded", award.ActualPoints)
	}
}

func (s *DailyTaskService) notifyAfterCompletion(ctx context.Context, dt *dailytask.DailyTask, streak *StreakOutcome) {
	if s.notifications == nil {
		return
	}
	if dt.Status == dailytask.StatusCompleted && dt.ApprovalStatus != nil && *dt.ApprovalStatus == dailytask.ApprovalPending {
		if err := s.notifications.NotifyParentOf(ctx, dt.UserID, notification.NotificationApprovalNeeded,
			"Task waiting for review", "A completed task needs your approval.",
			map[string]any{"dailyTaskId": dt.ID}); err != nil {
			log.Printf("DailyTaskService: approval notification failed: %v", err)
		}
	}
	s.notifyMedals(ctx, dt.UserID, streak)
}

func (s *DailyTaskService) notifyAfterDecision(ctx context.Context, dt *dailytask.DailyTask, taskTitle, action string, streak *StreakOutcome) {
	if s.notifications == nil {
		return
	}
	title := "Task approved"
	body := fmt.Sprintf("%q was approved: %d points", taskTitle, dt.PointsEarned)
	if action == "reject" {
		title = "Task needs another try"
		body = fmt.Sprintf("%q was sent back. Check the notes and resubmit.", taskTitle)
	}
	if err := s.notifications.Notify(ctx, dt.UserID, notification.NotificationApprovalDecided, title, body,
		map[string]any{"dailyTaskId": dt.ID, "action": action}); err != nil {
		log.Printf("DailyTaskService: decision notification failed: %v", err)
	}
	s.notifyMedals(ctx, dt.UserID, streak)
}

func (s *DailyTaskService) notifyMedals(ctx context.Context, userID string, streak *StreakOutcome) {
	if streak == nil {
		return
	}
	for _, medal := range streak.UnlockedMedals {
		if err := s.notifications.Notify(ctx, userID, notification.NotificationMedalUnlocked,
			"Medal unlocked!", fmt.Sprintf("You earned the %s medal for a %d-day streak.", medal, streak.CurrentStreak),
			map[string]any{"medal": medal}); err != nil {
			log.Printf("DailyTaskService: medal notification failed: %v", err)
		}
	}
}

func collectDailyTasksWithTask(rows pgx.Rows) ([]*dailytask.DailyTask, error) {
	tasks := []*dailytask.DailyTask{}
	for rows.Next() {
		dt := &dailytask.DailyTask{}
		t := &task.Task{}
		err := rows.Scan(
			&dt.ID,
			&dt.UserID,
			&dt.TaskID,
			&dt.Date,
			&dt.Status,
			&dt.ApprovalStatus,
			&dt.PlannedTime,
			&dt.Notes,
			&dt.EvidenceText,
			&dt.EvidenceMedia,
			&dt.PointsEarned,
			&dt.PointsCredited,
			&dt.BonusPoints,
			&dt.ApprovedBy,
			&dt.ApprovalNotes,
			&dt.CompletedAt,
			&dt.ApprovedAt,
			&dt.CreatedAt,
			&dt.UpdatedAt,
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.ActivityKey,
			&t.Difficulty,
			&t.EstimatedMinutes,
			&t.BasePoints,
			&t.RequiresEvidence,
		)
		if err != nil {
			return nil, err
		}
		dt.Task = t
		tasks = append(tasks, dt)
	}
	return tasks, rows.Err()
}
