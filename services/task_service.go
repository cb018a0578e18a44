package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/task"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskService struct {
	db *pgxpool.Pool
}

func NewTaskService(db *pgxpool.Pool) *TaskService {
	return &TaskService{db: db}
}

const taskColumns = `id, title, description, category, activity_key, difficulty, estimated_minutes, base_points,
	requires_evidence, created_by, is_active, created_at, updated_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.ActivityKey,
		&t.Difficulty,
		&t.EstimatedMinutes,
		&t.BasePoints,
		&t.RequiresEvidence,
		&t.CreatedBy,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) CreateTask(ctx context.Context, createdBy string, req *task.CreateTaskRequest) (*task.Task, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if !req.Category.IsValid() {
		return nil, apperr.Validation("unknown category %q", req.Category)
	}
	if req.BasePoints <= 0 {
		return nil, apperr.Validation("basePoints must be positive")
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = task.DifficultyEasy
	}
	if !difficulty.IsValid() {
		return nil, apperr.Validation("unknown difficulty %q", req.Difficulty)
	}
	activityKey := req.ActivityKey
	if activityKey == "" {
		activityKey = string(req.Category)
	}

	query := `
	INSERT INTO tasks (id, title, description, category, activity_key, difficulty, estimated_minutes, base_points,
		requires_evidence, created_by, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11, $12)
	RETURNING ` + taskColumns

	t, err := scanTask(s.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		req.Title,
		req.Description,
		req.Category,
		activityKey,
		difficulty,
		req.EstimatedMinutes,
		req.BasePoints,
		req.RequiresEvidence,
		createdBy,
		time.Now(),
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := scanTask(s.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("task %s", id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, includeInactive bool) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY category, title`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, req *task.UpdateTaskRequest) (*task.Task, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	t, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("task %s", id)
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Difficulty != nil {
		if !req.Difficulty.IsValid() {
			return nil, apperr.Validation("unknown difficulty %q", *req.Difficulty)
		}
		t.Difficulty = *req.Difficulty
	}
	if req.EstimatedMinutes != nil {
		t.EstimatedMinutes = *req.EstimatedMinutes
	}
	if req.BasePoints != nil {
		if *req.BasePoints <= 0 {
			return nil, apperr.Validation("basePoints must be positive")
		}
		t.BasePoints = *req.BasePoints
	}
	if req.RequiresEvidence != nil {
		t.RequiresEvidence = *req.RequiresEvidence
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	t.UpdatedAt = time.Now()

	_, err = tx.Exec(ctx, `
	UPDATE tasks
	SET title = $1, description = $2, difficulty = $3, estimated_minutes = $4, base_points = $5,
	    requires_evidence = $6, is_active = $7, updated_at = $8
	WHERE id = $9
	`, t.Title, t.Description, t.Difficulty, t.EstimatedMinutes, t.BasePoints, t.RequiresEvidence, t.IsActive, t.UpdatedAt, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return t, nil
}

// DeleteTask soft-deletes a catalog entry. Planned instances keep their
// join; the task just stops being plannable.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE tasks SET is_active = false, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task %s", id)
	}
	return nil
}
