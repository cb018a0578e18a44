package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/notification"
	"taskQuestAPI/internal/points"
	"taskQuestAPI/internal/redemption"
	"taskQuestAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RedemptionService struct {
	db            *pgxpool.Pool
	points        *PointsService
	notifications *NotificationService
}

func NewRedemptionService(db *pgxpool.Pool, points *PointsService, notifications *NotificationService) *RedemptionService {
	return &RedemptionService{db: db, points: points, notifications: notifications}
}

const redemptionColumns = `id, user_id, reward_title, reward_description, points_cost, status,
	requested_at, processed_at, processed_by, notes`

func scanRedemption(row pgx.Row) (*redemption.Redemption, error) {
	r := &redemption.Redemption{}
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.RewardTitle,
		&r.RewardDescription,
		&r.PointsCost,
		&r.Status,
		&r.RequestedAt,
		&r.ProcessedAt,
		&r.ProcessedBy,
		&r.Notes,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRedemption freezes the cost up front: the balance is debited in the
// same transaction that records the request, so a student cannot spend the
// same points twice while a request is pending.
func (s *RedemptionService) CreateRedemption(ctx context.Context, owner *user.User, req *redemption.CreateRedemptionRequest) (*redemption.Redemption, error) {
	if req.RewardTitle == "" {
		return nil, apperr.Validation("rewardTitle is required")
	}
	if req.PointsCost <= 0 {
		return nil, apperr.Validation("pointsCost must be positive")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	r := &redemption.Redemption{
		ID:                uuid.New().String(),
		UserID:            owner.ID,
		RewardTitle:       req.RewardTitle,
		RewardDescription: req.RewardDescription,
		PointsCost:        req.PointsCost,
		Status:            redemption.StatusPending,
		RequestedAt:       time.Now(),
	}

	_, err = s.points.DebitInTx(ctx, tx, owner.ID, req.PointsCost, points.TransactionRedemption,
		"Points frozen for reward: "+req.RewardTitle, map[string]any{"redemptionId": r.ID})
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
	INSERT INTO redemptions (id, user_id, reward_title, reward_description, points_cost, status, requested_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.UserID, r.RewardTitle, r.RewardDescription, r.PointsCost, r.Status, r.RequestedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create redemption: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if s.notifications != nil {
		if err := s.notifications.NotifyParentOf(ctx, owner.ID, notification.NotificationRedemptionRequested,
			"Reward requested", fmt.Sprintf("%s wants %q for %d points.", owner.DisplayName, r.RewardTitle, r.PointsCost),
			map[string]any{"redemptionId": r.ID}); err != nil {
			log.Printf("RedemptionService: request notification failed: %v", err)
		}
	}
	return r, nil
}

// ListRedemptions returns the requester's own redemptions, or every child's
// for a parent.
func (s *RedemptionService) ListRedemptions(ctx context.Context, requester *user.User) ([]*redemption.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE user_id = $1 ORDER BY requested_at DESC`
	arg := requester.ID
	if requester.Role == user.RoleParent {
		query = `
		SELECT ` + redemptionColumns + `
		FROM redemptions
		WHERE user_id IN (SELECT id FROM users WHERE parent_id = $1)
		ORDER BY requested_at DESC`
	}

	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := []*redemption.Redemption{}
	for rows.Next() {
		r, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, r)
	}
	return redemptions, rows.Err()
}

// ProcessRedemption applies a parent's approve or reject. Rejection refunds
// the frozen points; re-deciding is a conflict.
func (s *RedemptionService) ProcessRedemption(ctx context.Context, parent *user.User, id string, req *redemption.ProcessRedemptionRequest) (*redemption.Redemption, error) {
	if req.Action != "approve" && req.Action != "reject" {
		return nil, apperr.Validation("action must be approve or reject")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	r, err := scanRedemption(tx.QueryRow(ctx, `SELECT `+redemptionColumns+` FROM redemptions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("redemption %s", id)
		}
		return nil, fmt.Errorf("failed to load redemption: %w", err)
	}

	isParent, err := isParentOfInTx(ctx, tx, parent.ID, r.UserID)
	if err != nil {
		return nil, err
	}
	if !isParent {
		return nil, apperr.Forbidden("only the owner's parent may process this redemption")
	}
	if r.Status != redemption.StatusPending {
		return nil, apperr.Conflict("redemption already processed")
	}

	now := time.Now()
	if req.Action == "approve" {
		r.Status = redemption.StatusApproved
	} else {
		r.Status = redemption.StatusRejected
		_, err = s.points.CreditInTx(ctx, tx, r.UserID, r.PointsCost, points.TransactionRefund,
			"Points refunded for rejected reward: "+r.RewardTitle, map[string]any{"redemptionId": r.ID})
		if err != nil {
			return nil, err
		}
	}
	r.ProcessedAt = &now
	r.ProcessedBy = &parent.ID
	r.Notes = req.Notes

	_, err = tx.Exec(ctx, `
	UPDATE redemptions
	SET status = $1, processed_at = $2, processed_by = $3, notes = $4
	WHERE id = $5
	`, r.Status, r.ProcessedAt, r.ProcessedBy, r.Notes, r.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update redemption: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if s.notifications != nil {
		title := "Reward approved"
		body := fmt.Sprintf("%q is approved. Enjoy!", r.RewardTitle)
		if req.Action == "reject" {
			title = "Reward declined"
			body = fmt.Sprintf("%q was declined and %d points were refunded.", r.RewardTitle, r.PointsCost)
		}
		if err := s.notifications.Notify(ctx, r.UserID, notification.NotificationRedemptionDecided, title, body,
			map[string]any{"redemptionId": r.ID, "action": req.Action}); err != nil {
			log.Printf("RedemptionService: decision notification failed: %v", err)
		}
	}
	return r, nil
}
