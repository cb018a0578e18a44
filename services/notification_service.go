package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationService struct {
	db  *pgxpool.Pool
	fcm *notification.FCMService
}

// NewNotificationService builds the service. fcm may be nil; notifications
// are then stored without push delivery.
func NewNotificationService(db *pgxpool.Pool, fcm *notification.FCMService) *NotificationService {
	return &NotificationService{db: db, fcm: fcm}
}

// Notify stores an in-app notification and pushes it to the user's devices.
// Push failures are logged, never returned: delivery is best effort.
func (s *NotificationService) Notify(ctx context.Context, userID string, notifType notification.NotificationType, title, message string, data map[string]any) error {
	n := &notification.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(ctx, `
	INSERT INTO notifications (id, user_id, type, title, message, is_read, data, created_at)
	VALUES ($1, $2, $3, $4, $5, false, $6, $7)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Data, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.fcm != nil {
		tokens, err := s.deviceTokens(ctx, userID)
		if err != nil {
			log.Printf("NotificationService: failed to load device tokens: %v", err)
			return nil
		}
		if err := s.fcm.SendPush(ctx, tokens, title, message, data); err != nil {
			log.Printf("NotificationService: push failed for user %s: %v", userID, err)
		}
	}
	return nil
}

// NotifyParentOf delivers a notification to a student's linked parent, if
// one exists.
func (s *NotificationService) NotifyParentOf(ctx context.Context, childID string, notifType notification.NotificationType, title, message string, data map[string]any) error {
	var parentID *string
	err := s.db.QueryRow(ctx, `SELECT parent_id FROM users WHERE id = $1`, childID).Scan(&parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user %s", childID)
		}
		return fmt.Errorf("failed to find parent: %w", err)
	}
	if parentID == nil {
		return nil
	}
	return s.Notify(ctx, *parentID, notifType, title, message, data)
}

func (s *NotificationService) List(ctx context.Context, userID string, page, pageSize int) (*notification.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total, unread int
	err := s.db.QueryRow(ctx, `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read)
	FROM notifications
	WHERE user_id = $1
	`, userID).Scan(&total, &unread)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, type, title, message, is_read, data, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	items := []*notification.Notification{}
	for rows.Next() {
		n := &notification.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.Data, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &notification.ListResponse{
		Notifications: items,
		UnreadCount:   unread,
		TotalCount:    total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	tag, err := s.db.Exec(ctx, `
	UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification %s", id)
	}
	return nil
}

func (s *NotificationService) RegisterDevice(ctx context.Context, userID string, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return apperr.Validation("token is required")
	}
	_, err := s.db.Exec(ctx, `
	INSERT INTO device_tokens (user_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3
	`, userID, req.Token, req.Platform, time.Now())
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id, token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
