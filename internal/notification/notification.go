package notification

import (
	"time"
)

type NotificationType string

const (
	NotificationApprovalNeeded      NotificationType = "approval_needed"
	NotificationApprovalDecided     NotificationType = "approval_decided"
	NotificationPointsAwarded       NotificationType = "points_awarded"
	NotificationMedalUnlocked       NotificationType = "medal_unlocked"
	NotificationRedemptionRequested NotificationType = "redemption_requested"
	NotificationRedemptionDecided   NotificationType = "redemption_decided"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	Data      map[string]any   `json:"data,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// DeviceToken is one FCM push target for a user.
type DeviceToken struct {
	UserID   string `json:"userId"`
	Token    string `json:"token"`
	Platform string `json:"platform"` // ios | android | web
}
