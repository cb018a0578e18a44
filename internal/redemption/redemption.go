package redemption

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Redemption is one reward request. Points are frozen at request time: the
// balance is debited immediately, and a rejection refunds the same amount.
type Redemption struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	RewardTitle       string     `json:"rewardTitle"`
	RewardDescription string     `json:"rewardDescription,omitempty"`
	PointsCost        int        `json:"pointsCost"`
	Status            Status     `json:"status"`
	RequestedAt       time.Time  `json:"requestedAt"`
	ProcessedAt       *time.Time `json:"processedAt,omitempty"`
	ProcessedBy       *string    `json:"processedBy,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}
