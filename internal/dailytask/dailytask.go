package dailytask

import (
	"time"

	"taskQuestAPI/internal/task"
)

type EvidenceItem struct {
	Type string `json:"type"` // text | photo | video
	URL  string `json:"url"`
}

// DailyTask is one day's occurrence of a catalog task for one user.
type DailyTask struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	TaskID         string          `json:"taskId"`
	Date           string          `json:"date"` // YYYY-MM-DD, user-local
	Status         Status          `json:"status"`
	ApprovalStatus *ApprovalStatus `json:"approvalStatus,omitempty"`
	PlannedTime    *string         `json:"plannedTime,omitempty"` // HH:MM
	Notes          *string         `json:"notes,omitempty"`
	EvidenceText   *string         `json:"evidenceText,omitempty"`
	EvidenceMedia  []EvidenceItem  `json:"evidenceMedia,omitempty"`

	// PointsEarned on a pending-approval instance is provisional: computed
	// at completion time but not reflected in the balance until approval.
	// PointsCredited flips true only when an award transaction committed.
	PointsEarned   int  `json:"pointsEarned"`
	PointsCredited bool `json:"pointsCredited"`
	BonusPoints    *int `json:"bonusPoints,omitempty"`

	ApprovedBy    *string    `json:"approvedBy,omitempty"`
	ApprovalNotes *string    `json:"approvalNotes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Task is the joined catalog definition, populated on list reads.
	Task *task.Task `json:"task,omitempty"`
}
