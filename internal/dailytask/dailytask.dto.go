package dailytask

type CreateDailyTaskRequest struct {
	TaskID      string  `json:"taskId" validate:"required"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
	PlannedTime *string `json:"plannedTime,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateDailyTaskRequest struct {
	Status        *Status        `json:"status,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	EvidenceText  *string        `json:"evidenceText,omitempty"`
	EvidenceMedia []EvidenceItem `json:"evidenceMedia,omitempty"`
	// Completion metadata feeding the points calculation.
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Quality         *string `json:"quality,omitempty"` // normal | good | excellent
}

type ApprovalRequest struct {
	Action        string  `json:"action" validate:"required"` // approve | reject
	ApprovalNotes *string `json:"approvalNotes,omitempty"`
	BonusPoints   *int    `json:"bonusPoints,omitempty"`
}

// UpdateResult carries the mutated instance plus the award outcome so the
// handler can explain truncation to the student without treating it as an
// error.
type UpdateResult struct {
	DailyTask    *DailyTask `json:"dailyTask"`
	AwardMessage string     `json:"awardMessage,omitempty"`
}

type WeeklyStats struct {
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	InProgressTasks   int     `json:"inProgressTasks"`
	PlannedTasks      int     `json:"plannedTasks"`
	SkippedTasks      int     `json:"skippedTasks"`
	TotalPointsEarned int     `json:"totalPointsEarned"`
	CompletionRate    float64 `json:"completionRate"`
}
