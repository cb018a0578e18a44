package task

type CreateTaskRequest struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description,omitempty"`
	Category         Category   `json:"category" validate:"required"`
	ActivityKey      string     `json:"activityKey,omitempty"`
	Difficulty       Difficulty `json:"difficulty,omitempty"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty"`
	BasePoints       int        `json:"basePoints" validate:"required"`
	RequiresEvidence bool       `json:"requiresEvidence"`
}

type UpdateTaskRequest struct {
	Title            *string     `json:"title,omitempty"`
	Description      *string     `json:"description,omitempty"`
	Difficulty       *Difficulty `json:"difficulty,omitempty"`
	EstimatedMinutes *int        `json:"estimatedMinutes,omitempty"`
	BasePoints       *int        `json:"basePoints,omitempty"`
	RequiresEvidence *bool       `json:"requiresEvidence,omitempty"`
	IsActive         *bool       `json:"isActive,omitempty"`
}
