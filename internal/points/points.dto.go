package points

import "taskQuestAPI/internal/task"

type CreateRuleRequest struct {
	Category    task.Category `json:"category" validate:"required"`
	ActivityKey string        `json:"activityKey" validate:"required"`
	BasePoints  int           `json:"basePoints" validate:"required"`
	BonusRules  []BonusRule   `json:"bonusRules,omitempty"`
	DailyLimit  *int          `json:"dailyLimit,omitempty"`
	Multipliers *Multipliers  `json:"multipliers,omitempty"`
}

type UpdateRuleRequest struct {
	BasePoints  *int         `json:"basePoints,omitempty"`
	BonusRules  []BonusRule  `json:"bonusRules,omitempty"`
	DailyLimit  *int         `json:"dailyLimit,omitempty"`
	Multipliers *Multipliers `json:"multipliers,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}
