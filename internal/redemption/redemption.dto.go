package redemption

type CreateRedemptionRequest struct {
	RewardTitle       string `json:"rewardTitle" validate:"required"`
	RewardDescription string `json:"rewardDescription,omitempty"`
	PointsCost        int    `json:"pointsCost" validate:"required"`
}

type ProcessRedemptionRequest struct {
	Action string  `json:"action" validate:"required"` // approve | reject
	Notes  *string `json:"notes,omitempty"`
}
