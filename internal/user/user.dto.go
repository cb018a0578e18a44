package user

type CreateUserRequest struct {
	ClerkID     string `json:"clerkId" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required"`
	Role        Role   `json:"role"`
	ParentID    string `json:"parentId,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
}

// BalanceSummary is the slice of the profile the points engine owns.
type BalanceSummary struct {
	Points        int    `json:"points"`
	CurrentStreak int    `json:"currentStreak"`
	Medals        Medals `json:"medals"`
}
