package user

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleParent
}

// Medals are monotonic: once a tier unlocks it is never reset, even if the
// streak later drops below its threshold.
type Medals struct {
	Bronze  bool `json:"bronze"`
	Silver  bool `json:"silver"`
	Gold    bool `json:"gold"`
	Diamond bool `json:"diamond"`
}

type User struct {
	ID             string    `json:"id"`
	ClerkID        string    `json:"clerkId"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	Role           Role      `json:"role"`
	ParentID       *string   `json:"parentId,omitempty"`
	Points         int       `json:"points"`
	CurrentStreak  int       `json:"currentStreak"`
	LastStreakDate *string   `json:"lastStreakDate,omitempty"`
	Medals         Medals    `json:"medals"`
	EmailVerified  bool      `json:"emailVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
