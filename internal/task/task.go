package task

import "time"

// Category is the closed set of catalog categories. Free-text categories are
// rejected at the catalog boundary so the points engine only ever sees typed
// keys.
type Category string

const (
	CategoryExercise   Category = "exercise"
	CategoryReading    Category = "reading"
	CategoryChores     Category = "chores"
	CategoryLearning   Category = "learning"
	CategoryCreativity Category = "creativity"
	CategoryOther      Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryExercise, CategoryReading, CategoryChores,
		CategoryLearning, CategoryCreativity, CategoryOther:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Task is one reusable catalog definition. Instances of it are planned per
// day as daily tasks.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         Category   `json:"category"`
	ActivityKey      string     `json:"activityKey"`
	Difficulty       Difficulty `json:"difficulty"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	BasePoints       int        `json:"basePoints"`
	RequiresEvidence bool       `json:"requiresEvidence"`
	CreatedBy        string     `json:"createdBy"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
