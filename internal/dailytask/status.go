package dailytask

// Status is the lifecycle of one planned daily task instance.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// transitions lists the legal student-driven moves. Rejection re-opens a
// completed task to in_progress, but that edge belongs to the approval flow,
// not to the student PATCH surface.
var transitions = map[Status][]Status{
	StatusPlanned:    {StatusInProgress, StatusCompleted, StatusSkipped},
	StatusInProgress: {StatusCompleted, StatusSkipped},
	StatusCompleted:  {},
	StatusSkipped:    {StatusPlanned, StatusInProgress},
}

// CanTransition reports whether a student may move an instance from to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApprovalStatus is the review sub-state of a completed instance.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Decided reports whether a parent has already ruled on the instance.
// Re-deciding is a conflict, never a silent no-op.
func (a ApprovalStatus) Decided() bool {
	return a == ApprovalApproved || a == ApprovalRejected
}
