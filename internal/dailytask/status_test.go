package dailytask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPlanned, StatusInProgress, true},
		{StatusPlanned, StatusCompleted, true},
		{StatusPlanned, StatusSkipped, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusSkipped, true},
		{StatusInProgress, StatusPlanned, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusPlanned, false},
		{StatusCompleted, StatusSkipped, false},
		{StatusSkipped, StatusPlanned, true},
		{StatusSkipped, StatusInProgress, true},
		{StatusSkipped, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPlanned.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.True(t, StatusSkipped.IsValid())
	assert.False(t, Status("done").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestApprovalStatusDecided(t *testing.T) {
	assert.False(t, ApprovalPending.Decided())
	assert.True(t, ApprovalApproved.Decided())
	assert.True(t, ApprovalRejected.Decided())
}
