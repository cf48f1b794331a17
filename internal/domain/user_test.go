package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    WorkflowState
		to      WorkflowState
		allowed bool
	}{
		{"pending to active", WorkflowStatePending, WorkflowStateActive, true},
		{"active to suspended", WorkflowStateActive, WorkflowStateSuspended, true},
		{"suspended to active", WorkflowStateSuspended, WorkflowStateActive, true},
		{"active to archived", WorkflowStateActive, WorkflowStateArchived, true},
		{"suspended to archived", WorkflowStateSuspended, WorkflowStateArchived, true},
		{"pending to archived", WorkflowStatePending, WorkflowStateArchived, false},
		{"pending to suspended", WorkflowStatePending, WorkflowStateSuspended, false},
		{"archived to active", WorkflowStateArchived, WorkflowStateActive, false},
		{"archived to pending", WorkflowStateArchived, WorkflowStatePending, false},
		{"archived to suspended", WorkflowStateArchived, WorkflowStateSuspended, false},
		{"active to pending", WorkflowStateActive, WorkflowStatePending, false},
		{"self transition", WorkflowStateActive, WorkflowStateActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{State: tt.from}
			err := user.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, user.State)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.from, user.State, "rejected transition must not mutate state")

			var invalid *InvalidTransitionError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.from, invalid.From)
			assert.Equal(t, tt.to, invalid.To)
		})
	}
}

func TestNewUserStateIsPending(t *testing.T) {
	assert.Equal(t, WorkflowStatePending, NewUserState())
}

func TestWorkflowStatePresentation(t *testing.T) {
	tests := []struct {
		state WorkflowState
		label string
		color string
	}{
		{WorkflowStatePending, "Pending", "warning"},
		{WorkflowStateActive, "Active", "success"},
		{WorkflowStateSuspended, "Suspended", "danger"},
		{WorkflowStateArchived, "Archived", "gray"},
		{WorkflowState("BOGUS"), "Unknown", "gray"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.state.Label())
		assert.Equal(t, tt.color, tt.state.Color())
	}
}

func TestWorkflowStateIsValid(t *testing.T) {
	assert.True(t, WorkflowStateActive.IsValid())
	assert.False(t, WorkflowState("BOGUS").IsValid())
}
