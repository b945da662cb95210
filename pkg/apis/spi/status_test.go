package spi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func instances(states ...DeploymentState) []AppInstanceStatus {
	out := make([]AppInstanceStatus, 0, len(states))
	for _, s := range states {
		out = append(out, AppInstanceStatus{State: s})
	}
	return out
}

func TestAppStatusState(t *testing.T) {
	tests := []struct {
		name     string
		states   []DeploymentState
		expected DeploymentState
	}{
		{"no instances", nil, DeploymentStateUnknown},
		{"single deployed", []DeploymentState{DeploymentStateDeployed}, DeploymentStateDeployed},
		{"all deploying", []DeploymentState{DeploymentStateDeploying, DeploymentStateDeploying}, DeploymentStateDeploying},
		{"all unknown", []DeploymentState{DeploymentStateUnknown, DeploymentStateUnknown}, DeploymentStateUnknown},
		{"deploying wins", []DeploymentState{DeploymentStateDeployed, DeploymentStateDeploying, DeploymentStateFailed}, DeploymentStateDeploying},
		{"deployed and failed", []DeploymentState{DeploymentStateDeployed, DeploymentStateFailed}, DeploymentStatePartial},
		{"failed and unknown", []DeploymentState{DeploymentStateFailed, DeploymentStateUnknown}, DeploymentStateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewAppStatus("app", instances(tt.states...)...)
			assert.Equal(t, tt.expected, status.State())
		})
	}
}

func TestTaskStatusHasAttributes(t *testing.T) {
	status := NewTaskStatus("task-1", LaunchStateRunning)
	assert.NotNil(t, status.Attributes)
	assert.Equal(t, "TaskStatus{id=task-1, state=running}", status.String())
}
