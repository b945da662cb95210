package spi

import "fmt"

// DeploymentState is the caller visible life stage of an app.
type DeploymentState string

const (
	DeploymentStateUnknown   DeploymentState = "unknown"
	DeploymentStateDeploying DeploymentState = "deploying"
	DeploymentStateDeployed  DeploymentState = "deployed"
	DeploymentStateFailed    DeploymentState = "failed"
	// DeploymentStatePartial is only reported by AppStatus when its
	// instances disagree.
	DeploymentStatePartial DeploymentState = "partial"
)

// LaunchState is the caller visible life stage of a task.
type LaunchState string

const (
	LaunchStateUnknown   LaunchState = "unknown"
	LaunchStateLaunching LaunchState = "launching"
	LaunchStateRunning   LaunchState = "running"
	LaunchStateComplete  LaunchState = "complete"
	LaunchStateFailed    LaunchState = "failed"
)

// AppInstanceStatus is the status of a single server backing an app.
type AppInstanceStatus struct {
	ID         string
	State      DeploymentState
	Attributes map[string]string
}

// AppStatus groups the instance statuses of one deployment.
type AppStatus struct {
	DeploymentID string
	Instances    []AppInstanceStatus
}

// NewAppStatus builds the status of deploymentID out of its instances.
func NewAppStatus(deploymentID string, instances ...AppInstanceStatus) *AppStatus {
	return &AppStatus{DeploymentID: deploymentID, Instances: instances}
}

// State aggregates the instance states. It is derived on every call.
func (s *AppStatus) State() DeploymentState {
	states := map[DeploymentState]struct{}{}
	for _, i := range s.Instances {
		states[i.State] = struct{}{}
	}
	switch len(states) {
	case 0:
		return DeploymentStateUnknown
	case 1:
		for state := range states {
			return state
		}
	}
	if _, ok := states[DeploymentStateDeploying]; ok {
		return DeploymentStateDeploying
	}
	if _, ok := states[DeploymentStateDeployed]; ok {
		return DeploymentStatePartial
	}
	if _, ok := states[DeploymentStateFailed]; ok {
		return DeploymentStateFailed
	}
	return DeploymentStatePartial
}

func (s *AppStatus) String() string {
	return fmt.Sprintf("AppStatus{deploymentId=%s, state=%s, instances=%d}", s.DeploymentID, s.State(), len(s.Instances))
}

// TaskStatus is the status of a single task launch.
type TaskStatus struct {
	TaskID     string
	State      LaunchState
	Attributes map[string]string
}

// NewTaskStatus returns a TaskStatus with an empty attribute map.
func NewTaskStatus(taskID string, state LaunchState) *TaskStatus {
	return &TaskStatus{TaskID: taskID, State: state, Attributes: map[string]string{}}
}

func (s *TaskStatus) String() string {
	return fmt.Sprintf("TaskStatus{id=%s, state=%s}", s.TaskID, s.State)
}
