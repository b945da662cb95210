// Package instance translates compute server statuses into the deployment
// and launch states reported to SPI callers.
package instance

import (
	"time"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
)

const (
	StartTimeAttribute = "server_starttime"
	IPAttribute        = "server_ip"
	StatusAttribute    = "status"
)

// DeploymentState maps a server onto an app deployment state. A nil instance
// is unknown, and so is any status that is not BUILD, ACTIVE or ERROR.
func DeploymentState(i *Instance) spi.DeploymentState {
	if i == nil {
		return spi.DeploymentStateUnknown
	}
	switch i.Status {
	case StatusBuild:
		return spi.DeploymentStateDeploying
	case StatusActive:
		return spi.DeploymentStateDeployed
	case StatusError:
		return spi.DeploymentStateFailed
	default:
		return spi.DeploymentStateUnknown
	}
}

// LaunchState maps a server onto a task launch state. Unlike
// DeploymentState, unrecognized statuses report the task as running.
func LaunchState(i *Instance) spi.LaunchState {
	if i == nil {
		return spi.LaunchStateUnknown
	}
	switch i.Status {
	case "", StatusUnknown:
		return spi.LaunchStateUnknown
	case StatusBuild:
		return spi.LaunchStateLaunching
	case StatusError:
		return spi.LaunchStateFailed
	case StatusActive:
		return spi.LaunchStateComplete
	default:
		return spi.LaunchStateRunning
	}
}

// AppInstanceStatus exposes a server as one instance of an app.
func AppInstanceStatus(i Instance) spi.AppInstanceStatus {
	startTime := ""
	if !i.LaunchedAt.IsZero() {
		startTime = i.LaunchedAt.UTC().Format(time.RFC3339)
	}
	return spi.AppInstanceStatus{
		ID:    i.Name,
		State: DeploymentState(&i),
		Attributes: map[string]string{
			StartTimeAttribute: startTime,
			IPAttribute:        i.AccessIPv4,
			StatusAttribute:    i.Status,
		},
	}
}
