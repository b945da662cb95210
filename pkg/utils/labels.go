package utils

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
)

// Metadata keys attached to every server booted by the deployer. List
// queries filter on them.
const (
	AppIDLabelKey        = "app-id"
	GroupIDLabelKey      = "group-id"
	DeploymentIDLabelKey = "deployment-id"
	TaskNameLabelKey     = "task-name"
	MarkerLabelKey       = "role"
	MarkerLabelValue     = "app-marker"
)

// LabelSet returns the labels identifying deploymentID. index is nil for
// non-indexed deployments; otherwise it is appended to the deployment-id
// label.
func LabelSet(deploymentID string, request spi.AppDeploymentRequest, index *int) map[string]string {
	labels := map[string]string{
		AppIDLabelKey: deploymentID,
		DeploymentIDLabelKey: lo.TernaryF(index == nil,
			func() string { return deploymentID },
			func() string { return fmt.Sprintf("%s-%d", deploymentID, *index) }),
	}
	if group, ok := request.Group(); ok {
		labels[GroupIDLabelKey] = group
	}
	return labels
}

// AppMetadata is the full metadata of a server backing an app.
func AppMetadata(labels map[string]string) map[string]string {
	return lo.Assign(labels, map[string]string{MarkerLabelKey: MarkerLabelValue})
}

// TaskMetadata is the full metadata of a server backing a task launch.
func TaskMetadata(labels map[string]string, taskName string) map[string]string {
	return lo.Assign(labels, map[string]string{
		TaskNameLabelKey: taskName,
		MarkerLabelKey:   MarkerLabelValue,
	})
}
