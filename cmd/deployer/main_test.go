package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/operator"
)

func runCommand(t *testing.T, mock *openstack.MockClient, args ...string) (string, error) {
	t.Helper()
	clk := clocktesting.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	cfg := openstack.Config{Flavor: "m1.small", Image: "img"}
	root := newRootCommand(func(context.Context, string) (*operator.Operator, error) {
		return operator.NewOperatorWithClient(cfg, mock, clk), nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func TestAppCommands(t *testing.T) {
	mock := &openstack.MockClient{}

	id, err := runCommand(t, mock, "app", "deploy", "foo",
		"--resource", "docker:example/foo:1.0",
		"--deployment-property", "spring.cloud.deployer.group=grp",
		"--deployment-property", "spring.cloud.deployer.indexed=true",
		"--deployment-property", "spring.cloud.deployer.count=2",
		"--definition-property", "server.port=9000")
	require.NoError(t, err)
	assert.Equal(t, "grp-foo", id)
	require.Len(t, mock.Booted, 2)
	assert.Contains(t, mock.Booted[0].UserData, "SERVER_PORT=9000")

	out, err := runCommand(t, mock, "app", "status", "grp-foo")
	require.NoError(t, err)
	var status appStatusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, spi.DeploymentStateDeploying, status.State)
	assert.Len(t, status.Instances, 2)

	_, err = runCommand(t, mock, "app", "undeploy", "grp-foo")
	require.NoError(t, err)
	assert.Empty(t, mock.Servers)

	_, err = runCommand(t, mock, "app", "undeploy", "grp-foo")
	assert.True(t, spi.IsNotDeployedError(err))
}

func TestTaskCommands(t *testing.T) {
	mock := &openstack.MockClient{}

	id, err := runCommand(t, mock, "task", "launch", "batchjob")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "batchjob-"))

	out, err := runCommand(t, mock, "task", "status", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"launching"`)

	_, err = runCommand(t, mock, "task", "cancel", id)
	require.NoError(t, err)
	assert.Len(t, mock.Deleted, 1)

	_, err = runCommand(t, mock, "task", "cleanup", id)
	assert.True(t, spi.IsNotDeployedError(err))

	_, err = runCommand(t, mock, "task", "destroy", "batchjob")
	require.NoError(t, err)
}

func TestInfoCommand(t *testing.T) {
	out, err := runCommand(t, &openstack.MockClient{}, "info")
	require.NoError(t, err)

	var info spi.RuntimeEnvironmentInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "OpenStack", info.PlatformType)
	assert.Equal(t, "compute,identity", info.PlatformSpecificInfo["supported-services"])
}

func TestArgumentsAreRequired(t *testing.T) {
	_, err := runCommand(t, &openstack.MockClient{}, "app", "deploy")
	assert.Error(t, err)
}
