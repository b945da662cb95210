package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
)

func TestAppDeploymentID(t *testing.T) {
	tests := []struct {
		name     string
		appName  string
		props    map[string]string
		expected string
	}{
		{"plain name", "foo", nil, "foo"},
		{"uppercase and dots", "My.App.V2", nil, "my-app-v2"},
		{"with group", "foo", map[string]string{spi.GroupPropertyKey: "grp"}, "grp-foo"},
		{"group is normalized too", "Foo.Bar", map[string]string{spi.GroupPropertyKey: "Stream.1"}, "stream-1-foo-bar"},
		{"empty group still counts", "foo", map[string]string{spi.GroupPropertyKey: ""}, "-foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := spi.NewAppDeploymentRequest(tt.appName, "", nil, tt.props)
			assert.Equal(t, tt.expected, AppDeploymentID(request))
		})
	}
}

func TestTaskDeploymentID(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)

	id := TaskDeploymentID("Batch.Job", now)
	assert.Regexp(t, regexp.MustCompile(`^batch-job-[a-z0-9]+$`), id)

	again := TaskDeploymentID("Batch.Job", now)
	assert.Equal(t, id, again, "same name and millisecond must encode the same way")

	next := TaskDeploymentID("Batch.Job", now.Add(time.Millisecond))
	assert.NotEqual(t, id, next)
}

func TestTaskDeploymentIDIsSaltedByName(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	a := TaskDeploymentID("alpha", now)
	b := TaskDeploymentID("beta", now)
	require.Greater(t, len(a), len("alpha-"))
	require.Greater(t, len(b), len("beta-"))
	assert.NotEqual(t, a[len("alpha-"):], b[len("beta-"):])
}
