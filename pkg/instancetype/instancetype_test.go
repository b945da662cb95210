package instancetype

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	th "github.com/gophercloud/gophercloud/testhelper"
	"github.com/gophercloud/gophercloud/testhelper/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockFlavors = []flavors.Flavor{
	{ID: "flavor-id-tiny", Name: "general.tiny", VCPUs: 1, RAM: 2048},
	{ID: "flavor-id-small", Name: "general.small", VCPUs: 2, RAM: 4096},
	{ID: "dup-1", Name: "shared", VCPUs: 4, RAM: 8192},
	{ID: "dup-2", Name: "shared", VCPUs: 4, RAM: 8192},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		expected    string
		expectError bool
	}{
		{name: "by id", ref: "flavor-id-tiny", expected: "flavor-id-tiny"},
		{name: "by name", ref: "general.small", expected: "flavor-id-small"},
		{name: "missing", ref: "general.huge", expectError: true},
		{name: "ambiguous name", ref: "shared", expectError: true},
		{name: "ambiguous name but exact id", ref: "dup-2", expected: "dup-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Resolve(mockFlavors, tt.ref)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestDefaultProviderResolve(t *testing.T) {
	th.SetupHTTP()
	defer th.TeardownHTTP()

	th.Mux.HandleFunc("/flavors/detail", func(w http.ResponseWriter, r *http.Request) {
		th.TestMethod(t, r, "GET")
		th.TestHeader(t, r, "X-Auth-Token", client.TokenID)
		w.Header().Add("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"flavors": [
				{"id": "1", "name": "m1.tiny", "vcpus": 1, "ram": 512, "disk": 1, "swap": ""},
				{"id": "2", "name": "m1.small", "vcpus": 1, "ram": 2048, "disk": 20, "swap": ""}
			]
		}`)
	})

	provider := NewProvider(client.ServiceClient())

	all, err := provider.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	id, err := provider.Resolve(context.Background(), "m1.small")
	require.NoError(t, err)
	assert.Equal(t, "2", id)
}
