//go:build integration
// +build integration

package openstack

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTestConfig loads the live environment, skipping when it is incomplete.
func getTestConfig(t *testing.T) Config {
	_ = godotenv.Load("../../.env")

	cfg := ConfigFromEnv()
	if os.Getenv("OS_AUTH_URL") == "" || cfg.Flavor == "" || cfg.Image == "" {
		t.Skip("skipping integration test: OS_AUTH_URL, OS_DEPLOYER_FLAVOR or OS_DEPLOYER_IMAGE not set")
	}
	return cfg
}

func TestClient_Lifecycle(t *testing.T) {
	cfg := getTestConfig(t)

	ctx := context.Background()
	c, err := NewClient(cfg)
	require.NoError(t, err, "failed to create OpenStack client")

	flavorID, err := c.ResolveFlavor(ctx, cfg.Flavor)
	require.NoError(t, err)

	labels := map[string]string{"app-id": "deployer-integ-test", "role": "app-marker"}
	srv, err := c.BootServer(ctx, ServerSpec{
		Name:             "deployer-integ-test",
		FlavorRef:        flavorID,
		ImageRef:         cfg.Image,
		Networks:         cfg.Networks,
		SecurityGroups:   cfg.SecurityGroups,
		KeyPair:          cfg.KeyPair,
		AvailabilityZone: cfg.AvailabilityZone,
		UserData:         "#!/bin/bash\necho 'hello world'",
		Metadata:         labels,
	})
	require.NoError(t, err, "BootServer failed")
	require.NotEmpty(t, srv.InstanceID)

	t.Cleanup(func() {
		if err := c.DeleteServer(ctx, srv.InstanceID); err != nil {
			t.Logf("failed to clean up server %s: %v", srv.InstanceID, err)
		}
	})

	timeout := time.After(5 * time.Minute)
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
L:
	for {
		select {
		case <-timeout:
			t.Fatalf("server %s did not become ACTIVE in time", srv.InstanceID)
		case <-ticker.C:
			got, err := c.GetServer(ctx, "deployer-integ-test")
			require.NoError(t, err)
			require.NotNil(t, got)
			t.Logf("current status: %s", got.Status)
			if got.Status == "ACTIVE" {
				assert.False(t, got.LaunchedAt.IsZero())
				break L
			}
			if got.Status == "ERROR" {
				t.Fatalf("server %s went into ERROR", srv.InstanceID)
			}
		}
	}

	found, err := c.ListServers(ctx, labels)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, srv.InstanceID, found[0].InstanceID)

	require.NoError(t, c.SuspendServer(ctx, srv.InstanceID))
}
