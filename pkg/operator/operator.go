// Package operator wires configuration, the compute client and the lifecycle
// services together.
package operator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/deployer"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
)

const defaultEnvFile = ".env"

type Operator struct {
	Config openstack.Config
	Client openstack.Client
	Clock  clock.Clock

	AppDeployer  *deployer.AppDeployer
	TaskLauncher *deployer.TaskLauncher
}

// NewOperator loads envFile (or ./.env when it exists), authenticates with
// the OS_* variables and builds both services.
func NewOperator(ctx context.Context, envFile string) (*Operator, error) {
	logger := log.FromContext(ctx)

	if err := LoadEnv(envFile); err != nil {
		return nil, err
	}

	cfg := openstack.ConfigFromEnv()
	if cfg.Region == "" {
		return nil, fmt.Errorf("OS_REGION_NAME must be set in environment")
	}

	logger.Info("authenticating with OpenStack using environment variables", "region", cfg.Region)
	client, err := openstack.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("OpenStack client created successfully", "endpoint", client.Endpoint())

	return NewOperatorWithClient(cfg, client, clock.RealClock{}), nil
}

// NewOperatorWithClient builds the services on top of an existing client.
func NewOperatorWithClient(cfg openstack.Config, client openstack.Client, clk clock.Clock) *Operator {
	return &Operator{
		Config:       cfg,
		Client:       client,
		Clock:        clk,
		AppDeployer:  deployer.NewAppDeployer(client, cfg),
		TaskLauncher: deployer.NewTaskLauncher(client, cfg, clk),
	}
}

// LoadEnv reads path into the process environment without overriding
// variables that are already set. An empty path means ./.env, which may be
// missing.
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
	}
	return nil
}
