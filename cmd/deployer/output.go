package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
)

type requestFlags struct {
	resource             string
	definitionProperties map[string]string
	deploymentProperties map[string]string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.resource, "resource", "", "Artifact to run, e.g. a docker image or an URL")
	cmd.Flags().StringToStringVar(&f.definitionProperties, "definition-property", nil,
		"App definition property as key=value (repeatable)")
	cmd.Flags().StringToStringVar(&f.deploymentProperties, "deployment-property", nil,
		"Deployment property as key=value (repeatable)")
}

func (f *requestFlags) request(name string) spi.AppDeploymentRequest {
	return spi.NewAppDeploymentRequest(name, f.resource, f.definitionProperties, f.deploymentProperties)
}

type appStatusOutput struct {
	DeploymentID string                  `json:"deploymentId"`
	State        spi.DeploymentState     `json:"state"`
	Instances    []spi.AppInstanceStatus `json:"instances"`
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
