package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newAppCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage long running apps",
	}
	cmd.AddCommand(
		c.newAppDeployCommand(),
		c.newAppUndeployCommand(),
		c.newAppStatusCommand(),
	)
	return cmd
}

func (c *cli) newAppDeployCommand() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "deploy [name]",
		Short: "Boot the servers of an app and print its deployment id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.op.AppDeployer.Deploy(cmd.Context(), flags.request(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) newAppUndeployCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undeploy [deployment-id]",
		Short: "Suspend and delete every server of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.op.AppDeployer.Undeploy(cmd.Context(), args[0])
		},
	}
}

func (c *cli) newAppStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [deployment-id]",
		Short: "Show the state of an app and of each of its instances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := c.op.AppDeployer.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, appStatusOutput{
				DeploymentID: status.DeploymentID,
				State:        status.State(),
				Instances:    status.Instances,
			})
		},
	}
}
