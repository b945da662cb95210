package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Launch and manage short lived tasks",
	}
	cmd.AddCommand(
		c.newTaskLaunchCommand(),
		c.newTaskCancelCommand(),
		c.newTaskCleanupCommand(),
		c.newTaskDestroyCommand(),
		c.newTaskStatusCommand(),
	)
	return cmd
}

func (c *cli) newTaskLaunchCommand() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "launch [name]",
		Short: "Boot a server for a new run of a task and print the launch id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.op.TaskLauncher.Launch(cmd.Context(), flags.request(args[0]))
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

func (c *cli) newTaskCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [launch-id]",
		Short: "Stop a running launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.op.TaskLauncher.Cancel(cmd.Context(), args[0])
		},
	}
}

func (c *cli) newTaskCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup [launch-id]",
		Short: "Remove the server of a finished launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.op.TaskLauncher.Cleanup(cmd.Context(), args[0])
		},
	}
}

func (c *cli) newTaskDestroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy [name]",
		Short: "Remove every launch of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.op.TaskLauncher.Destroy(cmd.Context(), args[0])
		},
	}
}

func (c *cli) newTaskStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [launch-id]",
		Short: "Show the state of a launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := c.op.TaskLauncher.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}
