package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/deployer"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/operator"
)

var (
	version = "dev"
	commit  = "none"
)

type operatorFactory func(ctx context.Context, envFile string) (*operator.Operator, error)

type cli struct {
	newOperator operatorFactory
	envFile     string
	verbose     bool

	op *operator.Operator
}

func main() {
	deployer.Version = version
	if err := newRootCommand(operator.NewOperator).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(newOperator operatorFactory) *cobra.Command {
	c := &cli{newOperator: newOperator}

	rootCmd := &cobra.Command{
		Use:           "deployer",
		Short:         "Deploy apps and launch tasks on OpenStack compute servers",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(c.verbose, cmd.ErrOrStderr())
			log.SetLogger(logger)
			cmd.SetContext(log.IntoContext(cmd.Context(), logger.WithValues("command", cmd.CommandPath())))

			op, err := c.newOperator(cmd.Context(), c.envFile)
			if err != nil {
				return fmt.Errorf("failed to set up deployer: %w", err)
			}
			c.op = op
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", "",
		"File with OS_* variables to load (default: ./.env when present)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		c.newAppCommand(),
		c.newTaskCommand(),
		c.newInfoCommand(),
	)
	return rootCmd
}

func newLogger(verbose bool, w io.Writer) logr.Logger {
	return zap.New(zap.UseDevMode(verbose), zap.WriteTo(w)).WithName("deployer")
}

func (c *cli) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the runtime environment of the deployer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, c.op.AppDeployer.EnvironmentInfo())
		},
	}
}
