package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/facility-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// SetupFunc builds the command environment from the config file at path.
// The returned close function releases what setup opened.
type SetupFunc func(ctx context.Context, configPath string) (*commands.Env, func() error, error)

// CLI represents the command-line interface
type CLI struct {
	setup      SetupFunc
	output     io.Writer
	env        *commands.Env
	closeEnv   func() error
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Setup  SetupFunc
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		setup:  opts.Setup,
		output: opts.Output,
		env:    &commands.Env{},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

// ExecuteContext runs the command line args and releases the environment
// afterwards, whether or not the command failed.
func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) (err error) {
	defer func() {
		if cli.closeEnv == nil {
			return
		}
		if closeErr := cli.closeEnv(); closeErr != nil && err == nil {
			err = closeErr
		}
		cli.closeEnv = nil
	}()

	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "facility-atlas",
		Short:         "Facility operations reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, closeEnv, err := cli.setup(cmd.Context(), cli.configPath)
			if err != nil {
				return err
			}
			*cli.env = *env
			if cli.env.Output == nil {
				cli.env.Output = cli.output
			}
			cli.closeEnv = closeEnv
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "",
		"Path to a config file (YAML, TOML or JSON); FACILITY_* environment variables override it")
	cmd.SetOut(cli.output)

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewSummaryCmd(cli.env))
	cmd.AddCommand(commands.NewSeedCmd(cli.env))

	return cmd
}
