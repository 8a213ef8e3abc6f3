package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// SetupFunc builds the command dependencies from the --config path.
type SetupFunc func(ctx context.Context, configPath string) (*commands.Dependencies, error)

// CLI represents the command-line interface
type CLI struct {
	setup   SetupFunc
	output  io.Writer
	cfgPath string
	deps    *commands.Dependencies
	rootCmd *cobra.Command
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
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// dependencies runs setup on first use so that commands which fail flag
// validation never touch config or the database.
func (cli *CLI) dependencies() (*commands.Dependencies, error) {
	if cli.deps != nil {
		return cli.deps, nil
	}
	if cli.setup == nil {
		return nil, fmt.Errorf("cli has no setup function")
	}
	deps, err := cli.setup(cli.rootCmd.Context(), cli.cfgPath)
	if err != nil {
		return nil, err
	}
	cli.deps = deps
	return deps, nil
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fin-atlas",
		Short:         "Financial ratio analysis and industry benchmarking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)
	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to the config file (YAML, JSON or TOML)")

	reporters := map[string]commands.ReportHandler{
		"table": export.NewReporter(cli.output),
		"text":  NewReporter(cli.output),
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.dependencies, reporters))
	cmd.AddCommand(commands.NewBenchmarksCmd(cli.dependencies))

	return cmd
}
