// Package cli implements the attrflow command line.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
)

const (
	cmdName = "attrflow"
	cmdDesc = `Resolve placeholders, evaluate conditions and run workflow actions against a dataset.`

	cmdExamples = `  # Resolve a template against object 42:
  attrflow resolve 42 "{Name} ({Today#d.m.Y})" --dataset ./data.yaml

  # Evaluate a condition:
  attrflow eval 42 Status "approved||released" --dataset ./data.yaml

  # Run an action and store the result as a new snapshot:
  attrflow run 42 --action ./release.yaml --db ./attrflow.db --snapshot <id>`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&ra.LogLevel, "log-level", "info",
		fmt.Sprintf("Log level, one of: %s", strings.Join(observability.AllLevels, ", ")))
	cmd.PersistentFlags().StringVar(&ra.LogFormat, "log-format", "text",
		fmt.Sprintf("Log format, one of: %s", strings.Join(observability.AllFormats, ", ")))

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(observability.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(observability.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging(args),
	}

	args.AddFlags(cmd)
	cmd.AddCommand(
		NewResolveCmd(NewResolveArgs(args)),
		NewEvalCmd(NewEvalArgs(args)),
		NewRunCmd(NewRunArgs(args)),
		NewSnapshotCmd(NewSnapshotArgs(args)),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := observability.NewHandler(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}
