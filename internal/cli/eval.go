package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type EvalArgs struct {
	SourceArgs
}

func NewEvalArgs(rootArgs *RootArgs) *EvalArgs {
	return &EvalArgs{SourceArgs: SourceArgs{RootArgs: rootArgs}}
}

func NewEvalCmd(ea *EvalArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval OBJECT ATTRIBUTE CONDITION",
		Short: "Evaluate a condition against an attribute of an object",
		Long: `Evaluate a condition against an attribute of an object.

The condition is resolved like a template first. Alternatives are separated
by "||"; each may start with <, >, <=, >= or ! (not equal), or be wrapped in
% for a substring match. A bare "!" holds for a non-empty value.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ea.open()
			if err != nil {
				return err
			}
			defer src.Close()

			obj, err := src.object(args[0])
			if err != nil {
				return err
			}

			ok, err := src.engine().Evaluate(cmd.Context(), obj, args[1], args[2])
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return err
		},
	}
	ea.AddFlags(cmd)
	return cmd
}
