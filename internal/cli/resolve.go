package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ResolveArgs struct {
	SourceArgs
}

func NewResolveArgs(rootArgs *RootArgs) *ResolveArgs {
	return &ResolveArgs{SourceArgs: SourceArgs{RootArgs: rootArgs}}
}

func NewResolveCmd(ra *ResolveArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve OBJECT TEMPLATE",
		Short: "Substitute the placeholders of a template against an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ra.open()
			if err != nil {
				return err
			}
			defer src.Close()

			obj, err := src.object(args[0])
			if err != nil {
				return err
			}

			out, err := src.engine().Resolve(cmd.Context(), obj, args[1], ra.language(obj))
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	ra.AddFlags(cmd)
	return cmd
}
