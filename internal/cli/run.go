package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/attrflow/pkg/attrflow/action"
	"github.com/randalmurphal/attrflow/pkg/attrflow/config"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/retry"
	"github.com/randalmurphal/attrflow/pkg/attrflow/snapshot"
)

var (
	ErrNoAction     = errors.New("--action is required")
	ErrNoActionName = errors.New("--name is required when --action is a directory")
)

type RunArgs struct {
	SourceArgs

	ActionPath     string
	ActionName     string
	Force          bool
	Label          string
	ScriptAttempts int
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{SourceArgs: SourceArgs{RootArgs: rootArgs}}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	ra.SourceArgs.AddFlags(cmd)

	cmd.Flags().StringVar(&ra.ActionPath, "action", "", "Path to an action file (YAML or JSON) or a directory of action files")
	cmd.Flags().StringVar(&ra.ActionName, "name", "", "Action to run when --action is a directory")
	cmd.Flags().BoolVar(&ra.Force, "force", false, "Execute even when the action's checks do not hold")
	cmd.Flags().StringVar(&ra.Label, "label", "", "Label of the snapshot saved after the run, defaults to the action name")
	cmd.Flags().IntVar(&ra.ScriptAttempts, "script-attempts", 1, "Attempts for starting the action's scripts")

	err := cmd.MarkFlagFilename("action", "yaml", "yml", "json")
	if err != nil {
		panic(fmt.Errorf("mark action flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run OBJECT",
		Short: "Check and execute a workflow action on an object",
		Long: `Check and execute a workflow action on an object.

The action's checks are evaluated first; the action only executes when they
hold, unless --force is given. With --db the resulting dataset is saved as a
new snapshot and its id is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: ra.run,
	}
	ra.AddFlags(cmd)
	return cmd
}

func (ra *RunArgs) run(cmd *cobra.Command, args []string) error {
	if ra.ActionPath == "" {
		return ErrNoAction
	}
	act, err := ra.loadAction()
	if err != nil {
		return err
	}

	src, err := ra.open()
	if err != nil {
		return err
	}
	defer src.Close()

	obj, err := src.object(args[0])
	if err != nil {
		return err
	}

	runner := src.engine().Runner(
		action.WithScripts(src.host),
		action.WithScriptRetry(retry.NewConfig(retry.WithMaxAttempts(ra.ScriptAttempts))),
		action.WithSpanManager(observability.NewSpanManager()),
	)

	out := cmd.OutOrStdout()

	allowed, err := runner.MayExecute(cmd.Context(), act, obj)
	if err != nil {
		return fmt.Errorf("check action: %w", err)
	}
	if !allowed && !ra.Force {
		return writeLines(out, "allowed: false")
	}

	result, err := runner.Execute(cmd.Context(), act, obj)
	if err != nil {
		return fmt.Errorf("execute action: %w", err)
	}

	lines := []string{
		"allowed: " + strconv.FormatBool(allowed),
		"run: " + result.RunID,
		"languages: " + joinLanguages(result.Languages),
		"writes: " + strconv.Itoa(result.Writes),
		"copied: " + strconv.Itoa(result.Copied),
		"touched: " + strings.Join(result.Touched, ","),
		"scripts: " + strings.Join(result.Scripts, ","),
	}

	if src.store != nil {
		label := ra.Label
		if label == "" {
			label = act.ID
		}
		id, err := snapshot.SaveHost(src.store, src.host, label)
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		lines = append(lines, "snapshot: "+id)
	}

	return writeLines(out, lines...)
}

// loadAction reads --action. Decoding problems are logged and the
// settings concerned skipped.
func (ra *RunArgs) loadAction() (action.Action, error) {
	info, err := os.Stat(ra.ActionPath)
	if err != nil {
		return action.Action{}, fmt.Errorf("load action: %w", err)
	}

	if !info.IsDir() {
		cfg, err := config.FromFile(ra.ActionPath)
		if err != nil {
			return action.Action{}, fmt.Errorf("load action: %w", err)
		}
		act, err := action.FromConfig(cfg)
		if err != nil {
			slog.Warn("action configuration has problems", slog.Any("error", err))
		}
		return act, nil
	}

	if ra.ActionName == "" {
		return action.Action{}, ErrNoActionName
	}
	catalog := action.NewCatalog()
	if err := catalog.LoadDir(ra.ActionPath); err != nil {
		slog.Warn("action directory has problems", slog.Any("error", err))
	}
	return catalog.Get(ra.ActionName)
}

func joinLanguages(langs []record.LanguageID) string {
	s := make([]string, len(langs))
	for i, l := range langs {
		s[i] = strconv.Itoa(int(l))
	}
	return strings.Join(s, ",")
}

func writeLines(w io.Writer, lines ...string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
