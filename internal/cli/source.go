package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/attrflow/pkg/attrflow"
	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/snapshot"
)

var ErrNoSource = errors.New("one of --dataset or --db with --snapshot is required")

// SourceArgs selects the dataset a command runs against.
type SourceArgs struct {
	*RootArgs

	Dataset  string
	DB       string
	Snapshot string
	Language int
}

func (sa *SourceArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sa.Dataset, "dataset", "", "Path to a YAML or JSON dataset file")
	cmd.Flags().StringVar(&sa.DB, "db", "", "Path to the SQLite snapshot database")
	cmd.Flags().StringVar(&sa.Snapshot, "snapshot", "", "Snapshot id to load from --db")
	cmd.Flags().IntVar(&sa.Language, "lang", 0, "Language id, 0 for the object's current language")

	err := cmd.MarkFlagFilename("dataset", "yaml", "yml", "json")
	if err != nil {
		panic(fmt.Errorf("mark dataset flag: %w", err))
	}
	err = cmd.MarkFlagFilename("db", "db", "sqlite")
	if err != nil {
		panic(fmt.Errorf("mark db flag: %w", err))
	}
}

// source is an opened dataset. store is nil unless --db was given.
type source struct {
	host  *memhost.Host
	store snapshot.Store
}

func (sa *SourceArgs) open() (*source, error) {
	src := &source{}

	if sa.DB != "" {
		store, err := snapshot.NewSQLiteStore(sa.DB)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		src.store = store
	}

	var err error
	switch {
	case sa.Dataset != "":
		src.host, err = memhost.LoadFile(sa.Dataset)
	case src.store != nil && sa.Snapshot != "":
		src.host, err = snapshot.LoadHost(src.store, sa.Snapshot)
	default:
		err = ErrNoSource
	}
	if err != nil {
		src.Close()
		return nil, err
	}
	return src, nil
}

func (s *source) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		slog.Warn("close snapshot store", slog.Any("error", err))
	}
}

func (s *source) object(id string) (*memhost.Object, error) {
	obj, err := s.host.Object(id)
	if err != nil {
		return nil, fmt.Errorf("load object: %w", err)
	}
	return obj, nil
}

func (s *source) engine() *attrflow.Engine {
	return attrflow.New(
		attrflow.WithValueRanges(s.host),
		attrflow.WithLogger(slog.Default()),
		attrflow.WithMetrics(observability.NewMetricsRecorder()),
	)
}

// language returns --lang, or the current language of obj when unset.
func (sa *SourceArgs) language(obj record.Accessor) record.LanguageID {
	if sa.Language > 0 {
		return record.LanguageID(sa.Language)
	}
	return obj.CurrentLanguage()
}
